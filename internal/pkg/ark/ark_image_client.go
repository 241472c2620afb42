package ark

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"chargen/internal/config"
)

const (
	// DefaultBaseURL Ark API 默认地址
	DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	// DefaultImageModel 默认图片生成模型
	DefaultImageModel = "doubao-seedream-3-0-t2i-250415"
)

// ImageClient Ark 图片生成客户端
// 用于调用火山引擎的 Ark API 生成图片
type ImageClient struct {
	client *arkruntime.Client
	model  string
}

// NewImageClient 创建 Ark 图片生成客户端
func NewImageClient(cfg *config.ArkConfig) (*ImageClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Ark API key is required (set ai.ark.api_key or ARK_API_KEY)")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelName := cfg.ImageModel
	if modelName == "" {
		modelName = DefaultImageModel
	}

	arkClient := arkruntime.NewClientWithApiKey(cfg.APIKey, arkruntime.WithBaseUrl(baseURL))

	return &ImageClient{
		client: arkClient,
		model:  modelName,
	}, nil
}

// Model 返回实际使用的模型名称
func (c *ImageClient) Model() string {
	return c.model
}

// Image 单张图片结果
type Image struct {
	URL string
}

// GenerateImages 生成 n 张图片，返回图片 URL
// Ark 接口每次只返回一张图，n > 1 时顺序请求 n 次
func (c *ImageClient) GenerateImages(ctx context.Context, prompt, size string, n int) ([]Image, error) {
	responseFormat := "url"
	watermark := false

	images := make([]Image, 0, n)
	for i := 0; i < n; i++ {
		input := model.GenerateImagesRequest{
			Model:          c.model,
			Prompt:         prompt,
			Size:           &size,
			ResponseFormat: &responseFormat,
			Watermark:      &watermark,
		}

		output, err := c.client.GenerateImages(ctx, input)
		if err != nil {
			log.Error().Err(err).Int("index", i).Msg("failed to call Ark GenerateImages API")
			return nil, fmt.Errorf("Ark GenerateImages API call failed: %w", err)
		}

		for _, img := range output.Data {
			if img.Url == nil {
				continue
			}
			images = append(images, Image{URL: *img.Url})
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("no image url in response")
	}

	return images, nil
}
