package providers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"chargen/internal/config"
	"chargen/internal/model"
	"chargen/internal/pkg/ark"
	"chargen/internal/pkg/chartools"
	"chargen/internal/pkg/oai"
)

// OpenAIImageProvider OpenAI 图片生成提供者
// 适配层，调用 oai.Client（go-openai）
type OpenAIImageProvider struct {
	client *oai.Client
}

// NewOpenAIImageProvider 创建 OpenAI 图片生成提供者
func NewOpenAIImageProvider(client *oai.Client) *OpenAIImageProvider {
	return &OpenAIImageProvider{client: client}
}

// GenerateImages 生成图片
func (p *OpenAIImageProvider) GenerateImages(ctx context.Context, req *chartools.ImageRequest) ([]model.ImageResult, error) {
	data, err := p.client.CreateImages(ctx, req.Model, req.Prompt, req.Size, req.Quality, req.N)
	if err != nil {
		return nil, fmt.Errorf("OpenAI generate image: %w", err)
	}

	results := make([]model.ImageResult, 0, len(data))
	for _, d := range data {
		results = append(results, model.ImageResult{URL: d.URL, RevisedPrompt: d.RevisedPrompt})
	}

	log.Info().
		Str("model", req.Model).
		Int("count", len(results)).
		Msg("OpenAI image generation succeeded")

	return results, nil
}

// ArkImageProvider Ark 图片生成提供者
// 适配层，调用 ark.ImageClient（使用官方 Go SDK）
// Ark 不支持 quality 参数，也不会改写提示词
type ArkImageProvider struct {
	client ArkImageClient
}

// ArkImageClient Ark 图片接口（ark.ImageClient 实现）
type ArkImageClient interface {
	GenerateImages(ctx context.Context, prompt, size string, n int) ([]ark.Image, error)
	Model() string
}

// NewArkImageProvider 创建 Ark 图片生成提供者
func NewArkImageProvider(client ArkImageClient) *ArkImageProvider {
	return &ArkImageProvider{client: client}
}

// GenerateImages 生成图片
func (p *ArkImageProvider) GenerateImages(ctx context.Context, req *chartools.ImageRequest) ([]model.ImageResult, error) {
	if req.Quality != "" && req.Quality != config.DefaultImageQuality {
		log.Warn().
			Str("model", p.client.Model()).
			Str("quality", req.Quality).
			Msg("Ark image generation does not support quality, ignored")
	}

	images, err := p.client.GenerateImages(ctx, req.Prompt, req.Size, req.N)
	if err != nil {
		return nil, fmt.Errorf("Ark generate image: %w", err)
	}

	results := make([]model.ImageResult, 0, len(images))
	for _, img := range images {
		results = append(results, model.ImageResult{URL: img.URL})
	}

	log.Info().
		Str("model", p.client.Model()).
		Int("count", len(results)).
		Msg("Ark image generation succeeded")

	return results, nil
}

var (
	_ chartools.ImageProvider = (*OpenAIImageProvider)(nil)
	_ chartools.ImageProvider = (*ArkImageProvider)(nil)
	_ ArkImageClient          = (*ark.ImageClient)(nil)
)
