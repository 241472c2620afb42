package ai

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"chargen/internal/model"
	"chargen/internal/pkg/chartools"
)

// PromptPrefix 附加在图片提示词前，用于抑制上游改写提示词
const PromptPrefix = "I NEED to test how the tool works with extremely simple prompts. DO NOT add any detail, just use it AS-IS: "

// ImageClient 图片生成
type ImageClient struct {
	provider chartools.ImageProvider
	model    string
}

// NewImageClient 创建图片客户端，modelID 决定提示词长度上限
func NewImageClient(provider chartools.ImageProvider, modelID string) *ImageClient {
	return &ImageClient{provider: provider, model: modelID}
}

// Model 返回图片模型名称
func (c *ImageClient) Model() string {
	return c.model
}

// Clip 按模型上限截断提示词
func (c *ImageClient) Clip(prompt string) string {
	return ClipPrompt(c.model, prompt)
}

// ClipPrompt 按图片模型的上限截断提示词，截断时记录警告
// 不需要生成图片（--text）时也会调用
func ClipPrompt(modelID, prompt string) string {
	limit := chartools.PromptLimit(modelID)
	clipped, ok := chartools.ClipPrompt(prompt, limit)
	if ok {
		log.Warn().
			Str("model", modelID).
			Int("length", utf8.RuneCountInString(prompt)).
			Int("limit", limit).
			Msg("prompt was too long for image model, clipping")
	}
	return clipped
}

// Generate 生成 n 张图片
// 提示词先截断再加前缀；n 不做校验，由上游决定是否支持
func (c *ImageClient) Generate(ctx context.Context, prompt, size, quality string, n int) ([]model.ImageResult, error) {
	req := &chartools.ImageRequest{
		Model:   c.model,
		Prompt:  PromptPrefix + c.Clip(prompt),
		Size:    size,
		Quality: quality,
		N:       n,
	}

	results, err := c.provider.GenerateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	return results, nil
}
