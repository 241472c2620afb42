// Package oai 封装 OpenAI 的图片生成和文本向量接口
// 对话补全走 eino ChatModel，这里只覆盖 eino 没有提供的能力
package oai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"chargen/internal/config"
)

// Client OpenAI 客户端封装
type Client struct {
	client *openai.Client
}

// NewClient 创建 OpenAI 客户端
// provider 为 azure 时使用 Azure OpenAI 配置，BaseURL 必填
func NewClient(cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set ai.api_key or OPENAI_API_KEY)")
	}

	var clientCfg openai.ClientConfig
	switch cfg.Provider {
	case "azure":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("azure provider requires ai.base_url")
		}
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
	default:
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
	}

	return NewClientWithConfig(clientCfg), nil
}

// NewClientWithConfig 使用自定义配置创建客户端（测试时指向本地服务）
func NewClientWithConfig(cfg openai.ClientConfig) *Client {
	return &Client{client: openai.NewClientWithConfig(cfg)}
}

// ChatRequest 对话补全请求
// penalty 固定为 0
type ChatRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float32
	TopP        float32
	N           int
}

// CreateChatCompletion 一次请求生成 N 条补全，按 choice index 排列
// eino 的 ChatModel 只返回第一条 choice，需要多条时走这里
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatRequest) ([]string, error) {
	n := req.N
	if n < 1 {
		n = 1
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:        req.MaxTokens,
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		N:                n,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
	})
	if err != nil {
		log.Error().Err(err).Str("model", req.Model).Msg("failed to call OpenAI chat completions API")
		return nil, fmt.Errorf("OpenAI chat completions API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completions API returned no choices")
	}

	texts := make([]string, len(resp.Choices))
	for i, choice := range resp.Choices {
		idx := choice.Index
		if idx < 0 || idx >= len(texts) {
			idx = i
		}
		texts[idx] = choice.Message.Content
	}
	return texts, nil
}

// ImageData 单张图片结果
type ImageData struct {
	URL           string
	RevisedPrompt string
}

// CreateImages 调用 images/generations
// n 原样透传，不支持多张的模型（dall-e-3）由上游返回错误
func (c *Client) CreateImages(ctx context.Context, modelID, prompt, size, quality string, n int) ([]ImageData, error) {
	req := openai.ImageRequest{
		Model:          modelID,
		Prompt:         prompt,
		Size:           size,
		Quality:        quality,
		N:              n,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}

	resp, err := c.client.CreateImage(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("model", modelID).Msg("failed to call OpenAI images API")
		return nil, fmt.Errorf("OpenAI images API call failed: %w", err)
	}

	out := make([]ImageData, 0, len(resp.Data))
	for _, d := range resp.Data {
		out = append(out, ImageData{URL: d.URL, RevisedPrompt: d.RevisedPrompt})
	}
	return out, nil
}

// CreateEmbeddings 调用 embeddings，返回与 inputs 一一对应的向量
func (c *Client) CreateEmbeddings(ctx context.Context, modelID string, inputs []string) ([][]float64, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: inputs,
		Model: openai.EmbeddingModel(modelID),
	})
	if err != nil {
		log.Error().Err(err).Str("model", modelID).Msg("failed to call OpenAI embeddings API")
		return nil, fmt.Errorf("OpenAI embeddings API call failed: %w", err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d inputs", len(resp.Data), len(inputs))
	}

	vectors := make([][]float64, len(inputs))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(inputs) {
			return nil, fmt.Errorf("embeddings API returned out-of-range index %d", d.Index)
		}
		vec := make([]float64, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float64(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}
