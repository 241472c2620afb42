package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"chargen/internal/config"
	"chargen/internal/pkg/ark"
)

// 固定采样参数，不对用户开放
const (
	Temperature      float32 = 1
	TopP             float32 = 1
	FrequencyPenalty float32 = 0
	PresencePenalty  float32 = 0
)

// DefaultArkChatModel Ark 默认对话模型
const DefaultArkChatModel = "doubao-seed-1-6-flash-250615"

// NewChatModel 创建 ChatModel
// 支持多种 Provider: openai, azure, ark
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	switch cfg.Provider {
	case "openai", "":
		return newOpenAIChatModel(ctx, cfg)
	case "azure":
		return newAzureChatModel(ctx, cfg)
	case "ark":
		return newArkChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// ChatModelID 返回补全请求实际使用的模型名称
func ChatModelID(cfg *config.AIConfig) string {
	if cfg.Provider != "ark" {
		return cfg.Model
	}
	if cfg.Ark.ChatModel != "" {
		return cfg.Ark.ChatModel
	}
	return DefaultArkChatModel
}

// newOpenAIChatModel 创建 OpenAI ChatModel
func newOpenAIChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set ai.api_key or OPENAI_API_KEY)")
	}

	modelCfg := &openai.ChatModelConfig{
		Model:            cfg.Model,
		APIKey:           cfg.APIKey,
		Temperature:      ptr(Temperature),
		TopP:             ptr(TopP),
		FrequencyPenalty: ptr(FrequencyPenalty),
		PresencePenalty:  ptr(PresencePenalty),
	}

	// Base URL (用于代理或兼容 API)
	if cfg.BaseURL != "" {
		modelCfg.BaseURL = cfg.BaseURL
	}

	return openai.NewChatModel(ctx, modelCfg)
}

// newAzureChatModel 创建 Azure OpenAI ChatModel
func newAzureChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("azure provider requires ai.base_url")
	}

	modelCfg := &openai.ChatModelConfig{
		Model:            cfg.Model,
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		ByAzure:          true,
		Temperature:      ptr(Temperature),
		TopP:             ptr(TopP),
		FrequencyPenalty: ptr(FrequencyPenalty),
		PresencePenalty:  ptr(PresencePenalty),
	}

	return openai.NewChatModel(ctx, modelCfg)
}

// newArkChatModel 创建 Ark ChatModel（使用 eino-ext 模块）
func newArkChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	if cfg.Ark.APIKey == "" {
		return nil, fmt.Errorf("Ark API key is required (set ai.ark.api_key or ARK_API_KEY)")
	}

	baseURL := cfg.Ark.BaseURL
	if baseURL == "" {
		baseURL = ark.DefaultBaseURL
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:       ChatModelID(cfg),
		APIKey:      cfg.Ark.APIKey,
		BaseURL:     baseURL,
		Temperature: ptr(Temperature),
		TopP:        ptr(TopP),
	}

	return arkext.NewChatModel(ctx, modelCfg)
}

func ptr[T any](v T) *T {
	return &v
}
