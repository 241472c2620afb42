package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"chargen/internal/ai/component"
	"chargen/internal/config"
	"chargen/internal/pkg/ark"
	"chargen/internal/pkg/chartools"
	"chargen/internal/pkg/chartools/providers"
	"chargen/internal/pkg/oai"
)

// Client AI 能力层客户端
// 职责: 封装对话补全、文本向量、图片生成三个外部接口
type Client struct {
	Completion *CompletionClient
	Embedding  *EmbeddingClient // 仅在需要排序时创建
	Image      *ImageClient     // 仅在需要生成图片时创建
}

// NewClient 根据配置创建 AI 客户端
// 只创建本次运行会用到的接口，避免未使用的 provider 要求额外的密钥
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	chatModel, err := component.NewChatModel(ctx, &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	needRanking := cfg.Pipeline.Variations > 1
	needImages := !cfg.Pipeline.TextOnly

	var openaiClient *oai.Client
	if needRanking || (needImages && cfg.Image.Provider == "openai") {
		openaiClient, err = oai.NewClient(&cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
	}

	// 多个变体在 openai / azure 上一次请求取回；ark 逐条生成
	completionProvider := providers.NewEinoProvider(chatModel)
	if needRanking && cfg.AI.Provider != "ark" {
		completionProvider.WithChoices(openaiClient)
	}

	client := &Client{
		Completion: NewCompletionClient(completionProvider, component.ChatModelID(&cfg.AI)),
	}

	if needRanking {
		embedder := component.NewEmbedder(openaiClient, &cfg.Embedding)
		client.Embedding = NewEmbeddingClient(embedder, cfg.Embedding.Concurrency, cfg.Embedding.RateLimit)
	}

	if needImages {
		var (
			provider chartools.ImageProvider
			modelID  string
		)
		switch cfg.Image.Provider {
		case "openai":
			provider = providers.NewOpenAIImageProvider(openaiClient)
			modelID = cfg.Image.Model
		case "ark":
			arkClient, err := ark.NewImageClient(&cfg.AI.Ark)
			if err != nil {
				return nil, fmt.Errorf("failed to create Ark image client: %w", err)
			}
			provider = providers.NewArkImageProvider(arkClient)
			modelID = arkClient.Model()
		default:
			return nil, fmt.Errorf("unsupported image provider: %s", cfg.Image.Provider)
		}
		client.Image = NewImageClient(provider, modelID)
	}

	log.Debug().
		Str("chat_provider", cfg.AI.Provider).
		Str("chat_model", client.Completion.Model()).
		Bool("ranking", needRanking).
		Bool("images", needImages).
		Msg("AI client created")

	return client, nil
}
