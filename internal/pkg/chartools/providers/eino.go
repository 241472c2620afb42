package providers

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"chargen/internal/pkg/chartools"
	"chargen/internal/pkg/oai"
)

// EinoProvider Eino 封装的对话补全提供者
// 使用 ai/component 创建的 ChatModel（openai / azure / ark）
// 实现了 chartools.CompletionProvider 接口
type EinoProvider struct {
	chatModel model.ChatModel
	choices   ChoicesClient // 可选，N > 1 时一次请求取回多条
}

// ChoicesClient 支持一次请求返回多条 choice 的补全接口（oai.Client 实现）
type ChoicesClient interface {
	CreateChatCompletion(ctx context.Context, req oai.ChatRequest) ([]string, error)
}

var _ chartools.CompletionProvider = (*EinoProvider)(nil)

// NewEinoProvider 创建基于 Eino 的补全提供者
//
// Args:
//   - chatModel: 通过 ai/component.NewChatModel 创建的 ChatModel 实例
func NewEinoProvider(chatModel model.ChatModel) *EinoProvider {
	return &EinoProvider{
		chatModel: chatModel,
	}
}

// WithChoices 设置多 choice 客户端
// openai / azure 一次请求即可返回 N 条；ark 不设置，仍逐条生成
func (p *EinoProvider) WithChoices(client ChoicesClient) *EinoProvider {
	p.choices = client
	return p
}

// Complete 根据提示词生成 N 条文本
// N > 1 且设置了 choices 客户端时发起一次请求；否则 eino ChatModel 每次只返回一条消息，
// 顺序生成 N 次，结果保持生成顺序
func (p *EinoProvider) Complete(ctx context.Context, req *chartools.CompletionRequest) ([]string, error) {
	n := req.N
	if n < 1 {
		n = 1
	}

	if n > 1 && p.choices != nil {
		texts, err := p.choices.CreateChatCompletion(ctx, oai.ChatRequest{
			Model:       req.Model,
			Prompt:      req.Prompt,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
			TopP:        req.TopP,
			N:           n,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate text: %w", err)
		}
		return texts, nil
	}

	if p.chatModel == nil {
		return nil, fmt.Errorf("chatModel is required")
	}

	messages := []*schema.Message{
		schema.UserMessage(req.Prompt),
	}
	opts := []model.Option{
		model.WithTemperature(req.Temperature),
		model.WithTopP(req.TopP),
	}
	if req.Model != "" {
		opts = append(opts, model.WithModel(req.Model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}

	texts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		response, err := p.chatModel.Generate(ctx, messages, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to generate text: %w", err)
		}
		if response.Content == "" {
			log.Warn().Str("model", req.Model).Int("index", i).Msg("empty response from chat model")
		}
		texts = append(texts, response.Content)
	}

	return texts, nil
}
