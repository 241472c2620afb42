package ai

import (
	"context"
	"fmt"

	"chargen/internal/ai/component"
	"chargen/internal/model"
	"chargen/internal/pkg/chartools"
	"chargen/internal/pkg/prompts"
)

// CompletionClient 模板化的对话补全
// 采样参数固定（temperature=1, top_p=1），max_tokens 由模板决定
type CompletionClient struct {
	provider chartools.CompletionProvider
	model    string
}

// NewCompletionClient 创建补全客户端，modelID 为本次运行使用的对话模型
func NewCompletionClient(provider chartools.CompletionProvider, modelID string) *CompletionClient {
	return &CompletionClient{provider: provider, model: modelID}
}

// Model 返回对话模型名称
func (c *CompletionClient) Model() string {
	return c.model
}

// Complete 渲染模板并请求 n 条补全，结果按上游返回顺序排列
func (c *CompletionClient) Complete(ctx context.Context, id model.TemplateID, fields map[string]string, n int) ([]model.Completion, error) {
	meta, err := prompts.Lookup(id)
	if err != nil {
		return nil, err
	}
	if meta.MaxTokens == 0 {
		return nil, fmt.Errorf("template %s is not a completion template", id)
	}
	if n < 1 {
		return nil, fmt.Errorf("variation count must be at least 1, got %d", n)
	}

	prompt, err := prompts.Render(id, fields)
	if err != nil {
		return nil, err
	}

	texts, err := c.provider.Complete(ctx, &chartools.CompletionRequest{
		Model:       c.model,
		Prompt:      prompt,
		MaxTokens:   meta.MaxTokens,
		Temperature: component.Temperature,
		TopP:        component.TopP,
		N:           n,
	})
	if err != nil {
		return nil, fmt.Errorf("complete %s: %w", id, err)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("complete %s: no choices in response", id)
	}

	completions := make([]model.Completion, len(texts))
	for i, text := range texts {
		completions[i] = model.Completion{Text: text, Template: id}
	}
	return completions, nil
}

// CompleteText 请求单条补全并直接返回文本
func (c *CompletionClient) CompleteText(ctx context.Context, id model.TemplateID, fields map[string]string) (string, error) {
	completions, err := c.Complete(ctx, id, fields, 1)
	if err != nil {
		return "", err
	}
	return completions[0].Text, nil
}
