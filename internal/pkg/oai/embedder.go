package oai

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"
)

// Embedder 基于 OpenAI embeddings 的 eino embedding.Embedder 实现
type Embedder struct {
	client *Client
	model  string
}

var _ embedding.Embedder = (*Embedder)(nil)

// NewEmbedder 创建向量生成器，model 为默认模型
func NewEmbedder(client *Client, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

// EmbedStrings 一次请求生成 texts 的向量
// 可通过 embedding.WithModel 覆盖模型
func (e *Embedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	options := embedding.GetCommonOptions(&embedding.Options{Model: &e.model}, opts...)
	return e.client.CreateEmbeddings(ctx, *options.Model, texts)
}
