package component

import (
	"github.com/cloudwego/eino/components/embedding"

	"chargen/internal/config"
	"chargen/internal/pkg/oai"
)

// NewEmbedder 创建向量生成器
// 向量接口只走 OpenAI（或 Azure OpenAI），ark 作为对话 provider 时仍使用 ai.api_key
func NewEmbedder(client *oai.Client, cfg *config.EmbeddingConfig) embedding.Embedder {
	model := cfg.Model
	if model == "" {
		model = config.DefaultEmbeddingModel
	}
	return oai.NewEmbedder(client, model)
}
