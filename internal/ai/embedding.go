package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"chargen/internal/model"
	"chargen/internal/pkg/ranker"
)

// EmbeddingClient 文本向量与相似度排序
type EmbeddingClient struct {
	embedder    embedding.Embedder
	concurrency int
	limiter     *rate.Limiter // nil 表示不限速
}

// NewEmbeddingClient 创建向量客户端
//
// Args:
//   - embedder: eino embedding.Embedder
//   - concurrency: 同时进行的请求数，1 为顺序请求
//   - rps: 每秒请求数上限，0 表示不限制
func NewEmbeddingClient(embedder embedding.Embedder, concurrency int, rps float64) *EmbeddingClient {
	if concurrency < 1 {
		concurrency = 1
	}
	c := &EmbeddingClient{embedder: embedder, concurrency: concurrency}
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return c
}

// Embed 为单条文本发起一次向量请求
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float64, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	vectors, err := c.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}
	return vectors[0], nil
}

// EmbedAndRank 计算 key 与每个候选文本的余弦相似度，按分数降序返回
//
// 每条文本单独请求一次（共 N+1 次）。任一请求失败则整体失败，不返回部分结果；
// 并发请求时结果顺序与顺序请求一致。
func (c *EmbeddingClient) EmbedAndRank(ctx context.Context, key string, candidates []string) ([]model.RankedCandidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	texts := append([]string{key}, candidates...)
	vectors := make([][]float64, len(texts))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)
	for i, text := range texts {
		i, text := i, text
		eg.Go(func() error {
			vec, err := c.Embed(egCtx, text)
			if err != nil {
				return fmt.Errorf("embed text %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	ranked, err := ranker.Rank(vectors[0], vectors[1:])
	if err != nil {
		return nil, fmt.Errorf("rank candidates: %w", err)
	}

	out := make([]model.RankedCandidate, len(ranked))
	for i, r := range ranked {
		out[i] = model.RankedCandidate{Index: r.Index, Text: candidates[r.Index], Score: r.Score}
	}

	log.Debug().
		Int("candidates", len(candidates)).
		Float64("top_score", out[0].Score).
		Msg("candidates ranked by embedding similarity")

	return out, nil
}
