package ai

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/embedding"

	"chargen/internal/model"
	"chargen/internal/pkg/chartools"
)

type fakeCompletion struct {
	reqs    []*chartools.CompletionRequest
	replies func(req *chartools.CompletionRequest) []string
	err     error
}

func (f *fakeCompletion) Complete(ctx context.Context, req *chartools.CompletionRequest) ([]string, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.replies(req), nil
}

// fakeEmbedder 根据文本查表返回向量，记录调用次数
type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float64
	failOn  string
	calls   []string
}

func (f *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, strings.Join(texts, "|"))
	f.mu.Unlock()

	out := make([][]float64, len(texts))
	for i, t := range texts {
		if t == f.failOn {
			return nil, errors.New("embedding endpoint unavailable")
		}
		v, ok := f.vectors[t]
		if !ok {
			return nil, errors.New("unexpected text: " + t)
		}
		out[i] = v
	}
	return out, nil
}

type fakeImages struct {
	reqs    []*chartools.ImageRequest
	results []model.ImageResult
	err     error
}

func (f *fakeImages) GenerateImages(ctx context.Context, req *chartools.ImageRequest) ([]model.ImageResult, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}
