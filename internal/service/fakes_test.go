package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/embedding"

	"chargen/internal/ai"
	"chargen/internal/model"
	"chargen/internal/pkg/chartools"
)

const characterKey = "Give a detailed physical description of the character Mario in 50 words."

// fakeChat 按提示词开头判断模板并返回固定文本
type fakeChat struct {
	reqs         []*chartools.CompletionRequest
	descriptions []string
	final        string
	failOn       string // 提示词包含该文本时返回错误
}

func (f *fakeChat) Complete(ctx context.Context, req *chartools.CompletionRequest) ([]string, error) {
	f.reqs = append(f.reqs, req)
	if f.failOn != "" && strings.Contains(req.Prompt, f.failOn) {
		return nil, errors.New("rate limit exceeded")
	}

	switch {
	case strings.HasPrefix(req.Prompt, "Give a detailed physical description"):
		return f.descriptions[:req.N], nil
	case strings.Contains(req.Prompt, "subject and setting"):
		return []string{"scene text"}, nil
	case strings.Contains(req.Prompt, "appropriate setting"):
		return []string{"native scene text"}, nil
	case strings.HasPrefix(req.Prompt, "Create a 50 word summary"):
		return []string{"style text"}, nil
	case strings.HasPrefix(req.Prompt, "Write a prompt for an image generator"):
		return []string{f.final}, nil
	}
	return nil, errors.New("unexpected prompt: " + req.Prompt)
}

// maxTokens 按调用顺序返回每次请求的 max_tokens，用于区分模板
func (f *fakeChat) maxTokens() []int {
	out := make([]int, len(f.reqs))
	for i, r := range f.reqs {
		out[i] = r.MaxTokens
	}
	return out
}

type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float64
	failOn  string
	calls   int
}

func (f *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	f.mu.Lock()
	f.calls++
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
}

func (f *fakeImages) GenerateImages(ctx context.Context, req *chartools.ImageRequest) ([]model.ImageResult, error) {
	f.reqs = append(f.reqs, req)
	return f.results, nil
}

type fixture struct {
	chat     *fakeChat
	embedder *fakeEmbedder
	images   *fakeImages
	client   *ai.Client
}

func newFixture() *fixture {
	f := &fixture{
		chat: &fakeChat{
			descriptions: []string{
				"Mario wears red overalls.",
				"Mario Mario is a plumber. Mario wears red.",
				"A short man named Mario with a moustache.",
			},
			final: "final prompt text",
		},
		embedder: &fakeEmbedder{vectors: map[string][]float64{
			characterKey:                                {1, 0},
			"Mario wears red overalls.":                 {0, 1},
			"Mario Mario is a plumber. Mario wears red.": {1, 1},
			"A short man named Mario with a moustache.":  {0.9, 0.1},
		}},
		images: &fakeImages{results: []model.ImageResult{
			{URL: "https://images.example/0.png", RevisedPrompt: "a plumber in a castle"},
		}},
	}
	f.client = &ai.Client{
		Completion: ai.NewCompletionClient(f.chat, "gpt-4"),
		Embedding:  ai.NewEmbeddingClient(f.embedder, 2, 0),
		Image:      ai.NewImageClient(f.images, "dall-e-3"),
	}
	return f
}

func defaultOptions() Options {
	return Options{
		Variations:   1,
		ImageModel:   "dall-e-3",
		ImageSize:    "1024x1024",
		ImageQuality: "standard",
		ImageCount:   1,
	}
}

func marioQuery() *model.CharacterQuery {
	return &model.CharacterQuery{
		Name:        "Mario",
		Replacement: "a plumber",
		Setting:     "a castle",
		HasSetting:  true,
		Style:       "watercolor",
	}
}
