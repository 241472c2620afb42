package oai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	openai "github.com/sashabaranov/go-openai"
	. "github.com/smartystreets/goconvey/convey"

	"chargen/internal/config"
)

func newTestClient(handler http.HandlerFunc) (*Client, func()) {
	srv := httptest.NewServer(handler)
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewClientWithConfig(cfg), srv.Close
}

func TestNewClient(t *testing.T) {
	Convey("NewClient 校验配置", t, func() {
		_, err := NewClient(&config.AIConfig{Provider: "openai"})
		So(err, ShouldNotBeNil)

		_, err = NewClient(&config.AIConfig{Provider: "azure", APIKey: "k"})
		So(err, ShouldNotBeNil)

		c, err := NewClient(&config.AIConfig{Provider: "openai", APIKey: "k"})
		So(err, ShouldBeNil)
		So(c, ShouldNotBeNil)
	})
}

func TestCreateImages(t *testing.T) {
	Convey("CreateImages 透传参数并返回 URL 与改写提示词", t, func() {
		var got map[string]any
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"created":1,"data":[{"url":"https://img/0.png","revised_prompt":"rewritten"},{"url":"https://img/1.png"}]}`)
		})
		defer closeFn()

		images, err := client.CreateImages(context.Background(), "dall-e-2", "a plumber", "1024x1024", "standard", 2)
		So(err, ShouldBeNil)
		So(images, ShouldHaveLength, 2)
		So(images[0].URL, ShouldEqual, "https://img/0.png")
		So(images[0].RevisedPrompt, ShouldEqual, "rewritten")
		So(images[1].RevisedPrompt, ShouldBeEmpty)

		So(got["model"], ShouldEqual, "dall-e-2")
		So(got["prompt"], ShouldEqual, "a plumber")
		So(got["n"], ShouldEqual, 2.0)
		So(got["size"], ShouldEqual, "1024x1024")
	})

	Convey("上游错误原样向上返回", t, func() {
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"message":"n must be 1","type":"invalid_request_error"}}`)
		})
		defer closeFn()

		_, err := client.CreateImages(context.Background(), "dall-e-3", "p", "1024x1024", "standard", 3)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "n must be 1")
	})
}

func TestEmbedder(t *testing.T) {
	Convey("Embedder 按 index 返回向量", t, func() {
		var model string
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &req)
			model, _ = req["model"].(string)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"object":"list","data":[{"object":"embedding","index":1,"embedding":[0,1]},{"object":"embedding","index":0,"embedding":[1,0]}]}`)
		})
		defer closeFn()

		e := NewEmbedder(client, "text-embedding-3-large")
		vectors, err := e.EmbedStrings(context.Background(), []string{"a", "b"})
		So(err, ShouldBeNil)
		So(vectors, ShouldResemble, [][]float64{{1, 0}, {0, 1}})
		So(model, ShouldEqual, "text-embedding-3-large")

		_, err = e.EmbedStrings(context.Background(), []string{"a", "b"}, embedding.WithModel("text-embedding-3-small"))
		So(err, ShouldBeNil)
		So(model, ShouldEqual, "text-embedding-3-small")
	})

	Convey("向量以 float32 精度解码后转为 float64", t, func() {
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1,-0.25]}]}`)
		})
		defer closeFn()

		vectors, err := NewEmbedder(client, "text-embedding-3-large").EmbedStrings(context.Background(), []string{"a"})
		So(err, ShouldBeNil)
		So(vectors[0], ShouldResemble, []float64{float64(float32(0.1)), -0.25})
	})
}

func TestCreateChatCompletion(t *testing.T) {
	Convey("CreateChatCompletion 一次请求返回 N 条补全", t, func() {
		var (
			got   map[string]any
			calls int
		)
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			calls++
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"c","object":"chat.completion","choices":[`+
				`{"index":1,"message":{"role":"assistant","content":"two"}},`+
				`{"index":0,"message":{"role":"assistant","content":"one"}},`+
				`{"index":2,"message":{"role":"assistant","content":"three"}}]}`)
		})
		defer closeFn()

		texts, err := client.CreateChatCompletion(context.Background(), ChatRequest{
			Model:       "gpt-4",
			Prompt:      "describe Mario",
			MaxTokens:   250,
			Temperature: 1,
			TopP:        1,
			N:           3,
		})
		So(err, ShouldBeNil)
		So(texts, ShouldResemble, []string{"one", "two", "three"})
		So(calls, ShouldEqual, 1)

		So(got["model"], ShouldEqual, "gpt-4")
		So(got["n"], ShouldEqual, 3.0)
		So(got["max_tokens"], ShouldEqual, 250.0)
		So(got["temperature"], ShouldEqual, 1.0)
		messages := got["messages"].([]any)
		So(messages, ShouldHaveLength, 1)
		So(messages[0].(map[string]any)["content"], ShouldEqual, "describe Mario")
	})
}
