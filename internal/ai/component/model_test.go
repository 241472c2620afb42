package component

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"chargen/internal/config"
)

func TestNewChatModel(t *testing.T) {
	Convey("NewChatModel 按 provider 创建", t, func() {
		ctx := context.Background()

		Convey("不支持的 provider", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "anthropic"})
			So(err, ShouldNotBeNil)
		})

		Convey("openai 缺少 API key", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "openai", Model: "gpt-4"})
			So(err, ShouldNotBeNil)
		})

		Convey("azure 缺少 base_url", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "azure", APIKey: "k", Model: "gpt-4"})
			So(err, ShouldNotBeNil)
		})

		Convey("ark 缺少 API key", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "ark"})
			So(err, ShouldNotBeNil)
		})

		Convey("openai 配置完整时创建成功", func() {
			m, err := NewChatModel(ctx, &config.AIConfig{Provider: "openai", APIKey: "k", Model: "gpt-4"})
			So(err, ShouldBeNil)
			So(m, ShouldNotBeNil)
		})
	})
}

func TestChatModelID(t *testing.T) {
	Convey("ChatModelID", t, func() {
		So(ChatModelID(&config.AIConfig{Provider: "openai", Model: "gpt-3.5-turbo"}), ShouldEqual, "gpt-3.5-turbo")
		So(ChatModelID(&config.AIConfig{Provider: "ark", Model: "gpt-4"}), ShouldEqual, DefaultArkChatModel)
		So(ChatModelID(&config.AIConfig{Provider: "ark", Ark: config.ArkConfig{ChatModel: "ep-1"}}), ShouldEqual, "ep-1")
	})
}
