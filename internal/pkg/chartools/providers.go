package chartools

import (
	"context"

	"chargen/internal/model"
)

// CompletionProvider 对话补全提供者接口
// 具体的「如何调用大模型」由调用方通过实现此接口注入，方便单测和替换实现
type CompletionProvider interface {
	// Complete 发起一次补全请求
	//
	// Returns:
	//   - texts: 按上游返回顺序排列的 N 条补全文本
	//   - err: 错误信息
	Complete(ctx context.Context, req *CompletionRequest) ([]string, error)
}

// CompletionRequest 补全请求
// frequency/presence penalty 固定为 0，在创建 ChatModel 时设置
type CompletionRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float32
	TopP        float32
	N           int // 需要的补全条数
}

// ImageProvider 图片生成提供者接口
// 统一抽象 OpenAI 和 Ark 两种图片生成方式
type ImageProvider interface {
	// GenerateImages 生成图片，返回图片 URL 及上游改写后的提示词
	GenerateImages(ctx context.Context, req *ImageRequest) ([]model.ImageResult, error)
}

// ImageRequest 图片生成请求
type ImageRequest struct {
	Model   string
	Prompt  string
	Size    string
	Quality string
	N       int
}
