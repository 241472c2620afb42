package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// 枚举取值（与命令行帮助保持一致）
var (
	ChatModels     = []string{"gpt-4", "gpt-4-turbo-preview", "gpt-3.5-turbo", "gpt-3.5-turbo-instruct", "babbage-002", "davinci-002"}
	ImageModels    = []string{"dall-e-3", "dall-e-2"}
	ImageSizes     = []string{"1024x1024", "1024x1792", "1792x1024"}
	ImageQualities = []string{"standard", "hd"}
)

// 默认值
const (
	DefaultChatModel      = "gpt-4"
	DefaultImageModel     = "dall-e-3"
	DefaultImageSize      = "1024x1024"
	DefaultImageQuality   = "standard"
	DefaultEmbeddingModel = "text-embedding-3-large"
	DefaultPromptsFile    = "prompts.txt"

	MinCount = 1
	MaxCount = 10
)

// Config 应用配置根结构
type Config struct {
	AI        AIConfig        `mapstructure:"ai"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Image     ImageConfig     `mapstructure:"image"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// AIConfig 对话模型配置
type AIConfig struct {
	Provider string    `mapstructure:"provider"` // openai, azure, ark
	APIKey   string    `mapstructure:"api_key"`
	Model    string    `mapstructure:"model"` // --gpt
	BaseURL  string    `mapstructure:"base_url"`
	Ark      ArkConfig `mapstructure:"ark"`
}

// ArkConfig 火山引擎 Ark 配置
type ArkConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	ChatModel  string `mapstructure:"chat_model"`
	ImageModel string `mapstructure:"image_model"`
}

// EmbeddingConfig 向量模型配置
type EmbeddingConfig struct {
	Model       string  `mapstructure:"model"`
	Concurrency int     `mapstructure:"concurrency"` // 并发请求数，1 表示顺序执行
	RateLimit   float64 `mapstructure:"rate_limit"`  // 每秒请求数，0 表示不限制
}

// ImageConfig 图片生成配置
type ImageConfig struct {
	Provider string `mapstructure:"provider"` // openai, ark
	Model    string `mapstructure:"model"`    // --dalle
	Size     string `mapstructure:"size"`
	Quality  string `mapstructure:"quality"`
	Count    int    `mapstructure:"count"` // --img-num
}

// PipelineConfig 流水线开关
type PipelineConfig struct {
	Native      bool   `mapstructure:"native"`
	Simple      bool   `mapstructure:"simple"`
	Variations  int    `mapstructure:"variations"` // --variation-num
	TextOnly    bool   `mapstructure:"text_only"`
	OpenBrowser bool   `mapstructure:"open"`
	Interim     bool   `mapstructure:"interim"`
	SaveDir     string `mapstructure:"save"`
	PromptsFile string `mapstructure:"prompts_file"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      int    `mapstructure:"level"` // 1: debug ... 5: critical
	Format     string `mapstructure:"format"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"` // 基础路径，--save 目录相对于它创建
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
}

// Validate 验证配置有效性
// 所有枚举参数在发起任何网络请求之前完成校验
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "openai", "azure":
		if err := oneOf("gpt", c.AI.Model, ChatModels); err != nil {
			return err
		}
	case "ark":
	default:
		return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
	}

	switch c.Image.Provider {
	case "openai":
		if err := oneOf("dalle", c.Image.Model, ImageModels); err != nil {
			return err
		}
	case "ark":
	default:
		return fmt.Errorf("unsupported image provider: %s", c.Image.Provider)
	}

	if err := oneOf("size", c.Image.Size, ImageSizes); err != nil {
		return err
	}
	if err := oneOf("quality", c.Image.Quality, ImageQualities); err != nil {
		return err
	}
	if err := inRange("img-num", c.Image.Count, MinCount, MaxCount); err != nil {
		return err
	}
	if err := inRange("variation-num", c.Pipeline.Variations, MinCount, MaxCount); err != nil {
		return err
	}
	if err := inRange("log-level", c.Log.Level, 1, 5); err != nil {
		return err
	}

	if c.Embedding.Model == "" {
		return errors.New("embedding model is required")
	}
	if c.Embedding.Concurrency < 1 {
		return errors.New("embedding concurrency must be at least 1")
	}
	if c.Embedding.RateLimit < 0 {
		return errors.New("embedding rate limit must not be negative")
	}

	return nil
}

func oneOf(flag, value string, choices []string) error {
	if slices.Contains(choices, value) {
		return nil
	}
	return fmt.Errorf("invalid --%s %q (choose from %s)", flag, value, strings.Join(choices, ", "))
}

func inRange(flag string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("invalid --%s %d (choose from %d..%d)", flag, value, lo, hi)
	}
	return nil
}
