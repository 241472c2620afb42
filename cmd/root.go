package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chargen/internal/config"
	"chargen/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chargen",
	Short: "Generate a character image from a name, a setting and a style",
	Long: `chargen asks for a character name, a name replacement, a setting and a style,
expands them into a detailed image prompt with a chat model, scrubs the real
name from the description and sends the prompt to an image model.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGenerate,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// .env 可选，不存在时忽略
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.chargen")
	}

	// 环境变量设置
	viper.SetEnvPrefix("CHARGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 密钥兼容各 SDK 的通用环境变量
	_ = viper.BindEnv("ai.api_key", "CHARGEN_AI_API_KEY", "OPENAI_API_KEY")
	_ = viper.BindEnv("ai.ark.api_key", "CHARGEN_AI_ARK_API_KEY", "ARK_API_KEY")

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// AI
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", config.DefaultChatModel)

	// Embedding
	viper.SetDefault("embedding.model", config.DefaultEmbeddingModel)
	viper.SetDefault("embedding.concurrency", 1)
	viper.SetDefault("embedding.rate_limit", 0)

	// Image
	viper.SetDefault("image.provider", "openai")
	viper.SetDefault("image.model", config.DefaultImageModel)
	viper.SetDefault("image.size", config.DefaultImageSize)
	viper.SetDefault("image.quality", config.DefaultImageQuality)
	viper.SetDefault("image.count", 1)

	// Pipeline
	viper.SetDefault("pipeline.variations", 1)
	viper.SetDefault("pipeline.prompts_file", config.DefaultPromptsFile)

	// Log
	viper.SetDefault("log.level", 5)
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.time_format", "RFC3339")

	// Storage
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.base_path", ".")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
