package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chargen/internal/ai"
	"chargen/internal/config"
	"chargen/internal/pkg/storage"
	"chargen/internal/pkg/storagefactory"
	"chargen/internal/service"
)

func init() {
	flags := rootCmd.Flags()

	// Pipeline flags
	flags.BoolP("native", "a", false, "do not ask for a setting, let the model pick an appropriate one")
	flags.BoolP("simple", "e", false, "build the final prompt by concatenation instead of another completion")
	flags.IntP("variation-num", "v", 1, "number of character descriptions to fetch and rank (1-10)")
	flags.BoolP("text", "t", false, "only print the final image prompt, do not generate images")
	flags.BoolP("open", "p", false, "open each image URL in the browser")
	flags.BoolP("interim", "i", false, "print every intermediate text")
	flags.StringP("save", "s", "", "directory to create and save images and prompts.txt into")

	// Model flags
	flags.StringP("gpt", "g", config.DefaultChatModel, "chat model ("+strings.Join(config.ChatModels, ", ")+")")
	flags.StringP("dalle", "d", config.DefaultImageModel, "image model ("+strings.Join(config.ImageModels, ", ")+")")
	flags.StringP("size", "z", config.DefaultImageSize, "image size ("+strings.Join(config.ImageSizes, ", ")+")")
	flags.StringP("quality", "q", config.DefaultImageQuality, "image quality ("+strings.Join(config.ImageQualities, ", ")+")")
	flags.IntP("img-num", "m", 1, "number of images to request (1-10)")
	flags.String("ai-provider", "openai", "chat provider (openai/azure/ark)")
	flags.String("image-provider", "openai", "image provider (openai/ark)")

	// Log flags
	flags.IntP("log-level", "l", 5, "log level (1: debug, 2: info, 3: warning, 4: error, 5: critical)")
	flags.StringP("log-file", "f", "", "log file (default: stdout)")

	// Bind flags to viper
	_ = viper.BindPFlag("pipeline.native", flags.Lookup("native"))
	_ = viper.BindPFlag("pipeline.simple", flags.Lookup("simple"))
	_ = viper.BindPFlag("pipeline.variations", flags.Lookup("variation-num"))
	_ = viper.BindPFlag("pipeline.text_only", flags.Lookup("text"))
	_ = viper.BindPFlag("pipeline.open", flags.Lookup("open"))
	_ = viper.BindPFlag("pipeline.interim", flags.Lookup("interim"))
	_ = viper.BindPFlag("pipeline.save", flags.Lookup("save"))
	_ = viper.BindPFlag("ai.model", flags.Lookup("gpt"))
	_ = viper.BindPFlag("ai.provider", flags.Lookup("ai-provider"))
	_ = viper.BindPFlag("image.model", flags.Lookup("dalle"))
	_ = viper.BindPFlag("image.size", flags.Lookup("size"))
	_ = viper.BindPFlag("image.quality", flags.Lookup("quality"))
	_ = viper.BindPFlag("image.count", flags.Lookup("img-num"))
	_ = viper.BindPFlag("image.provider", flags.Lookup("image-provider"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.file_path", flags.Lookup("log-file"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	// 枚举参数在任何网络请求之前校验
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 保存目录已存在时直接失败，不产生任何输出
	var store storage.Storage
	if cfg.Pipeline.SaveDir != "" {
		var err error
		store, err = storagefactory.NewStorage(ctx, &cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage: %w", err)
		}
		if err := store.Prepare(ctx, cfg.Pipeline.SaveDir); err != nil {
			return err
		}
	}

	client, err := ai.NewClient(ctx, cfg)
	if err != nil {
		return err
	}

	query, err := service.CollectQuery(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Pipeline.Native)
	if err != nil {
		return err
	}

	pipeline := service.NewPipeline(client, service.OptionsFromConfig(cfg), store).
		WithOutput(cmd.OutOrStdout())

	res, err := pipeline.Run(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("pipeline failed")
		return err
	}

	log.Info().
		Str("run_id", res.RunID).
		Int("images", len(res.Images)).
		Msg("done")

	return nil
}
