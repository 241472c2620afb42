package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chargen/internal/config"
)

// Level 将命令行的 1-5 级别映射为 zerolog 级别
// 1: debug, 2: info, 3: warning, 4: error, 5: critical
func Level(n int) zerolog.Level {
	switch {
	case n <= 1:
		return zerolog.DebugLevel
	case n == 2:
		return zerolog.InfoLevel
	case n == 3:
		return zerolog.WarnLevel
	case n == 4:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

// Init 初始化全局日志
func Init(cfg *config.LogConfig) error {
	zerolog.SetGlobalLevel(Level(cfg.Level))

	// 设置时间格式
	switch cfg.TimeFormat {
	case "Unix":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	case "UnixMs":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	default:
		zerolog.TimeFieldFormat = time.RFC3339
	}

	// 未指定文件时输出到 stdout
	var output io.Writer = os.Stdout
	if cfg.FilePath != "" {
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		output = file
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.FilePath != "",
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	return nil
}

// Get 获取全局 logger
func Get() zerolog.Logger {
	return log.Logger
}
