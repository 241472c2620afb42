package storagefactory

import (
	"context"
	"fmt"

	"chargen/internal/config"
	"chargen/internal/pkg/storage"
	"chargen/internal/pkg/storage/local"
	"chargen/internal/pkg/storage/oss"
)

// NewStorage 根据配置创建存储实例
func NewStorage(ctx context.Context, cfg *config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case "local", "":
		basePath := ""
		if cfg.Local != nil {
			basePath = cfg.Local.BasePath
		}
		return local.NewLocalStorage(basePath), nil
	case "oss":
		if cfg.OSS == nil {
			return nil, fmt.Errorf("OSS storage config is required")
		}
		return oss.NewOSSStorage(
			cfg.OSS.Endpoint,
			cfg.OSS.Bucket,
			cfg.OSS.AccessKeyID,
			cfg.OSS.AccessKeySecret,
		)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
