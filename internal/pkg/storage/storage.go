package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrAlreadyExists 保存目录已存在
var ErrAlreadyExists = errors.New("save target already exists")

// Storage 存储接口
// 保存模式下，生成的图片和 prompts.txt 写入同一个目录（或对象前缀）
type Storage interface {
	// Prepare 创建保存目录，目录已存在时返回 ErrAlreadyExists
	Prepare(ctx context.Context, dir string) error

	// Upload 写入文件，返回访问路径
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)

// ContentType 根据文件扩展名获取 Content-Type
func ContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	contentTypes := map[string]string{
		".txt":  "text/plain; charset=utf-8",
		".json": "application/json",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
	}

	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
