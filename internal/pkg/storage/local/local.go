package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"chargen/internal/pkg/storage"
)

// LocalStorage 本地文件系统存储
type LocalStorage struct {
	basePath string // 基础路径
}

// NewLocalStorage 创建本地文件系统存储
func NewLocalStorage(basePath string) *LocalStorage {
	if basePath == "" {
		basePath = "."
	}
	return &LocalStorage{basePath: basePath}
}

// resolve 绝对路径原样使用，相对路径基于 basePath
func (s *LocalStorage) resolve(key string) string {
	if filepath.IsAbs(key) {
		return filepath.Clean(key)
	}
	return filepath.Join(s.basePath, key)
}

// Prepare 创建保存目录（包括父目录），目录已存在时失败
func (s *LocalStorage) Prepare(ctx context.Context, dir string) error {
	fullPath := s.resolve(dir)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := os.Mkdir(fullPath, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, fullPath)
		}
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}

// Upload 写入文件
func (s *LocalStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	fullPath := s.resolve(key)

	// 确保目录存在
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // 删除失败的文件
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fullPath, nil
}

// GetStorageType 获取存储类型
func (s *LocalStorage) GetStorageType() string {
	return string(storage.StorageTypeLocal)
}
