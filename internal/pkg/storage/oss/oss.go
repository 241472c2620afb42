package oss

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"chargen/internal/pkg/storage"
)

// OSSStorage 阿里云OSS存储
// 保存目录对应对象前缀
type OSSStorage struct {
	bucket     *oss.Bucket
	bucketName string
}

// NewOSSStorage 创建阿里云OSS存储
func NewOSSStorage(endpoint, bucketName, accessKeyID, accessKeySecret string) (*OSSStorage, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStorage{
		bucket:     bucket,
		bucketName: bucketName,
	}, nil
}

// Prepare 检查前缀下是否已有对象，已有时返回 ErrAlreadyExists
// OSS 没有目录的概念，无需创建
func (s *OSSStorage) Prepare(ctx context.Context, dir string) error {
	prefix := objectKey(dir) + "/"

	result, err := s.bucket.ListObjects(oss.Prefix(prefix), oss.MaxKeys(1))
	if err != nil {
		return fmt.Errorf("failed to list objects: %w", err)
	}
	if len(result.Objects) > 0 {
		return fmt.Errorf("%w: oss://%s/%s", storage.ErrAlreadyExists, s.bucketName, prefix)
	}
	return nil
}

// Upload 上传文件
func (s *OSSStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	options := []oss.Option{
		oss.ContentType(contentType),
	}

	key = objectKey(key)
	if err := s.bucket.PutObject(key, data, options...); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return fmt.Sprintf("oss://%s/%s", s.bucketName, key), nil
}

// GetStorageType 获取存储类型
func (s *OSSStorage) GetStorageType() string {
	return string(storage.StorageTypeOSS)
}

// objectKey 对象 key 不能以 / 开头
func objectKey(p string) string {
	return strings.TrimPrefix(path.Clean(p), "/")
}
