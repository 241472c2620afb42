package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout 单张图片下载超时
const DefaultTimeout = 2 * time.Minute

// Client 图片下载客户端
// 图片接口返回的是临时 URL，保存模式下需要立即取回
type Client struct {
	httpClient *http.Client
}

// NewClient 创建下载客户端，timeout<=0 时使用默认超时
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTP 使用自定义 http.Client 创建下载客户端
func NewClientWithHTTP(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// Fetch 下载 URL 指向的文件内容
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed, status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return data, nil
}
