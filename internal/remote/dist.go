package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxFeedSize 限制发布列表响应体大小，include=all 的完整列表约为数 MB。
const maxFeedSize = 64 << 20

// HTTPClient 描述最小化的 HTTP 客户端接口，方便测试时替换。
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DistOption 用于配置 DistSource。
type DistOption func(*DistSource)

// WithFeedURL 设置发布列表 JSON 地址，例如镜像站。
func WithFeedURL(url string) DistOption {
	return func(d *DistSource) {
		if url != "" {
			d.feedURL = url
		}
	}
}

// WithHTTPClient 设置 HTTP 客户端。
func WithHTTPClient(h HTTPClient) DistOption {
	return func(d *DistSource) {
		if h != nil {
			d.httpClient = h
		}
	}
}

// WithStableOnly 只返回 stable 标记为 true 的发布。
func WithStableOnly() DistOption {
	return func(d *DistSource) {
		d.stableOnly = true
	}
}

// DistSource 从 go.dev/dl 的 JSON 列表读取发布版本，作为 git 之外的 TagSource。
// 不做缓存，每次调用都会重新请求。
type DistSource struct {
	feedURL    string
	httpClient HTTPClient
	stableOnly bool
}

// NewDistSource 创建发布列表数据源。
func NewDistSource(opts ...DistOption) *DistSource {
	d := &DistSource{
		feedURL:    DefaultDistFeed,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FeedURL 返回当前使用的发布列表地址。
func (d *DistSource) FeedURL() string {
	return d.feedURL
}

// Tags 返回每条发布记录的 version 字段，例如 go1.21.0、go1.22rc1，保持列表原有顺序。
func (d *DistSource) Tags(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: fetch %s: %w", d.feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote: fetch %s: unexpected status %d", d.feedURL, resp.StatusCode)
	}

	var releases []struct {
		Version string `json:"version"`
		Stable  bool   `json:"stable"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedSize)).Decode(&releases); err != nil {
		return nil, fmt.Errorf("remote: decode release feed: %w", err)
	}

	tags := make([]string, 0, len(releases))
	for _, rel := range releases {
		if rel.Version == "" || (d.stableOnly && !rel.Stable) {
			continue
		}
		tags = append(tags, rel.Version)
	}
	return tags, nil
}
