// Package remote 提供上游 Go 发布 tag 的数据源。
package remote

import "context"

const (
	DefaultRepository = "https://github.com/golang/go"
	DefaultDistFeed   = "https://go.dev/dl/?mode=json&include=all"
)

// TagSource 返回上游原始 tag 列表，结果可能为空，由 catalog 负责过滤。
type TagSource interface {
	Tags(ctx context.Context) ([]string, error)
}
