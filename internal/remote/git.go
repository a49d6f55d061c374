package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liangyou/gotool/internal/process"
)

const refsTagsPrefix = "refs/tags/"

// GitSource 通过 git ls-remote 读取仓库 tag。
type GitSource struct {
	runner     process.Runner
	repository string
}

// GitOption 用于配置 GitSource。
type GitOption func(*GitSource)

// WithRepository 设置仓库地址。
func WithRepository(url string) GitOption {
	return func(g *GitSource) {
		if url != "" {
			g.repository = url
		}
	}
}

// NewGitSource 创建 GitSource。
func NewGitSource(runner process.Runner, opts ...GitOption) *GitSource {
	g := &GitSource{runner: runner, repository: DefaultRepository}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Repository 返回仓库地址。
func (g *GitSource) Repository() string {
	return g.repository
}

// Tags 返回去掉 refs/tags/ 前缀的 tag 名，保留 ^{} 解引用条目。
func (g *GitSource) Tags(ctx context.Context) ([]string, error) {
	if g.runner == nil {
		return nil, errors.New("remote: process runner is required")
	}

	result, err := g.runner.Run(ctx, "git", "ls-remote", "--tags", g.repository)
	if err != nil {
		return nil, fmt.Errorf("remote: list tags: %w", err)
	}
	if !result.Success() {
		return nil, fmt.Errorf("remote: git ls-remote exited with %d: %s", result.ExitCode, result.Stderr)
	}

	return parseLsRemote(result.Stdout), nil
}

func parseLsRemote(output string) []string {
	var tags []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		ref, ok := strings.CutPrefix(fields[1], refsTagsPrefix)
		if !ok || ref == "" {
			continue
		}
		tags = append(tags, ref)
	}
	return tags
}
