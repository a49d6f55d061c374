package cli

import (
	"github.com/hashicorp/go-hclog"

	"github.com/liangyou/gotool/internal/config"
	"github.com/liangyou/gotool/internal/globals"
	"github.com/liangyou/gotool/internal/platform"
	"github.com/liangyou/gotool/internal/process"
	"github.com/liangyou/gotool/internal/remote"
	"github.com/liangyou/gotool/internal/tool"
	"github.com/liangyou/gotool/pkg/protocol"
)

// NewTool 按配置组装插件实现：镜像决定下载前缀，tag_source 决定版本来源。
func NewTool(cfg *config.Config, logger hclog.Logger) protocol.Tool {
	mirror := cfg.Mirror()
	runner := process.NewExecRunner()
	resolver := platform.NewResolver(platform.WithDownloadBase(mirror.DownloadBase))

	var (
		source remote.TagSource
		origin string
	)
	switch cfg.TagSource {
	case config.TagSourceDist:
		dist := remote.NewDistSource(remote.WithFeedURL(mirror.APIBase))
		source, origin = dist, dist.FeedURL()
	default:
		git := remote.NewGitSource(runner, remote.WithRepository(cfg.Repository))
		source, origin = git, git.Repository()
	}

	logger.Debug("tool configured",
		"mirror", mirror.Name,
		"download_base", resolver.DownloadBase(),
		"tag_source", cfg.TagSource,
		"origin", origin,
	)
	return tool.New(
		tool.WithResolver(resolver),
		tool.WithTagSource(source),
		tool.WithGlobals(globals.NewManager(runner, nil)),
		tool.WithLogger(logger.Named("tool")),
	)
}
