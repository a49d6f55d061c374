// Package tool 实现插件协议中的 Go 工具链描述：每个宿主调用只分派给一个组件。
package tool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/liangyou/gotool/internal/buildinfo"
	"github.com/liangyou/gotool/internal/catalog"
	"github.com/liangyou/gotool/internal/env"
	"github.com/liangyou/gotool/internal/globals"
	"github.com/liangyou/gotool/internal/goversion"
	"github.com/liangyou/gotool/internal/platform"
	"github.com/liangyou/gotool/internal/process"
	"github.com/liangyou/gotool/internal/remote"
	"github.com/liangyou/gotool/internal/versionfile"
	"github.com/liangyou/gotool/pkg/models"
	"github.com/liangyou/gotool/pkg/protocol"
)

// GlobalsManager 描述全局包的安装与卸载能力。
type GlobalsManager interface {
	Install(ctx context.Context, dependency string) error
	Uninstall(dir, name string, hostOS models.HostOS) (bool, error)
}

// ShellEnv 查询当前进程的环境变量。
type ShellEnv interface {
	IsSet(name string) bool
}

// Option 用于配置 Plugin。
type Option func(*Plugin)

// WithResolver 替换平台解析器，例如使用镜像下载地址。
func WithResolver(r *platform.Resolver) Option {
	return func(p *Plugin) {
		if r != nil {
			p.resolver = r
		}
	}
}

// WithTagSource 设置上游 tag 来源。
func WithTagSource(s remote.TagSource) Option {
	return func(p *Plugin) {
		p.source = s
	}
}

// WithGlobals 替换全局包管理器。
func WithGlobals(g GlobalsManager) Option {
	return func(p *Plugin) {
		if g != nil {
			p.globals = g
		}
	}
}

// WithShellEnv 替换 shell 环境探测。
func WithShellEnv(e ShellEnv) Option {
	return func(p *Plugin) {
		if e != nil {
			p.shell = e
		}
	}
}

// WithLogger 设置日志记录器。
func WithLogger(l hclog.Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.logger = l
		}
	}
}

// Plugin 实现 protocol.Tool。
type Plugin struct {
	resolver *platform.Resolver
	source   remote.TagSource
	globals  GlobalsManager
	shell    ShellEnv
	logger   hclog.Logger
	expandFn func(string) string
}

var _ protocol.Tool = (*Plugin)(nil)

// New 创建插件实现。未设置 tag 来源时默认使用 git ls-remote。
func New(opts ...Option) *Plugin {
	runner := process.NewExecRunner()
	p := &Plugin{
		resolver: platform.NewResolver(),
		globals:  globals.NewManager(runner, nil),
		shell:    env.NewManager(),
		logger:   hclog.NewNullLogger(),
		expandFn: os.ExpandEnv,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.source == nil {
		p.source = remote.NewGitSource(runner)
	}
	return p
}

// RegisterTool 返回工具元数据。
func (p *Plugin) RegisterTool(context.Context) (protocol.ToolMetadataOutput, error) {
	return protocol.ToolMetadataOutput{
		Name:          platform.ToolName,
		Type:          protocol.PluginTypeLanguage,
		PluginVersion: buildinfo.Version,
	}, nil
}

// DownloadPrebuilt 解析目标平台上的预编译包。
func (p *Plugin) DownloadPrebuilt(_ context.Context, in protocol.DownloadPrebuiltInput) (protocol.DownloadPrebuiltOutput, error) {
	version := strings.TrimSpace(in.Version)
	if version == "" {
		return protocol.DownloadPrebuiltOutput{}, errors.New("tool: version is required")
	}
	if !goversion.IsValid(version) {
		return protocol.DownloadPrebuiltOutput{}, fmt.Errorf("tool: invalid version %q", version)
	}

	artifact, err := p.resolver.DownloadPrebuilt(in.Env.OS, in.Env.Arch, version)
	if err != nil {
		p.logger.Debug("download prebuilt rejected", "os", in.Env.OS, "arch", in.Env.Arch, "error", err)
		return protocol.DownloadPrebuiltOutput{}, err
	}

	p.logger.Debug("download prebuilt", "version", version, "url", artifact.DownloadURL)
	return protocol.DownloadPrebuiltOutput{Artifact: artifact}, nil
}

// LocateBins 返回可执行文件路径与全局目录查找顺序。
func (p *Plugin) LocateBins(_ context.Context, in protocol.LocateBinsInput) (protocol.LocateBinsOutput, error) {
	return protocol.LocateBinsOutput{
		BinPath:                p.resolver.BinPath(in.Env.OS),
		FallbackLastGlobalsDir: p.resolver.FallbackLastGlobalsDir(),
		GlobalsLookupDirs:      p.resolver.GlobalsLookupDirs(),
	}, nil
}

// LoadVersions 拉取上游 tag 并构建版本目录，每次调用都重新构建。
func (p *Plugin) LoadVersions(ctx context.Context, in protocol.LoadVersionsInput) (protocol.LoadVersionsOutput, error) {
	if p.source == nil {
		return protocol.LoadVersionsOutput{}, errors.New("tool: tag source is required")
	}

	tags, err := p.source.Tags(ctx)
	if err != nil {
		return protocol.LoadVersionsOutput{}, fmt.Errorf("tool: load tags: %w", err)
	}

	if skipped := catalog.Skipped(tags); len(skipped) > 0 {
		p.logger.Warn("skipped unrecognized tags", "count", len(skipped))
		p.logger.Trace("skipped tags", "tags", skipped)
	}

	c := catalog.Build(tags)
	p.logger.Debug("load versions", "initial", in.Initial, "count", len(c.Versions), "latest", c.Latest)
	return protocol.LoadVersionsOutput{ReleaseCatalog: c}, nil
}

// DetectVersionFiles 返回可声明版本的文件名。
func (p *Plugin) DetectVersionFiles(context.Context) (protocol.DetectVersionOutput, error) {
	return protocol.DetectVersionOutput{Files: versionfile.Files()}, nil
}

// ParseVersionFile 读取 go.mod/go.work 中声明的版本，未声明时 Found 为 false。
func (p *Plugin) ParseVersionFile(_ context.Context, in protocol.ParseVersionFileInput) (protocol.ParseVersionFileOutput, error) {
	version, ok := versionfile.Parse(in.File, in.Content)
	p.logger.Debug("parse version file", "file", in.File, "version", version, "found", ok)
	return protocol.ParseVersionFileOutput{Version: version, Found: ok}, nil
}

// InstallGlobal 通过 go install 安装全局包，失败写入 GlobalOutput 而不返回 error。
func (p *Plugin) InstallGlobal(ctx context.Context, in protocol.InstallGlobalInput) (protocol.GlobalOutput, error) {
	if err := p.globals.Install(ctx, in.Dependency); err != nil {
		p.logger.Warn("install global failed", "dependency", in.Dependency, "error", err)
		return protocol.GlobalOutput{Error: err.Error()}, nil
	}
	p.logger.Debug("installed global", "dependency", in.Dependency)
	return protocol.GlobalOutput{Success: true}, nil
}

// UninstallGlobal 删除全局包的可执行文件；未指定目录时使用查找列表的最后一项。
func (p *Plugin) UninstallGlobal(_ context.Context, in protocol.UninstallGlobalInput) (protocol.GlobalOutput, error) {
	dir := strings.TrimSpace(in.GlobalsDir)
	if dir == "" {
		dirs := p.resolver.GlobalsLookupDirs()
		dir = p.expandFn(dirs[len(dirs)-1])
	}

	removed, err := p.globals.Uninstall(dir, in.Dependency, in.Env.OS)
	switch {
	case err != nil:
		p.logger.Warn("uninstall global failed", "dependency", in.Dependency, "error", err)
		return protocol.GlobalOutput{Error: err.Error()}, nil
	case !removed:
		return protocol.GlobalOutput{Error: fmt.Sprintf("%s is not installed in %s", in.Dependency, dir)}, nil
	}
	p.logger.Debug("uninstalled global", "dependency", in.Dependency, "dir", dir)
	return protocol.GlobalOutput{Success: true}, nil
}

// SyncShellProfile 返回需要写入 shell 配置的变量；GOBIN 已设置时跳过。
func (p *Plugin) SyncShellProfile(_ context.Context, in protocol.SyncShellProfileInput) (protocol.SyncShellProfileOutput, error) {
	profile := env.DefaultProfile()
	out := protocol.SyncShellProfileOutput{
		CheckVar:   env.CheckVar,
		ExportVars: profile.ExportVars,
		ExtendPath: profile.ExtendPath,
		Skip:       p.shell.IsSet(env.CheckVar),
	}
	p.logger.Debug("sync shell profile", "shell", in.Shell, "skip", out.Skip)
	return out, nil
}
