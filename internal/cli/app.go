// Package cli 提供 gotool 命令行入口：启动插件服务，或直接调用各个描述操作。
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/liangyou/gotool/internal/buildinfo"
	"github.com/liangyou/gotool/internal/config"
	"github.com/liangyou/gotool/internal/env"
	"github.com/liangyou/gotool/internal/platform"
	"github.com/liangyou/gotool/pkg/models"
	"github.com/liangyou/gotool/pkg/protocol"
)

// ToolFactory 根据配置构造插件实现。
type ToolFactory func(cfg *config.Config, logger hclog.Logger) protocol.Tool

// Option 用于配置 App。
type Option func(*App)

// WithToolFactory 替换插件实现的构造方式，测试时注入假实现。
func WithToolFactory(f ToolFactory) Option {
	return func(a *App) {
		if f != nil {
			a.newTool = f
		}
	}
}

// WithShellConfigurer 替换 shell 配置写入器。
func WithShellConfigurer(m env.EnvManager) Option {
	return func(a *App) {
		if m != nil {
			a.shell = m
		}
	}
}

// WithHostDetector 替换宿主平台探测。
func WithHostDetector(fn func() (models.HostOS, models.HostArch, error)) Option {
	return func(a *App) {
		if fn != nil {
			a.host = fn
			a.checkHost = func() error {
				hostOS, hostArch, err := fn()
				if err != nil {
					return err
				}
				return platform.NewResolver().Supports(hostOS, hostArch)
			}
		}
	}
}

// App 负责 CLI 命令解析与分发。
type App struct {
	out    io.Writer
	errOut io.Writer

	cfgFile string
	cfg     *config.Config
	logger  hclog.Logger

	newTool   ToolFactory
	shell     env.EnvManager
	host      func() (models.HostOS, models.HostArch, error)
	checkHost func() error
	readFile  func(string) ([]byte, error)
	serve     func(protocol.Tool, hclog.Logger)
	connect   func(path string, logger hclog.Logger, args ...string) (protocol.Tool, func(), error)
}

// NewApp 创建 CLI 应用实例。
func NewApp(out, errOut io.Writer, opts ...Option) *App {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	checker := platform.NewChecker(nil)
	a := &App{
		out:       out,
		errOut:    errOut,
		logger:    hclog.NewNullLogger(),
		newTool:   NewTool,
		shell:     env.NewManager(),
		host:      checker.Host,
		checkHost: checker.Validate,
		readFile:  os.ReadFile,
		serve:     protocol.Serve,
		connect:   connectPlugin,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run 解析参数并执行命令。
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.Command()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Command 构造根命令。
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "gotool",
		Short: "Go toolchain descriptor for version managers",
		Long: `gotool describes the Go toolchain to a version-management host: where to
download a release for a platform, where the go binary lives, which releases
exist and which version a go.mod or go.work pins.

Run "gotool serve" to expose these operations as a plugin, or call them
directly from the command line.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetVersionTemplate(buildinfo.String() + "\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./gotool.yaml)")
	flags.String("region", "", "mirror region, e.g. cn")
	flags.String("download-base", "", "override the archive download prefix")
	flags.String("dist-feed", "", "override the release JSON feed")
	flags.String("repository", "", "git repository used to list tags")
	flags.String("tag-source", config.TagSourceGit, "where to list releases from (git, dist)")
	flags.String("log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error, off)")
	flags.StringP("output", "o", config.OutputText, "output format (text, json, yaml)")

	root.AddCommand(
		a.serveCmd(),
		a.downloadCmd(),
		a.binsCmd(),
		a.versionsCmd(),
		a.resolveCmd(),
		a.parseCmd(),
		a.globalsCmd(),
		a.shellSetupCmd(),
		a.inspectCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.errOut, cfg.Level(), false)
	return nil
}

// newLogger 创建写到 w 的日志记录器；只有 w 是终端时才输出颜色。
func newLogger(w io.Writer, level hclog.Level, json bool) hclog.Logger {
	color := hclog.ColorOff
	if f, ok := w.(*os.File); ok && !json && term.IsTerminal(int(f.Fd())) {
		color = hclog.ForceColor
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "gotool",
		Level:      level,
		Output:     w,
		JSONFormat: json,
		Color:      color,
	})
}

// connectPlugin 启动插件进程并返回 Tool，调用方需执行返回的 cleanup。
func connectPlugin(path string, logger hclog.Logger, args ...string) (protocol.Tool, func(), error) {
	client := protocol.NewClient(path, logger, args...)
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("cli: start plugin %s: %w", path, err)
	}
	tool, err := protocol.Dispense(rpcClient)
	if err != nil {
		client.Kill()
		return nil, nil, err
	}
	return tool, client.Kill, nil
}
