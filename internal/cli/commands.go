package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/liangyou/gotool/internal/buildinfo"
	"github.com/liangyou/gotool/internal/catalog"
	"github.com/liangyou/gotool/internal/env"
	"github.com/liangyou/gotool/internal/goversion"
	"github.com/liangyou/gotool/pkg/models"
	"github.com/liangyou/gotool/pkg/protocol"
)

func (a *App) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the descriptor as a go-plugin over net/rpc",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			// 宿主转发插件 stderr，JSON 便于其解析
			logger := newLogger(a.errOut, a.cfg.Level(), true)
			a.serve(a.newTool(a.cfg, logger), logger)
			return nil
		},
	}
}

func (a *App) downloadCmd() *cobra.Command {
	var osName, archName string
	cmd := &cobra.Command{
		Use:   "download <version>",
		Short: "Resolve the prebuilt archive for a version and platform",
		Example: `  gotool download 1.21.5
  gotool download latest --os windows --arch arm64
  gotool download 1.22 --region cn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if osName == "" && archName == "" {
				if err := a.checkHost(); err != nil {
					a.logger.Warn("host platform has no prebuilt release, pass --os/--arch to target another", "error", err)
				}
			}
			hostEnv, err := a.targetEnv(osName, archName)
			if err != nil {
				return err
			}
			t := a.newTool(a.cfg, a.logger)
			version, err := a.requestedVersion(cmd.Context(), t, args[0])
			if err != nil {
				return err
			}
			out, err := t.DownloadPrebuilt(cmd.Context(), protocol.DownloadPrebuiltInput{Env: hostEnv, Version: version})
			if err != nil {
				return err
			}
			return a.render(out, func(w io.Writer) {
				renderFields(w,
					table.Row{"Version", version},
					table.Row{"Platform", hostEnv.OS.String() + "/" + hostEnv.Arch.String()},
					table.Row{"Archive", out.DownloadName},
					table.Row{"Prefix", out.ArchivePrefix},
					table.Row{"URL", out.DownloadURL},
					table.Row{"Checksum", out.ChecksumURL},
				)
			})
		},
	}
	cmd.Flags().StringVar(&osName, "os", "", "target operating system (default: host)")
	cmd.Flags().StringVar(&archName, "arch", "", "target architecture (default: host)")
	return cmd
}

func (a *App) binsCmd() *cobra.Command {
	var osName string
	cmd := &cobra.Command{
		Use:   "bins",
		Short: "Show the go binary path and global package directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hostEnv, err := a.targetEnv(osName, "")
			if err != nil {
				return err
			}
			out, err := a.newTool(a.cfg, a.logger).LocateBins(cmd.Context(), protocol.LocateBinsInput{Env: hostEnv})
			if err != nil {
				return err
			}
			return a.render(out, func(w io.Writer) {
				fmt.Fprintf(w, "Binary: %s\n", out.BinPath)
				fmt.Fprintln(w, "Globals lookup:")
				for i, dir := range out.GlobalsLookupDirs {
					marker := ""
					if out.FallbackLastGlobalsDir && i == len(out.GlobalsLookupDirs)-1 {
						marker = " (fallback)"
					}
					fmt.Fprintf(w, "  %s%s\n", dir, marker)
				}
			})
		},
	}
	cmd.Flags().StringVar(&osName, "os", "", "target operating system (default: host)")
	return cmd
}

func (a *App) versionsCmd() *cobra.Command {
	var stableOnly bool
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List released Go versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.newTool(a.cfg, a.logger).LoadVersions(cmd.Context(), protocol.LoadVersionsInput{})
			if err != nil {
				return err
			}
			if stableOnly {
				out.Versions = stable(out.Versions)
			}
			return a.render(out, func(w io.Writer) {
				if len(out.Versions) == 0 {
					fmt.Fprintln(w, "No releases found.")
					return
				}
				t := newTable(w)
				t.AppendHeader(table.Row{"Version", "Native", "Channel", ""})
				for _, v := range out.Versions {
					channel := "stable"
					if goversion.IsPrerelease(v) {
						channel = "prerelease"
					}
					alias := ""
					if v == out.Latest {
						alias = catalog.AliasLatest
					}
					t.AppendRow(table.Row{v, "go" + goversion.ToNative(v), channel, alias})
				}
				t.Render()
			})
		},
	}
	cmd.Flags().BoolVar(&stableOnly, "stable", false, "hide prereleases")
	return cmd
}

func (a *App) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <request>",
		Short: "Resolve an alias, partial or exact version against the release list",
		Example: `  gotool resolve latest
  gotool resolve 1.21
  gotool resolve go1.22rc1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := a.resolve(cmd.Context(), a.newTool(a.cfg, a.logger), args[0])
			if err != nil {
				return err
			}
			result := map[string]string{"request": args[0], "version": version}
			return a.render(result, func(w io.Writer) {
				fmt.Fprintln(w, version)
			})
		},
	}
}

func (a *App) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Read the go directive from go.mod or go.work",
		Long: `Read the version pinned by the "go" directive. Without an argument the
recognized files are searched in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := a.newTool(a.cfg, a.logger)
			file, content, err := a.versionFile(cmd.Context(), t, args)
			if err != nil {
				return err
			}
			out, err := t.ParseVersionFile(cmd.Context(), protocol.ParseVersionFileInput{File: file, Content: content})
			if err != nil {
				return err
			}
			result := parseResult{File: file, Version: out.Version, Found: out.Found}
			return a.render(result, func(w io.Writer) {
				if !out.Found {
					fmt.Fprintf(w, "%s does not pin a Go version\n", file)
					return
				}
				fmt.Fprintf(w, "%s: %s\n", file, out.Version)
			})
		},
	}
}

type parseResult struct {
	File    string `json:"file" yaml:"file"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Found   bool   `json:"found" yaml:"found"`
}

func (a *App) globalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "globals",
		Short: "Install or remove globally installed Go binaries",
	}

	install := &cobra.Command{
		Use:     "install <package>",
		Short:   "Run go install for a package (defaults to @latest)",
		Example: "  gotool globals install golang.org/x/tools/gopls",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostEnv, err := a.targetEnv("", "")
			if err != nil {
				return err
			}
			out, err := a.newTool(a.cfg, a.logger).InstallGlobal(cmd.Context(), protocol.InstallGlobalInput{Dependency: args[0], Env: hostEnv})
			if err != nil {
				return err
			}
			return a.globalResult(out, "installed "+args[0])
		},
	}

	var dir string
	uninstall := &cobra.Command{
		Use:   "uninstall <package>",
		Short: "Remove a globally installed binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostEnv, err := a.targetEnv("", "")
			if err != nil {
				return err
			}
			out, err := a.newTool(a.cfg, a.logger).UninstallGlobal(cmd.Context(), protocol.UninstallGlobalInput{
				Dependency: args[0],
				GlobalsDir: dir,
				Env:        hostEnv,
			})
			if err != nil {
				return err
			}
			return a.globalResult(out, "removed "+args[0])
		},
	}
	uninstall.Flags().StringVar(&dir, "dir", "", "globals directory (default: $HOME/go/bin)")

	cmd.AddCommand(install, uninstall)
	return cmd
}

func (a *App) shellSetupCmd() *cobra.Command {
	var shell string
	cmd := &cobra.Command{
		Use:   "shell-setup",
		Short: "Add the globals bin directory to your shell profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.newTool(a.cfg, a.logger).SyncShellProfile(cmd.Context(), protocol.SyncShellProfileInput{Shell: shell})
			if err != nil {
				return err
			}
			if out.Skip {
				fmt.Fprintf(a.out, "%s is already set, nothing to do\n", out.CheckVar)
				return nil
			}

			profile := env.Profile{ExportVars: out.ExportVars, ExtendPath: out.ExtendPath}
			var path string
			if shell != "" {
				var target env.Shell
				if target, err = env.ParseShell(shell); err != nil {
					return err
				}
				path, err = a.shell.ApplyTo(target, profile)
			} else {
				path, err = a.shell.Apply(profile)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated %s, restart your shell or run: source %s\n", path, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&shell, "shell", "", "shell to configure (bash, zsh, fish; default: $SHELL)")
	return cmd
}

type inspectResult struct {
	Name          string   `json:"name" yaml:"name"`
	Type          string   `json:"type" yaml:"type"`
	PluginVersion string   `json:"plugin_version" yaml:"plugin_version"`
	Files         []string `json:"files" yaml:"files"`
}

func (a *App) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <plugin>",
		Short: "Launch a descriptor plugin binary and print its metadata",
		Long: `Start the given plugin the way a host would, complete the handshake and
call register_tool and detect_version_files over RPC.`,
		Example: "  gotool inspect $(command -v gotool) -- serve --log-level debug",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, cleanup, err := a.connect(args[0], a.logger.Named("host"), args[1:]...)
			if err != nil {
				return err
			}
			defer cleanup()

			meta, err := t.RegisterTool(cmd.Context())
			if err != nil {
				return err
			}
			files, err := t.DetectVersionFiles(cmd.Context())
			if err != nil {
				return err
			}
			result := inspectResult{Name: meta.Name, Type: meta.Type, PluginVersion: meta.PluginVersion, Files: files.Files}
			return a.render(result, func(w io.Writer) {
				renderFields(w,
					table.Row{"Name", meta.Name},
					table.Row{"Type", meta.Type},
					table.Row{"Plugin version", meta.PluginVersion},
					table.Row{"Version files", strings.Join(files.Files, ", ")},
				)
			})
		},
	}
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.render(buildinfo.Get(), func(w io.Writer) {
				fmt.Fprintln(w, buildinfo.String())
			})
		},
	}
}

// targetEnv 将 --os/--arch 解析为枚举，未指定的维度取宿主平台。
func (a *App) targetEnv(osName, archName string) (protocol.HostEnvironment, error) {
	hostOS, hostArch, err := a.host()
	if err != nil && (osName == "" || archName == "") {
		a.logger.Warn("host platform detection failed", "error", err)
	}

	target := protocol.HostEnvironment{OS: hostOS, Arch: hostArch}
	if osName != "" {
		if target.OS, err = models.ParseHostOS(osName); err != nil {
			return target, err
		}
	}
	if archName != "" {
		if target.Arch, err = models.ParseHostArch(archName); err != nil {
			return target, err
		}
	}
	return target, nil
}

// requestedVersion 完整的语义化版本直接使用，其余请求通过版本目录解析。
func (a *App) requestedVersion(ctx context.Context, t protocol.Tool, request string) (string, error) {
	request = strings.TrimSpace(request)
	if goversion.IsValid(request) {
		return request, nil
	}
	return a.resolve(ctx, t, request)
}

func (a *App) resolve(ctx context.Context, t protocol.Tool, request string) (string, error) {
	out, err := t.LoadVersions(ctx, protocol.LoadVersionsInput{Initial: request})
	if err != nil {
		return "", err
	}
	version, ok := catalog.Resolve(out.ReleaseCatalog, request)
	if !ok {
		return "", fmt.Errorf("cli: no release matches %q", request)
	}
	a.logger.Debug("resolved version", "request", request, "version", version)
	return version, nil
}

func (a *App) versionFile(ctx context.Context, t protocol.Tool, args []string) (string, string, error) {
	if len(args) == 1 {
		data, err := a.readFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("cli: read %s: %w", args[0], err)
		}
		return args[0], string(data), nil
	}

	files, err := t.DetectVersionFiles(ctx)
	if err != nil {
		return "", "", err
	}
	for _, name := range files.Files {
		data, err := a.readFile(name)
		if err != nil {
			continue
		}
		return name, string(data), nil
	}
	return "", "", fmt.Errorf("cli: none of %s found in current directory", strings.Join(files.Files, ", "))
}

func (a *App) globalResult(out protocol.GlobalOutput, done string) error {
	if err := a.render(out, func(w io.Writer) {
		if out.Success {
			fmt.Fprintln(w, done)
		}
	}); err != nil {
		return err
	}
	if !out.Success {
		return errors.New(out.Error)
	}
	return nil
}

func stable(versions []string) []string {
	kept := make([]string, 0, len(versions))
	for _, v := range versions {
		if !goversion.IsPrerelease(v) {
			kept = append(kept, v)
		}
	}
	return kept
}
