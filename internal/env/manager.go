// Package env 把 sync_shell_profile 给出的变量写入用户的 shell 配置。
package env

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	blockStart = "# >>> gotool initialize >>>"
	blockEnd   = "# <<< gotool initialize <<<"

	// CheckVar 已设置时认为全局 bin 目录已经在 shell 中配置过。
	CheckVar = "GOBIN"
	// DefaultBinDir 是 go install 在未设置 GOBIN/GOPATH 时的默认输出目录。
	DefaultBinDir = "$HOME/go/bin"
)

// Shell 是支持写入配置的 shell。
type Shell string

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Fish Shell = "fish"
)

// ParseShell 接受 shell 名称或路径，例如 /usr/bin/zsh。
func ParseShell(value string) (Shell, error) {
	switch name := filepath.Base(strings.TrimSpace(value)); name {
	case "bash", "zsh", "fish":
		return Shell(name), nil
	default:
		return "", fmt.Errorf("env: unsupported shell %q", name)
	}
}

// Profile 描述要写入配置块的内容。
type Profile struct {
	// ExportVars 中的变量只在未设置时赋默认值。
	ExportVars map[string]string
	ExtendPath []string
}

// DefaultProfile 返回 GOBIN 的默认配置。
func DefaultProfile() Profile {
	return Profile{
		ExportVars: map[string]string{CheckVar: DefaultBinDir},
		ExtendPath: []string{"$" + CheckVar},
	}
}

// render 生成不含首尾标记的脚本行，变量按名称排序保证输出稳定。
func (p Profile) render(shell Shell) []string {
	names := make([]string, 0, len(p.ExportVars))
	for name := range p.ExportVars {
		names = append(names, name)
	}
	slices.Sort(names)

	var lines []string
	for _, name := range names {
		value := p.ExportVars[name]
		if shell == Fish {
			lines = append(lines, fmt.Sprintf("set -q %s; or set -gx %s \"%s\"", name, name, value))
			continue
		}
		lines = append(lines, fmt.Sprintf("export %s=\"${%s:-%s}\"", name, name, value))
	}

	if len(p.ExtendPath) > 0 {
		if shell == Fish {
			lines = append(lines, "set -gx PATH "+strings.Join(p.ExtendPath, " ")+" $PATH")
		} else {
			lines = append(lines, "export PATH=\""+strings.Join(p.ExtendPath, ":")+":$PATH\"")
		}
	}
	return lines
}

// EnvManager 暴露 shell 配置能力。
type EnvManager interface {
	DetectShell() (Shell, error)
	Apply(p Profile) (string, error)
	ApplyTo(shell Shell, p Profile) (string, error)
}

// Manager 实现 EnvManager。
type Manager struct {
	homeFn func() (string, error)
	envFn  func(string) string
}

// NewManager 构造 shell 配置服务。
func NewManager() *Manager {
	return &Manager{
		homeFn: os.UserHomeDir,
		envFn:  os.Getenv,
	}
}

// IsSet 判断环境变量是否已设置为非空值。
func (m *Manager) IsSet(name string) bool {
	return strings.TrimSpace(m.envFn(name)) != ""
}

// DetectShell 根据 SHELL 环境变量推断当前 shell，未设置时按 bash 处理。
func (m *Manager) DetectShell() (Shell, error) {
	shellPath := m.envFn("SHELL")
	if shellPath == "" {
		return Bash, nil
	}
	return ParseShell(shellPath)
}

// Apply 写入当前 shell 的配置文件，返回被修改的文件路径。
func (m *Manager) Apply(p Profile) (string, error) {
	shell, err := m.DetectShell()
	if err != nil {
		return "", err
	}
	return m.ApplyTo(shell, p)
}

// ApplyTo 写入指定 shell 的配置文件。重复执行只保留最新的一份配置块。
func (m *Manager) ApplyTo(shell Shell, p Profile) (string, error) {
	if len(p.ExportVars) == 0 && len(p.ExtendPath) == 0 {
		return "", errors.New("env: empty profile")
	}

	path, err := m.profilePath(shell)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("env: ensure config dir: %w", err)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("env: read %s: %w", path, err)
	}

	block := blockStart + "\n" + strings.Join(p.render(shell), "\n") + "\n" + blockEnd
	if err := os.WriteFile(path, []byte(replaceBlock(string(existing), block)), 0o644); err != nil {
		return "", fmt.Errorf("env: write %s: %w", path, err)
	}
	return path, nil
}

func (m *Manager) profilePath(shell Shell) (string, error) {
	home, err := m.homeFn()
	if err != nil {
		return "", fmt.Errorf("env: home dir: %w", err)
	}

	switch shell {
	case Bash:
		// 已有 .bashrc 时优先写入，否则写 .bash_profile
		rc := filepath.Join(home, ".bashrc")
		if _, err := os.Stat(rc); err == nil {
			return rc, nil
		}
		return filepath.Join(home, ".bash_profile"), nil
	case Zsh:
		return filepath.Join(home, ".zshrc"), nil
	case Fish:
		return filepath.Join(home, ".config", "fish", "config.fish"), nil
	default:
		return "", fmt.Errorf("env: unsupported shell %q", shell)
	}
}

// replaceBlock 删除 content 中所有旧配置块，并把 block 追加到末尾。
func replaceBlock(content, block string) string {
	for {
		start := strings.Index(content, blockStart)
		if start < 0 {
			break
		}
		end := strings.Index(content[start:], blockEnd)
		if end < 0 {
			// 结束标记丢失时丢弃其后全部内容
			content = content[:start]
			break
		}
		content = content[:start] + content[start+end+len(blockEnd):]
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return block + "\n"
	}
	return content + "\n\n" + block + "\n"
}
