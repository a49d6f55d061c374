// Package globals 负责通过 go install 安装或删除全局二进制包。
package globals

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/liangyou/gotool/internal/process"
	"github.com/liangyou/gotool/pkg/models"
)

// FS 是卸载流程所需的最小文件系统能力。
type FS interface {
	Exists(path string) bool
	Remove(path string) error
}

// OSFS 基于 os 包实现 FS。
type OSFS struct{}

// Exists 判断路径是否存在。
func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove 删除单个文件。
func (OSFS) Remove(path string) error {
	return os.Remove(path)
}

// Manager 安装与卸载全局包。
type Manager struct {
	runner process.Runner
	fs     FS
}

// NewManager 创建 Manager，fs 为空时使用 OSFS。
func NewManager(runner process.Runner, fs FS) *Manager {
	if fs == nil {
		fs = OSFS{}
	}
	return &Manager{runner: runner, fs: fs}
}

// Install 执行 go install，未指定版本时默认 @latest。
func (m *Manager) Install(ctx context.Context, dependency string) error {
	dependency = strings.TrimSpace(dependency)
	if dependency == "" {
		return errors.New("globals: dependency is required")
	}
	if m.runner == nil {
		return errors.New("globals: process runner is required")
	}
	if !strings.Contains(dependency, "@") {
		dependency += "@latest"
	}

	result, err := m.runner.Run(ctx, "go", "install", dependency)
	if err != nil {
		return fmt.Errorf("globals: install %s: %w", dependency, err)
	}
	if !result.Success() {
		return fmt.Errorf("globals: go install %s exited with %d: %s", dependency, result.ExitCode, result.Stderr)
	}
	return nil
}

// Uninstall 删除 dir 下名为 name 的可执行文件。文件不存在时返回 false 且不报错。
func (m *Manager) Uninstall(dir, name string, hostOS models.HostOS) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, errors.New("globals: dependency name is required")
	}
	if dir == "" {
		return false, errors.New("globals: globals directory is required")
	}

	// 允许传入模块路径，例如 golang.org/x/tools/gopls@latest
	name, _, _ = strings.Cut(name, "@")
	name = filepath.Base(name)
	if hostOS == models.Windows && !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}

	target := filepath.Join(dir, name)
	if !m.fs.Exists(target) {
		return false, nil
	}
	if err := m.fs.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("globals: remove %s: %w", target, err)
	}
	return true, nil
}
