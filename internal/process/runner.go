// Package process 封装外部命令执行，供 tag 拉取与全局包安装使用。
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result 保存一次命令执行的结果。
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success 表示命令以 0 退出。
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner 定义执行外部命令的能力，测试时可替换。
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner 基于 os/exec 实现 Runner。
type ExecRunner struct {
	Env []string
}

// NewExecRunner 创建 ExecRunner，env 为空时继承当前进程环境。
func NewExecRunner(env ...string) *ExecRunner {
	return &ExecRunner{Env: env}
}

// Run 执行命令。非零退出码不视为错误，由调用方根据 Result 判断；
// 只有命令无法启动或被取消时才返回 error。
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	default:
		return result, fmt.Errorf("process: run %s: %w", name, err)
	}
}
