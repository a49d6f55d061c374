package process

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestExecRunnerCapturesOutput(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	result, err := NewExecRunner().Run(context.Background(), "sh", "-c", "echo hello; echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.ExitCode != 3 || result.Success() {
		t.Fatalf("unexpected exit code %d", result.ExitCode)
	}
	if strings.TrimSpace(result.Stdout) != "hello" || result.Stderr != "oops" {
		t.Fatalf("unexpected output: %+v", result)
	}
}

func TestExecRunnerPassesEnv(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	result, err := NewExecRunner("GOTOOL_TEST_VALUE=42").Run(context.Background(), "sh", "-c", "printf %s \"$GOTOOL_TEST_VALUE\"")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Stdout != "42" {
		t.Fatalf("env not passed: %q", result.Stdout)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	t.Parallel()

	if _, err := NewExecRunner().Run(context.Background(), "gotool-definitely-missing-binary"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}
