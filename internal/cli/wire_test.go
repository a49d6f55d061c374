package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liangyou/gotool/internal/config"
	"github.com/liangyou/gotool/internal/remote"
	"github.com/liangyou/gotool/pkg/models"
	"github.com/liangyou/gotool/pkg/protocol"
)

func configuredEntry(t *testing.T, cfg *config.Config) (protocol.Tool, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug, JSONFormat: true})
	tl := NewTool(cfg, logger)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return tl, entry
}

func TestNewToolDistMirror(t *testing.T) {
	t.Parallel()

	tl, entry := configuredEntry(t, &config.Config{Region: "cn", TagSource: config.TagSourceDist})
	assert.Equal(t, "tool configured", entry["@message"])
	assert.Equal(t, "china", entry["mirror"])
	assert.Equal(t, "https://golang.google.cn/dl/", entry["download_base"])
	assert.Equal(t, "https://golang.google.cn/dl/?mode=json&include=all", entry["origin"])

	out, err := tl.DownloadPrebuilt(context.Background(), protocol.DownloadPrebuiltInput{
		Env:     protocol.HostEnvironment{OS: models.Linux, Arch: models.X64},
		Version: "1.22.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://golang.google.cn/dl/go1.22.1.linux-amd64.tar.gz", out.DownloadURL)
	assert.Equal(t, "https://dl.google.com/go/go1.22.1.linux-amd64.tar.gz.sha256", out.ChecksumURL)
}

func TestNewToolGitRepository(t *testing.T) {
	t.Parallel()

	_, entry := configuredEntry(t, &config.Config{TagSource: config.TagSourceGit, DownloadBase: "https://mirror.example/go"})
	assert.Equal(t, "google", entry["mirror"])
	assert.Equal(t, "https://mirror.example/go/", entry["download_base"])
	assert.Equal(t, remote.DefaultRepository, entry["origin"])
}
