package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liangyou/gotool/internal/region"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gotool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("region", "", "")
	fs.String("tag-source", "", "")
	fs.String("log-level", "", "")
	fs.StringP("output", "o", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, TagSourceGit, cfg.TagSource)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, region.GoogleMirror, cfg.Mirror())
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `
region: cn
tag_source: dist
log_level: warn
output: yaml
repository: https://example.com/go.git
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "cn", cfg.Region)
		assert.Equal(t, TagSourceDist, cfg.TagSource)
		assert.Equal(t, OutputYAML, cfg.Output)
		assert.Equal(t, "https://example.com/go.git", cfg.Repository)
		assert.Equal(t, hclog.Warn, cfg.Level())
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("GOTOOL_OUTPUT", "json")
		t.Setenv("GOTOOL_DOWNLOAD_BASE", "https://mirror.example/go/")

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, OutputJSON, cfg.Output)
		assert.Equal(t, "https://mirror.example/go/", cfg.Mirror().DownloadBase)
		assert.Equal(t, region.ChinaMirror.APIBase, cfg.Mirror().APIBase)
	})

	t.Run("changed flags override env", func(t *testing.T) {
		t.Setenv("GOTOOL_OUTPUT", "json")

		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"-o", "text", "--log-level", "debug"}))

		cfg, err := Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, OutputText, cfg.Output)
		assert.Equal(t, "debug", cfg.LogLevel)
		// --region and --tag-source were not set, so the file wins
		assert.Equal(t, "cn", cfg.Region)
		assert.Equal(t, TagSourceDist, cfg.TagSource)
	})
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{TagSource: TagSourceGit, Output: OutputText, LogLevel: "info"}

	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown tag source", mutate: func(c *Config) { c.TagSource = "svn" }, errSubstr: "tag_source"},
		{name: "unknown output", mutate: func(c *Config) { c.Output = "xml" }, errSubstr: "output"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, errSubstr: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestMirrorOverrides(t *testing.T) {
	cfg := Config{Region: "CN", DistFeed: "https://feed.example/dl.json"}

	mirror := cfg.Mirror()
	assert.Equal(t, region.ChinaMirror.DownloadBase, mirror.DownloadBase)
	assert.Equal(t, "https://feed.example/dl.json", mirror.APIBase)
}
