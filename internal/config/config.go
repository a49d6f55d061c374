// Package config 按 默认值 < gotool.yaml < GOTOOL_ 环境变量 < 命令行参数 的顺序加载配置。
package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/liangyou/gotool/internal/region"
)

const (
	DefaultFile     = "gotool.yaml"
	EnvPrefix       = "GOTOOL_"
	DefaultLogLevel = "info"

	TagSourceGit  = "git"
	TagSourceDist = "dist"

	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config 是合并后的配置。
type Config struct {
	// Region 选择镜像，例如 cn；为空时使用官方源。
	Region string `koanf:"region"`

	// DownloadBase、DistFeed 非空时覆盖镜像的下载前缀与发布列表地址。
	DownloadBase string `koanf:"download_base"`
	DistFeed     string `koanf:"dist_feed"`

	Repository string `koanf:"repository"`
	TagSource  string `koanf:"tag_source"`
	LogLevel   string `koanf:"log_level"`
	Output     string `koanf:"output"`
}

func defaults() map[string]any {
	return map[string]any{
		"region":        "",
		"download_base": "",
		"dist_feed":     "",
		"repository":    "",
		"tag_source":    TagSourceGit,
		"log_level":     DefaultLogLevel,
		"output":        OutputText,
	}
}

// Validate 校验枚举类配置项。
func (c *Config) Validate() error {
	switch c.TagSource {
	case TagSourceGit, TagSourceDist:
	default:
		return fmt.Errorf("config: unknown tag_source %q (want %s or %s)", c.TagSource, TagSourceGit, TagSourceDist)
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("config: unknown output %q (want text, json or yaml)", c.Output)
	}

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Level 返回 LogLevel 对应的日志级别，无法识别时为 info。
func (c *Config) Level() hclog.Level {
	if level := hclog.LevelFromString(c.LogLevel); level != hclog.NoLevel {
		return level
	}
	return hclog.Info
}

// Mirror 返回地区镜像，并应用显式覆盖。
func (c *Config) Mirror() region.MirrorConfig {
	mirror := region.SelectMirror(c.Region)
	if base := strings.TrimSpace(c.DownloadBase); base != "" {
		mirror.DownloadBase = base
	}
	if feed := strings.TrimSpace(c.DistFeed); feed != "" {
		mirror.APIBase = feed
	}
	return mirror
}
