// Package buildinfo 保存编译期通过 ldflags 注入的版本信息。
//
//	go build -ldflags "-X github.com/liangyou/gotool/internal/buildinfo.Version=v0.1.0"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info 汇总版本信息，用于 version 命令的结构化输出。
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get 返回当前二进制的版本信息。
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String 返回单行可读版本。
func String() string {
	info := Get()
	commit := info.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	if commit != "unknown" && info.Date != "unknown" {
		return fmt.Sprintf("gotool %s (commit: %s, built: %s, %s, %s)", info.Version, commit, info.Date, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("gotool %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
}
