// Package versionfile 从 go.mod、go.work 中读取固定的 Go 版本。
package versionfile

import (
	"path/filepath"
	"strings"

	"github.com/liangyou/gotool/internal/goversion"
)

const directive = "go "

// Files 返回可识别的版本声明文件名。
func Files() []string {
	return []string{"go.mod", "go.work"}
}

// Recognized 判断文件名是否为可识别的版本声明文件。
func Recognized(filename string) bool {
	base := filepath.Base(filename)
	for _, name := range Files() {
		if base == name {
			return true
		}
	}
	return false
}

// Parse 返回第一行 go 指令声明的语义化版本；未找到时 ok 为 false。
func Parse(filename, content string) (version string, ok bool) {
	if !Recognized(filename) {
		return "", false
	}

	for _, line := range strings.Split(content, "\n") {
		rest, found := strings.CutPrefix(line, directive)
		if !found {
			continue
		}
		if idx := strings.Index(rest, "//"); idx >= 0 {
			rest = rest[:idx]
		}
		token := strings.TrimSpace(rest)
		if !goversion.IsNative(token) {
			return "", false
		}
		return goversion.ToSemantic(token), true
	}

	return "", false
}
