// Package goversion 负责 Go 原生版本写法与语义化版本之间的互相转换。
//
// Go 的发布 tag 会省略末尾的 .0（go1、go1.21），预发布标记直接拼接在数字后
// （go1.4rc1、go1.19.1beta），这里统一转换为 MAJOR.MINOR.PATCH[-PRERELEASE]。
package goversion

import (
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

var prereleaseMarkers = [...]string{"alpha", "beta", "rc"}

var nativePattern = regexp.MustCompile(`^\d+(\.\d+)*((alpha|beta|rc)\d*)?$`)

// ToSemantic 将原生写法转换为语义化版本，对自身输出重复调用结果不变。
func ToSemantic(native string) string {
	// 零版本不以 .0 结尾，需要手动补齐
	var suffix string
	switch strings.Count(native, ".") {
	case 0:
		suffix = ".0.0"
	case 1:
		suffix = ".0"
	}

	for _, marker := range prereleaseMarkers {
		idx := strings.Index(native, marker)
		if idx < 0 {
			continue
		}
		if strings.HasSuffix(native[:idx], suffix+"-") {
			return native
		}
		return native[:idx] + suffix + "-" + native[idx:]
	}

	return native + suffix
}

// ToNative 是 ToSemantic 的逆变换：去掉多余的 .0 分量以及预发布分隔符。
func ToNative(semantic string) string {
	core, pre, _ := strings.Cut(semantic, "-")

	parts := strings.Split(core, ".")
	for len(parts) > 1 && parts[len(parts)-1] == "0" {
		parts = parts[:len(parts)-1]
	}

	return strings.Join(parts, ".") + pre
}

// IsNative 判断 token 是否为合法的原生写法，调用方应在归一化前先行过滤。
func IsNative(token string) bool {
	return nativePattern.MatchString(token)
}

// IsPrerelease 判断语义化版本是否带预发布后缀。
func IsPrerelease(version string) bool {
	return semver.Prerelease(canonical(version)) != ""
}

// Compare 比较两个语义化版本，返回 -1、0 或 1。非法版本视为最小。
func Compare(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

// IsValid 判断字符串是否为完整的三段式语义化版本。
func IsValid(version string) bool {
	v := canonical(version)
	return semver.IsValid(v) && strings.Count(strings.SplitN(v, "-", 2)[0], ".") == 2
}

func canonical(version string) string {
	return "v" + strings.TrimPrefix(version, "v")
}
