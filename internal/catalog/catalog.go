// Package catalog 将上游仓库的原始 tag 列表整理为已发布版本目录。
package catalog

import (
	"regexp"
	"slices"
	"strings"

	"github.com/liangyou/gotool/internal/goversion"
	"github.com/liangyou/gotool/pkg/models"
)

const (
	AliasLatest = "latest"

	tagPrefix   = "go"
	refsPrefix  = "refs/tags/"
	derefMarker = "^{}"
)

var partialPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Build 过滤、归一化并排序 tag，生成带 latest 别名的版本目录。
func Build(tags []string) models.ReleaseCatalog {
	seen := make(map[string]struct{}, len(tags))
	versions := make([]string, 0, len(tags))

	for _, tag := range tags {
		token, ok := nativeToken(tag)
		if !ok {
			continue
		}
		version := goversion.ToSemantic(token)
		if _, dup := seen[version]; dup {
			continue
		}
		seen[version] = struct{}{}
		versions = append(versions, version)
	}

	slices.SortFunc(versions, goversion.Compare)

	result := models.ReleaseCatalog{
		Versions: versions,
		Aliases:  map[string]string{},
	}
	if len(versions) > 0 {
		result.Latest = versions[len(versions)-1]
		result.Aliases[AliasLatest] = result.Latest
	}
	return result
}

// Skipped 返回会被 Build 丢弃的 tag，便于日志输出。
func Skipped(tags []string) []string {
	var skipped []string
	for _, tag := range tags {
		if _, ok := nativeToken(tag); !ok {
			skipped = append(skipped, tag)
		}
	}
	return skipped
}

func nativeToken(tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if strings.HasSuffix(tag, derefMarker) {
		return "", false
	}
	tag = strings.TrimPrefix(tag, refsPrefix)

	token, ok := strings.CutPrefix(tag, tagPrefix)
	if !ok || !goversion.IsNative(token) {
		return "", false
	}
	return token, true
}

// Resolve 将用户请求解析为目录中的具体版本。
// 支持别名、完整版本（原生或语义化写法），以及 1.19 / go1.19 这类部分版本，
// 部分版本取该前缀下最高的正式版。
func Resolve(c models.ReleaseCatalog, request string) (string, bool) {
	request = strings.TrimSpace(request)
	if target, ok := c.Aliases[request]; ok {
		return target, true
	}

	request = strings.TrimPrefix(strings.TrimPrefix(request, "v"), tagPrefix)

	exact := ""
	switch {
	case goversion.IsValid(request):
		exact = request
	case goversion.IsNative(request) && goversion.IsPrerelease(goversion.ToSemantic(request)):
		exact = goversion.ToSemantic(request)
	case !partialPattern.MatchString(request):
		return "", false
	}
	if exact != "" {
		if slices.Contains(c.Versions, exact) {
			return exact, true
		}
		return "", false
	}

	var best string
	for _, v := range c.Versions {
		if goversion.IsPrerelease(v) || !strings.HasPrefix(v, request+".") {
			continue
		}
		if best == "" || goversion.Compare(v, best) > 0 {
			best = v
		}
	}
	return best, best != ""
}
