// Package region 根据地区选择 Go 发布包的镜像源。
package region

import "strings"

// MirrorConfig 描述发布列表与下载地址前缀。
type MirrorConfig struct {
	Name         string
	APIBase      string
	DownloadBase string
}

var (
	// GoogleMirror 表示默认官方源。
	GoogleMirror = MirrorConfig{
		Name:         "google",
		APIBase:      "https://go.dev/dl/?mode=json&include=all",
		DownloadBase: "https://dl.google.com/go/",
	}
	// ChinaMirror 表示国内镜像源。
	ChinaMirror = MirrorConfig{
		Name:         "china",
		APIBase:      "https://golang.google.cn/dl/?mode=json&include=all",
		DownloadBase: "https://golang.google.cn/dl/",
	}
)

// SelectMirror 根据国家代码或镜像名返回镜像配置，未知取值使用官方源。
func SelectMirror(region string) MirrorConfig {
	switch strings.ToLower(strings.TrimSpace(region)) {
	case "cn", "china":
		return ChinaMirror
	default:
		return GoogleMirror
	}
}
