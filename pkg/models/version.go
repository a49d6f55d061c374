package models

// Artifact 描述某个版本在某个平台上的预编译包位置。每次请求重新计算，不做缓存。
type Artifact struct {
	ArchivePrefix string `json:"archive_prefix" yaml:"archive_prefix"` // 解压后的顶层目录，例如 go
	DownloadName  string `json:"download_name" yaml:"download_name"`   // 文件名，例如 go1.21.linux-amd64.tar.gz
	DownloadURL   string `json:"download_url" yaml:"download_url"`     // 完整下载地址
	ChecksumURL   string `json:"checksum_url,omitempty" yaml:"checksum_url,omitempty"`
}

// ReleaseCatalog 是由上游 tag 构建出的已发布版本集合。
type ReleaseCatalog struct {
	Versions []string          `json:"versions" yaml:"versions"` // 语义化版本，升序
	Latest   string            `json:"latest,omitempty" yaml:"latest,omitempty"`
	Aliases  map[string]string `json:"aliases" yaml:"aliases"`
}
