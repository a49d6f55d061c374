// Package protocol 定义宿主与 gotool 插件之间的调用协议。
// 宿主程序应只依赖本包，而不是 internal 下的实现。
package protocol

import "github.com/liangyou/gotool/pkg/models"

// HostEnvironment 描述目标平台。
type HostEnvironment struct {
	OS   models.HostOS   `json:"os" yaml:"os"`
	Arch models.HostArch `json:"arch" yaml:"arch"`
}

// ToolMetadataOutput 是 RegisterTool 的返回值。
type ToolMetadataOutput struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"` // language
	PluginVersion string `json:"plugin_version" yaml:"plugin_version"`
}

// DownloadPrebuiltInput 请求某个语义化版本的预编译包。
type DownloadPrebuiltInput struct {
	Env     HostEnvironment `json:"env" yaml:"env"`
	Version string          `json:"version" yaml:"version"`
}

// DownloadPrebuiltOutput 是解析出的下载信息。
type DownloadPrebuiltOutput struct {
	models.Artifact `yaml:",inline"`
}

// LocateBinsInput 请求可执行文件位置。
type LocateBinsInput struct {
	Env HostEnvironment `json:"env" yaml:"env"`
}

// LocateBinsOutput 描述可执行文件与全局包目录。
type LocateBinsOutput struct {
	BinPath                string   `json:"bin_path" yaml:"bin_path"`
	FallbackLastGlobalsDir bool     `json:"fallback_last_globals_dir" yaml:"fallback_last_globals_dir"`
	GlobalsLookupDirs      []string `json:"globals_lookup_dirs" yaml:"globals_lookup_dirs"`
}

// LoadVersionsInput 请求已发布版本目录。Initial 为用户最初请求的版本，仅用于日志。
type LoadVersionsInput struct {
	Initial string `json:"initial,omitempty" yaml:"initial,omitempty"`
}

// LoadVersionsOutput 是版本目录。
type LoadVersionsOutput struct {
	models.ReleaseCatalog `yaml:",inline"`
}

// DetectVersionOutput 列出可识别的版本声明文件。
type DetectVersionOutput struct {
	Files []string `json:"files" yaml:"files"`
}

// ParseVersionFileInput 是待解析的文件名与内容。
type ParseVersionFileInput struct {
	File    string `json:"file" yaml:"file"`
	Content string `json:"content" yaml:"content"`
}

// ParseVersionFileOutput 中 Found 为 false 表示文件未声明版本，不是错误。
type ParseVersionFileOutput struct {
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Found   bool   `json:"found" yaml:"found"`
}

// InstallGlobalInput 请求通过 go install 安装全局包。
type InstallGlobalInput struct {
	Dependency string          `json:"dependency" yaml:"dependency"`
	Env        HostEnvironment `json:"env" yaml:"env"`
}

// UninstallGlobalInput 请求从 GlobalsDir 删除全局包。
type UninstallGlobalInput struct {
	Dependency string          `json:"dependency" yaml:"dependency"`
	GlobalsDir string          `json:"globals_dir" yaml:"globals_dir"`
	Env        HostEnvironment `json:"env" yaml:"env"`
}

// GlobalOutput 报告全局包操作结果。
type GlobalOutput struct {
	Success bool   `json:"success" yaml:"success"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SyncShellProfileInput 请求 shell 配置建议。
type SyncShellProfileInput struct {
	Shell string `json:"shell,omitempty" yaml:"shell,omitempty"`
}

// SyncShellProfileOutput 描述需要写入 shell 配置的变量。CheckVar 已存在时宿主可跳过。
type SyncShellProfileOutput struct {
	CheckVar   string            `json:"check_var" yaml:"check_var"`
	ExportVars map[string]string `json:"export_vars" yaml:"export_vars"`
	ExtendPath []string          `json:"extend_path" yaml:"extend_path"`
	Skip       bool              `json:"skip" yaml:"skip"`
}
