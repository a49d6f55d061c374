package protocol

import (
	"context"

	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion 为插件协议的主版本，宿主与插件必须一致。
	ProtocolVersion = 1

	// PluginName 是 go-plugin Dispense 时使用的名字。
	PluginName = "tool"

	// PluginTypeLanguage 表示插件描述的是一种语言工具链。
	PluginTypeLanguage = "language"
)

// Handshake 保证只有兼容的宿主才能连接插件。
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  ProtocolVersion,
	MagicCookieKey:   "GOTOOL_PLUGIN",
	MagicCookieValue: "go_toolchain_descriptor",
}

// Tool 是插件需要实现的全部操作，宿主每次只调用其中一个。
type Tool interface {
	RegisterTool(ctx context.Context) (ToolMetadataOutput, error)
	DownloadPrebuilt(ctx context.Context, in DownloadPrebuiltInput) (DownloadPrebuiltOutput, error)
	LocateBins(ctx context.Context, in LocateBinsInput) (LocateBinsOutput, error)
	LoadVersions(ctx context.Context, in LoadVersionsInput) (LoadVersionsOutput, error)
	DetectVersionFiles(ctx context.Context) (DetectVersionOutput, error)
	ParseVersionFile(ctx context.Context, in ParseVersionFileInput) (ParseVersionFileOutput, error)
	InstallGlobal(ctx context.Context, in InstallGlobalInput) (GlobalOutput, error)
	UninstallGlobal(ctx context.Context, in UninstallGlobalInput) (GlobalOutput, error)
	SyncShellProfile(ctx context.Context, in SyncShellProfileInput) (SyncShellProfileOutput, error)
}

// PluginMap 返回 go-plugin 使用的插件表。
func PluginMap(impl Tool) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &ToolPluginRPC{Impl: impl},
	}
}
