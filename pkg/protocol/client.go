package protocol

import (
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

// Serve 在插件进程中启动 RPC 服务，阻塞直到宿主断开。
func Serve(impl Tool, logger hclog.Logger) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
		Logger:          logger,
	})
}

// NewClient 在宿主侧启动插件进程。调用方负责 Kill。
func NewClient(path string, logger hclog.Logger, args ...string) *plugin.Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  Handshake,
		Plugins:          PluginMap(nil),
		Cmd:              exec.Command(path, args...),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           logger,
	})
}

// Dispense 连接插件并返回 Tool。
func Dispense(client plugin.ClientProtocol) (Tool, error) {
	raw, err := client.Dispense(PluginName)
	if err != nil {
		return nil, fmt.Errorf("protocol: dispense plugin: %w", err)
	}
	tool, ok := raw.(Tool)
	if !ok {
		return nil, fmt.Errorf("protocol: unexpected plugin type %T", raw)
	}
	return tool, nil
}
