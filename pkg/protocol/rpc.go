package protocol

import (
	"context"
	"errors"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ToolPluginRPC 实现 go-plugin 的 Plugin 接口。
type ToolPluginRPC struct {
	plugin.Plugin
	Impl Tool
}

// Server 返回插件侧的 RPC 服务。
func (p *ToolPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ToolRPCServer{Impl: p.Impl}, nil
}

// Client 返回宿主侧的 RPC 客户端。
func (p *ToolPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ToolRPCClient{client: c}, nil
}

// ToolRPCServer 把 net/rpc 调用转发给 Tool 实现。
type ToolRPCServer struct {
	Impl Tool
}

func (s *ToolRPCServer) RegisterTool(_ any, resp *ToolMetadataOutput) error {
	out, err := s.Impl.RegisterTool(context.Background())
	*resp = out
	return err
}

func (s *ToolRPCServer) DownloadPrebuilt(in DownloadPrebuiltInput, resp *DownloadPrebuiltOutput) error {
	out, err := s.Impl.DownloadPrebuilt(context.Background(), in)
	*resp = out
	return err
}

func (s *ToolRPCServer) LocateBins(in LocateBinsInput, resp *LocateBinsOutput) error {
	out, err := s.Impl.LocateBins(context.Background(), in)
	*resp = out
	return err
}

func (s *ToolRPCServer) LoadVersions(in LoadVersionsInput, resp *LoadVersionsOutput) error {
	out, err := s.Impl.LoadVersions(context.Background(), in)
	*resp = out
	return err
}

func (s *ToolRPCServer) DetectVersionFiles(_ any, resp *DetectVersionOutput) error {
	out, err := s.Impl.DetectVersionFiles(context.Background())
	*resp = out
	return err
}

func (s *ToolRPCServer) ParseVersionFile(in ParseVersionFileInput, resp *ParseVersionFileOutput) error {
	out, err := s.Impl.ParseVersionFile(context.Background(), in)
	*resp = out
	return err
}

func (s *ToolRPCServer) InstallGlobal(in InstallGlobalInput, resp *GlobalOutput) error {
	out, err := s.Impl.InstallGlobal(context.Background(), in)
	*resp = out
	return err
}

func (s *ToolRPCServer) UninstallGlobal(in UninstallGlobalInput, resp *GlobalOutput) error {
	out, err := s.Impl.UninstallGlobal(context.Background(), in)
	*resp = out
	return err
}

func (s *ToolRPCServer) SyncShellProfile(in SyncShellProfileInput, resp *SyncShellProfileOutput) error {
	out, err := s.Impl.SyncShellProfile(context.Background(), in)
	*resp = out
	return err
}

// ToolRPCClient 在宿主侧实现 Tool，每个方法对应一次 RPC 调用。
type ToolRPCClient struct {
	client *rpc.Client
}

func (c *ToolRPCClient) call(method string, args, reply any) error {
	err := c.client.Call("Plugin."+method, args, reply)
	var serverErr rpc.ServerError
	if errors.As(err, &serverErr) {
		return &RPCError{Method: method, Message: string(serverErr)}
	}
	return err
}

func (c *ToolRPCClient) RegisterTool(_ context.Context) (ToolMetadataOutput, error) {
	var out ToolMetadataOutput
	err := c.call("RegisterTool", new(any), &out)
	return out, err
}

func (c *ToolRPCClient) DownloadPrebuilt(_ context.Context, in DownloadPrebuiltInput) (DownloadPrebuiltOutput, error) {
	var out DownloadPrebuiltOutput
	if err := c.call("DownloadPrebuilt", in, &out); err != nil {
		return DownloadPrebuiltOutput{}, err
	}
	return out, nil
}

func (c *ToolRPCClient) LocateBins(_ context.Context, in LocateBinsInput) (LocateBinsOutput, error) {
	var out LocateBinsOutput
	err := c.call("LocateBins", in, &out)
	return out, err
}

func (c *ToolRPCClient) LoadVersions(_ context.Context, in LoadVersionsInput) (LoadVersionsOutput, error) {
	var out LoadVersionsOutput
	err := c.call("LoadVersions", in, &out)
	return out, err
}

func (c *ToolRPCClient) DetectVersionFiles(_ context.Context) (DetectVersionOutput, error) {
	var out DetectVersionOutput
	err := c.call("DetectVersionFiles", new(any), &out)
	return out, err
}

func (c *ToolRPCClient) ParseVersionFile(_ context.Context, in ParseVersionFileInput) (ParseVersionFileOutput, error) {
	var out ParseVersionFileOutput
	err := c.call("ParseVersionFile", in, &out)
	return out, err
}

func (c *ToolRPCClient) InstallGlobal(_ context.Context, in InstallGlobalInput) (GlobalOutput, error) {
	var out GlobalOutput
	err := c.call("InstallGlobal", in, &out)
	return out, err
}

func (c *ToolRPCClient) UninstallGlobal(_ context.Context, in UninstallGlobalInput) (GlobalOutput, error) {
	var out GlobalOutput
	err := c.call("UninstallGlobal", in, &out)
	return out, err
}

func (c *ToolRPCClient) SyncShellProfile(_ context.Context, in SyncShellProfileInput) (SyncShellProfileOutput, error) {
	var out SyncShellProfileOutput
	err := c.call("SyncShellProfile", in, &out)
	return out, err
}

// RPCError 表示插件侧返回的错误。
type RPCError struct {
	Method  string
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}

var (
	_ Tool = (*ToolRPCClient)(nil)
)
