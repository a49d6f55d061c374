package platform

import (
	"fmt"
	"runtime"

	"github.com/liangyou/gotool/pkg/models"
)

// Checker 探测当前宿主平台，并校验其是否能安装 Go 预编译包。
type Checker struct {
	resolver *Resolver
	goos     func() string
	goarch   func() string
}

// NewChecker 创建平台检测器。
func NewChecker(resolver *Resolver) *Checker {
	if resolver == nil {
		resolver = NewResolver()
	}
	return &Checker{
		resolver: resolver,
		goos:     func() string { return runtime.GOOS },
		goarch:   func() string { return runtime.GOARCH },
	}
}

// Host 将 GOOS/GOARCH 映射为枚举值。
func (c *Checker) Host() (models.HostOS, models.HostArch, error) {
	os, err := models.ParseHostOS(c.goos())
	if err != nil {
		return models.OSUnknown, models.ArchUnknown, fmt.Errorf("platform: detect host: %w", err)
	}
	arch, err := models.ParseHostArch(c.goarch())
	if err != nil {
		return os, models.ArchUnknown, fmt.Errorf("platform: detect host: %w", err)
	}
	return os, arch, nil
}

// Validate 校验当前平台是否在支持矩阵内。
func (c *Checker) Validate() error {
	os, arch, err := c.Host()
	if err != nil {
		return err
	}
	return c.resolver.Supports(os, arch)
}
