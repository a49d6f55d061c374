package platform

import (
	"errors"
	"fmt"

	"github.com/liangyou/gotool/pkg/models"
)

// ErrUnsupportedPlatform 可通过 errors.Is 匹配所有 UnsupportedPlatformError。
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Dimension 指出哪个维度不受支持。
type Dimension string

const (
	DimensionOS   Dimension = "os"
	DimensionArch Dimension = "arch"
)

// UnsupportedPlatformError 表示 (os, arch) 不在支持矩阵内，不可重试。
type UnsupportedPlatformError struct {
	Tool      string
	OS        models.HostOS
	Arch      models.HostArch
	Dimension Dimension
}

func (e *UnsupportedPlatformError) Error() string {
	if e.Dimension == DimensionOS {
		return fmt.Sprintf("platform: unsupported operating system %s for %s", e.OS, e.Tool)
	}
	return fmt.Sprintf("platform: unsupported architecture %s on %s for %s", e.Arch, e.OS, e.Tool)
}

func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}
