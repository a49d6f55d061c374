// Package platform 根据操作系统与 CPU 架构解析 Go 预编译包的文件名与下载地址。
package platform

import (
	"fmt"
	"strings"

	"github.com/liangyou/gotool/internal/goversion"
	"github.com/liangyou/gotool/pkg/models"
)

const (
	ToolName = "Go"
	BinName  = "go"

	defaultDownloadBase = "https://dl.google.com/go/"
	// 镜像站不保证提供 .sha256 文件，校验和始终取自官方源。
	checksumBase        = defaultDownloadBase
	checksumSuffix      = ".sha256"
	archivePrefix       = "go"
)

// Resolver 是纯函数式的解析器：输出只取决于 (os, arch, version) 与静态支持矩阵。
type Resolver struct {
	downloadBase string
}

// Option 用于配置 Resolver。
type Option func(*Resolver)

// WithDownloadBase 设置下载地址前缀，例如镜像站。校验和地址不受影响。
func WithDownloadBase(base string) Option {
	return func(r *Resolver) {
		base = strings.TrimSpace(base)
		if base == "" {
			return
		}
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		r.downloadBase = base
	}
}

// NewResolver 创建 Resolver。
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{downloadBase: defaultDownloadBase}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DownloadBase 返回当前使用的下载地址前缀。
func (r *Resolver) DownloadBase() string {
	return r.downloadBase
}

// Supports 校验 (os, arch) 是否在支持矩阵内。
func (r *Resolver) Supports(os models.HostOS, arch models.HostArch) error {
	archs, ok := supportedArchs(os)
	if !ok {
		return &UnsupportedPlatformError{Tool: ToolName, OS: os, Arch: arch, Dimension: DimensionOS}
	}
	for _, a := range archs {
		if a == arch {
			return nil
		}
	}
	return &UnsupportedPlatformError{Tool: ToolName, OS: os, Arch: arch, Dimension: DimensionArch}
}

// DownloadPrebuilt 返回指定语义化版本在目标平台上的预编译包描述。
func (r *Resolver) DownloadPrebuilt(os models.HostOS, arch models.HostArch, version string) (models.Artifact, error) {
	if err := r.Supports(os, arch); err != nil {
		return models.Artifact{}, err
	}

	// 经过矩阵校验后两个映射必然命中
	archToken, _ := archToken(arch)
	osTag, _ := osTag(os)

	prefix := fmt.Sprintf("go%s.%s-%s", goversion.ToNative(version), osTag, archToken)
	filename := prefix + archiveExt(os)
	downloadURL := r.downloadBase + filename

	return models.Artifact{
		ArchivePrefix: archivePrefix,
		DownloadName:  filename,
		DownloadURL:   downloadURL,
		ChecksumURL:   checksumBase + filename + checksumSuffix,
	}, nil
}

// BinPath 返回安装目录内 go 可执行文件的相对路径。
func (r *Resolver) BinPath(os models.HostOS) string {
	if os == models.Windows {
		return "bin/" + BinName + ".exe"
	}
	return "bin/" + BinName
}

// GlobalsLookupDirs 返回查找全局安装包时依次检查的目录。
func (r *Resolver) GlobalsLookupDirs() []string {
	return []string{
		"$GOBIN",
		"$GOROOT/bin",
		"$GOPATH/bin",
		"$HOME/go/bin",
	}
}

// FallbackLastGlobalsDir 表示上述目录都不存在时使用最后一个作为安装目录。
func (r *Resolver) FallbackLastGlobalsDir() bool {
	return true
}

func supportedArchs(os models.HostOS) ([]models.HostArch, bool) {
	switch os {
	case models.Linux:
		return []models.HostArch{models.X64, models.Arm64, models.X86, models.Arm, models.S390x}, true
	case models.MacOS:
		return []models.HostArch{models.X64, models.Arm64}, true
	case models.Windows:
		return []models.HostArch{models.X64, models.Arm64, models.X86}, true
	case models.FreeBSD:
		return []models.HostArch{models.X64, models.X86}, true
	case models.NetBSD, models.OpenBSD, models.Android, models.OSUnknown:
		return nil, false
	default:
		return nil, false
	}
}

func archToken(arch models.HostArch) (string, bool) {
	switch arch {
	case models.X64:
		return "amd64", true
	case models.X86:
		return "386", true
	case models.Arm:
		return "armv6l", true
	case models.Arm64:
		return "arm64", true
	case models.S390x:
		return "s390x", true
	case models.Ppc64le, models.Riscv64, models.ArchUnknown:
		return "", false
	default:
		return "", false
	}
}

func osTag(os models.HostOS) (string, bool) {
	switch os {
	case models.Linux:
		return "linux", true
	case models.MacOS:
		return "darwin", true
	case models.Windows:
		return "windows", true
	case models.FreeBSD:
		return "freebsd", true
	case models.NetBSD, models.OpenBSD, models.Android, models.OSUnknown:
		return "", false
	default:
		return "", false
	}
}

func archiveExt(os models.HostOS) string {
	if os == models.Windows {
		return ".zip"
	}
	return ".tar.gz"
}
