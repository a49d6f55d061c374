package models

import (
	"fmt"
	"strings"
)

// HostOS 表示宿主操作系统，取值为封闭枚举。
type HostOS int

const (
	OSUnknown HostOS = iota
	Linux
	MacOS
	Windows
	FreeBSD
	NetBSD
	OpenBSD
	Android
)

// HostArch 表示宿主 CPU 架构，取值为封闭枚举。
type HostArch int

const (
	ArchUnknown HostArch = iota
	X64
	X86
	Arm
	Arm64
	S390x
	Ppc64le
	Riscv64
)

// AllOS 返回除 OSUnknown 外的全部操作系统。
func AllOS() []HostOS {
	return []HostOS{Linux, MacOS, Windows, FreeBSD, NetBSD, OpenBSD, Android}
}

// AllArch 返回除 ArchUnknown 外的全部架构。
func AllArch() []HostArch {
	return []HostArch{X64, X86, Arm, Arm64, S390x, Ppc64le, Riscv64}
}

func (o HostOS) String() string {
	switch o {
	case Linux:
		return "linux"
	case MacOS:
		return "macos"
	case Windows:
		return "windows"
	case FreeBSD:
		return "freebsd"
	case NetBSD:
		return "netbsd"
	case OpenBSD:
		return "openbsd"
	case Android:
		return "android"
	default:
		return "unknown"
	}
}

func (a HostArch) String() string {
	switch a {
	case X64:
		return "x64"
	case X86:
		return "x86"
	case Arm:
		return "arm"
	case Arm64:
		return "arm64"
	case S390x:
		return "s390x"
	case Ppc64le:
		return "ppc64le"
	case Riscv64:
		return "riscv64"
	default:
		return "unknown"
	}
}

// ParseHostOS 同时接受枚举名称与 GOOS 写法（例如 macos 与 darwin）。
func ParseHostOS(value string) (HostOS, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "linux":
		return Linux, nil
	case "macos", "darwin", "mac":
		return MacOS, nil
	case "windows", "win":
		return Windows, nil
	case "freebsd":
		return FreeBSD, nil
	case "netbsd":
		return NetBSD, nil
	case "openbsd":
		return OpenBSD, nil
	case "android":
		return Android, nil
	default:
		return OSUnknown, fmt.Errorf("models: unknown operating system %q", value)
	}
}

// ParseHostArch 同时接受枚举名称与 GOARCH 写法（例如 x64 与 amd64）。
func ParseHostArch(value string) (HostArch, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "x64", "amd64", "x86_64":
		return X64, nil
	case "x86", "386", "i386", "i686":
		return X86, nil
	case "arm", "armv6l", "armv7l":
		return Arm, nil
	case "arm64", "aarch64":
		return Arm64, nil
	case "s390x":
		return S390x, nil
	case "ppc64le":
		return Ppc64le, nil
	case "riscv64":
		return Riscv64, nil
	default:
		return ArchUnknown, fmt.Errorf("models: unknown architecture %q", value)
	}
}

// MarshalText 实现 encoding.TextMarshaler，JSON/YAML 中以名称输出。
func (o HostOS) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，unknown 还原为 OSUnknown。
func (o *HostOS) UnmarshalText(text []byte) error {
	if string(text) == OSUnknown.String() {
		*o = OSUnknown
		return nil
	}
	parsed, err := ParseHostOS(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalText 实现 encoding.TextMarshaler。
func (a HostArch) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，unknown 还原为 ArchUnknown。
func (a *HostArch) UnmarshalText(text []byte) error {
	if string(text) == ArchUnknown.String() {
		*a = ArchUnknown
		return nil
	}
	parsed, err := ParseHostArch(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
