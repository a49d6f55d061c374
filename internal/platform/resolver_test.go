package platform

import (
	"errors"
	"strings"
	"testing"

	"github.com/liangyou/gotool/pkg/models"
)

func TestDownloadPrebuilt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		os   models.HostOS
		arch models.HostArch
		want string
	}{
		{models.Linux, models.X64, "go1.2.linux-amd64.tar.gz"},
		{models.Linux, models.Arm64, "go1.2.linux-arm64.tar.gz"},
		{models.Linux, models.X86, "go1.2.linux-386.tar.gz"},
		{models.Linux, models.Arm, "go1.2.linux-armv6l.tar.gz"},
		{models.Linux, models.S390x, "go1.2.linux-s390x.tar.gz"},
		{models.MacOS, models.X64, "go1.2.darwin-amd64.tar.gz"},
		{models.MacOS, models.Arm64, "go1.2.darwin-arm64.tar.gz"},
		{models.Windows, models.X64, "go1.2.windows-amd64.zip"},
		{models.Windows, models.Arm64, "go1.2.windows-arm64.zip"},
		{models.Windows, models.X86, "go1.2.windows-386.zip"},
		{models.FreeBSD, models.X64, "go1.2.freebsd-amd64.tar.gz"},
		{models.FreeBSD, models.X86, "go1.2.freebsd-386.tar.gz"},
	}

	resolver := NewResolver()
	for _, tc := range cases {
		got, err := resolver.DownloadPrebuilt(tc.os, tc.arch, "1.2.0")
		if err != nil {
			t.Fatalf("DownloadPrebuilt(%s,%s) error: %v", tc.os, tc.arch, err)
		}
		want := models.Artifact{
			ArchivePrefix: "go",
			DownloadName:  tc.want,
			DownloadURL:   "https://dl.google.com/go/" + tc.want,
			ChecksumURL:   "https://dl.google.com/go/" + tc.want + ".sha256",
		}
		if got != want {
			t.Fatalf("DownloadPrebuilt(%s,%s)=%+v want %+v", tc.os, tc.arch, got, want)
		}
	}
}

func TestDownloadPrebuiltUsesNativeVersion(t *testing.T) {
	t.Parallel()

	resolver := NewResolver()
	cases := map[string]string{
		"1.21.0":     "go1.21.linux-amd64.tar.gz",
		"1.21.5":     "go1.21.5.linux-amd64.tar.gz",
		"1.22.0-rc1": "go1.22rc1.linux-amd64.tar.gz",
		"1.0.0":      "go1.linux-amd64.tar.gz",
	}
	for version, want := range cases {
		got, err := resolver.DownloadPrebuilt(models.Linux, models.X64, version)
		if err != nil {
			t.Fatalf("DownloadPrebuilt(%s) error: %v", version, err)
		}
		if got.DownloadName != want {
			t.Fatalf("DownloadPrebuilt(%s) name=%s want %s", version, got.DownloadName, want)
		}
	}
}

func TestDownloadPrebuiltUnsupported(t *testing.T) {
	t.Parallel()

	resolver := NewResolver()
	supported := map[models.HostOS]map[models.HostArch]bool{
		models.Linux:   {models.X64: true, models.Arm64: true, models.X86: true, models.Arm: true, models.S390x: true},
		models.MacOS:   {models.X64: true, models.Arm64: true},
		models.Windows: {models.X64: true, models.Arm64: true, models.X86: true},
		models.FreeBSD: {models.X64: true, models.X86: true},
	}

	oses := append([]models.HostOS{models.OSUnknown}, models.AllOS()...)
	archs := append([]models.HostArch{models.ArchUnknown}, models.AllArch()...)
	for _, os := range oses {
		for _, arch := range archs {
			got, err := resolver.DownloadPrebuilt(os, arch, "1.2.0")
			if supported[os][arch] {
				if err != nil {
					t.Fatalf("expected %s/%s to be supported: %v", os, arch, err)
				}
				continue
			}

			var upErr *UnsupportedPlatformError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected UnsupportedPlatformError for %s/%s, got %v", os, arch, err)
			}
			if !errors.Is(err, ErrUnsupportedPlatform) {
				t.Fatalf("expected errors.Is match for %s/%s", os, arch)
			}
			if got != (models.Artifact{}) {
				t.Fatalf("expected no artifact for %s/%s, got %+v", os, arch, got)
			}
			wantDim := DimensionArch
			if supported[os] == nil {
				wantDim = DimensionOS
			}
			if upErr.Dimension != wantDim || upErr.Tool != ToolName {
				t.Fatalf("unexpected error fields for %s/%s: %+v", os, arch, upErr)
			}
		}
	}
}

func TestUnsupportedPlatformMessage(t *testing.T) {
	t.Parallel()

	_, err := NewResolver().DownloadPrebuilt(models.MacOS, models.S390x, "1.21.0")
	if err == nil || !strings.Contains(err.Error(), "s390x") || !strings.Contains(err.Error(), "Go") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestWithDownloadBase(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(WithDownloadBase("https://golang.google.cn/dl"))
	got, err := resolver.DownloadPrebuilt(models.Linux, models.X64, "1.21.0")
	if err != nil {
		t.Fatalf("DownloadPrebuilt error: %v", err)
	}
	if got.DownloadURL != "https://golang.google.cn/dl/go1.21.linux-amd64.tar.gz" {
		t.Fatalf("unexpected download url: %s", got.DownloadURL)
	}
	if got.ChecksumURL != "https://dl.google.com/go/go1.21.linux-amd64.tar.gz.sha256" {
		t.Fatalf("checksum should stay on the official host: %s", got.ChecksumURL)
	}

	if NewResolver(WithDownloadBase("  ")).DownloadBase() != defaultDownloadBase {
		t.Fatal("blank base should keep default")
	}
}

func TestBinPathAndGlobals(t *testing.T) {
	t.Parallel()

	resolver := NewResolver()
	if got := resolver.BinPath(models.Windows); got != "bin/go.exe" {
		t.Fatalf("windows bin path=%s", got)
	}
	if got := resolver.BinPath(models.Linux); got != "bin/go" {
		t.Fatalf("linux bin path=%s", got)
	}

	dirs := resolver.GlobalsLookupDirs()
	want := []string{"$GOBIN", "$GOROOT/bin", "$GOPATH/bin", "$HOME/go/bin"}
	if strings.Join(dirs, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected lookup dirs: %v", dirs)
	}
	dirs[0] = "mutated"
	if resolver.GlobalsLookupDirs()[0] != "$GOBIN" {
		t.Fatal("lookup dirs must not be shared between calls")
	}
	if !resolver.FallbackLastGlobalsDir() {
		t.Fatal("expected fallback to last globals dir")
	}
}
