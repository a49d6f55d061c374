package versionfile

import "testing"

const gomod = `
module github.com/liangyou/example

go 1.20

require (
	github.com/99designs/gqlgen v0.17.25
)`

func TestParseGoMod(t *testing.T) {
	t.Parallel()

	version, ok := Parse("go.mod", gomod)
	if !ok || version != "1.20.0" {
		t.Fatalf("Parse go.mod = %q, %v", version, ok)
	}
}

func TestParseGoWork(t *testing.T) {
	t.Parallel()

	content := "go 1.19\r\n\nuse (\n\t./api\n\t./web\n)\n"
	version, ok := Parse("go.work", content)
	if !ok || version != "1.19.0" {
		t.Fatalf("Parse go.work = %q, %v", version, ok)
	}
}

func TestParseNoDirective(t *testing.T) {
	t.Parallel()

	content := `
module github.com/liangyou/example

require (
	github.com/99designs/gqlgen v0.17.25
)`
	if version, ok := Parse("go.mod", content); ok || version != "" {
		t.Fatalf("expected absent version, got %q", version)
	}
}

func TestParseStopsAtFirstMatch(t *testing.T) {
	t.Parallel()

	content := "module x\n\ngo 1.21.3 // pinned\n\ngo 1.22\n"
	version, ok := Parse("go.mod", content)
	if !ok || version != "1.21.3" {
		t.Fatalf("expected first directive, got %q, %v", version, ok)
	}
}

func TestParsePrerelease(t *testing.T) {
	t.Parallel()

	version, ok := Parse("go.mod", "module x\ngo 1.21rc2\n")
	if !ok || version != "1.21.0-rc2" {
		t.Fatalf("Parse prerelease = %q, %v", version, ok)
	}
}

func TestParseIgnoresUnknownFiles(t *testing.T) {
	t.Parallel()

	if _, ok := Parse("go.sum", "go 1.20\n"); ok {
		t.Fatal("go.sum must not be parsed")
	}
	if _, ok := Parse(".go-version", "go 1.20\n"); ok {
		t.Fatal(".go-version must not be parsed")
	}
}

func TestParseNestedPath(t *testing.T) {
	t.Parallel()

	if version, ok := Parse("services/api/go.mod", "go 1.18\n"); !ok || version != "1.18.0" {
		t.Fatalf("nested go.mod = %q, %v", version, ok)
	}
}

func TestParseToolchainLineIsNotDirective(t *testing.T) {
	t.Parallel()

	if _, ok := Parse("go.mod", "module x\ntoolchain go1.21.4\n"); ok {
		t.Fatal("toolchain line must not match")
	}
}
