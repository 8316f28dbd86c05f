package pkgstore

import (
	"context"
	"os"
	"path/filepath"
	goruntime "runtime"
	"slices"
	"testing"

	"github.com/Masterminds/semver/v3"
)

func TestInstallArgs_LayoutPerNpmMajor(t *testing.T) {
	tests := []struct {
		npm  string
		want string
	}{
		{"6.14.18", "--legacy-bundling"},
		{"7.24.2", "--global-style"},
		{"8.19.4", "--global-style"},
		{"9.0.0", "--install-strategy=nested"},
		{"10.8.2", "--install-strategy=nested"},
	}
	for _, tt := range tests {
		t.Run(tt.npm, func(t *testing.T) {
			args := installArgs(semver.MustParse(tt.npm), "/prefix", "@devlink/cli-init@1.2.0", "")
			if !slices.Contains(args, tt.want) {
				t.Errorf("args = %v, want %s", args, tt.want)
			}
			for _, other := range []string{"--legacy-bundling", "--global-style", "--install-strategy=nested"} {
				if other != tt.want && slices.Contains(args, other) {
					t.Errorf("args = %v also carry %s", args, other)
				}
			}
		})
	}
}

func TestInstallArgs_SpecPrefixAndRegistry(t *testing.T) {
	args := installArgs(semver.MustParse("10.0.0"), "/prefix", "@devlink/cli-init@1.2.0", "https://registry.example.com")
	want := []string{
		"install", "@devlink/cli-init@1.2.0",
		"--prefix", "/prefix",
		"--install-strategy=nested",
		"--no-save", "--no-package-lock", "--no-audit", "--no-fund",
		"--registry", "https://registry.example.com",
	}
	if !slices.Equal(args, want) {
		t.Errorf("args = %v\nwant   %v", args, want)
	}

	if slices.Contains(installArgs(semver.MustParse("10.0.0"), "/p", "a@1.0.0", ""), "--registry") {
		t.Error("--registry passed without a registry")
	}
}

func TestNpmVersion(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	dir := t.TempDir()
	fake := filepath.Join(dir, "npm")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\necho 8.19.4\n"), 0755); err != nil {
		t.Fatal(err)
	}

	v, err := NpmVersion(context.Background(), fake)
	if err != nil {
		t.Fatalf("NpmVersion failed: %v", err)
	}
	if v.Major() != 8 || nestedLayoutFlag(v) != "--global-style" {
		t.Errorf("version = %s, flag = %s", v, nestedLayoutFlag(v))
	}

	bad := filepath.Join(dir, "npm-bad")
	if err := os.WriteFile(bad, []byte("#!/bin/sh\necho not-a-version\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := NpmVersion(context.Background(), bad); err == nil {
		t.Error("expected error for unparsable version")
	}
}
