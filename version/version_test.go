package version

import (
	"runtime/debug"
	"testing"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	origRead, origVersion, origCommit := readBuildInfo, Version, Commit
	t.Cleanup(func() {
		readBuildInfo, Version, Commit = origRead, origVersion, origCommit
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGetDefaults(t *testing.T) {
	withBuildInfo(t, nil)
	Version, Commit = "dev", ""

	info := Get()
	if info.Version != "dev" || info.Commit != "" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.String() != "dev" {
		t.Errorf("expected 'dev', got %q", info.String())
	}
}

func TestGetFromBuildInfo(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Main:      debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
	})
	Version, Commit = "dev", ""

	info := Get()
	if info.Version != "v0.3.0" {
		t.Errorf("expected module version, got %q", info.Version)
	}
	if info.Commit != "0123456" {
		t.Errorf("expected short commit, got %q", info.Commit)
	}
	if info.GoVersion != "go1.26.0" {
		t.Errorf("expected go version, got %q", info.GoVersion)
	}
	if info.String() != "v0.3.0-0123456-dirty" {
		t.Errorf("unexpected string %q", info.String())
	}
}

func TestLinkTimeValuesWin(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}},
	})
	Version, Commit = "1.2.0", "abc1234"

	info := Get()
	if info.String() != "1.2.0-abc1234" {
		t.Errorf("expected link-time values, got %q", info.String())
	}
}
