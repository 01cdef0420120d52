package version

import (
	"runtime/debug"
)

// Set at build time using -ldflags.
var (
	Version = "dev"
	Commit  = ""
)

// Info describes the running binary.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
	Dirty     bool
}

var readBuildInfo = debug.ReadBuildInfo

// Get returns the build information. Link-time values win over module build
// info; a commit is shortened to seven characters.
func Get() Info {
	info := Info{Version: Version, Commit: Commit}
	if bi, ok := readBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	if len(info.Commit) > 7 {
		info.Commit = info.Commit[:7]
	}
	return info
}

// String returns "version", "version-commit" or "version-commit-dirty".
func (i Info) String() string {
	s := i.Version
	if i.Commit != "" {
		s += "-" + i.Commit
		if i.Dirty {
			s += "-dirty"
		}
	}
	return s
}
