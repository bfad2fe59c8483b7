// Package version carries the binary's build identity. The variables are
// overridden at link time via -ldflags; InitBinaryVersion fills in whatever
// the build left unset from the embedded module information.
package version

import "runtime/debug"

// Build identity, overridden at link time.
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = "<unknown>"
)

// InitBinaryVersion backfills build identity from the binary's embedded
// build info when the linker did not set it.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && Commit == "<unknown>" {
			Commit = setting.Value
		}

		if setting.Key == "vcs.time" && Date == "<unknown>" {
			Date = setting.Value
		}
	}
}
