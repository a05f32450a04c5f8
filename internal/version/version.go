package version

import (
	"runtime/debug"

	"github.com/hashicorp/go-version"
)

// Version is the fallback version, used when the binary carries no module
// version (local builds report "(devel)").
const Version = "0.1.0"

// Current returns the module version stamped into the binary by the go
// tool, or Version when that is missing or not a semantic version.
func Current() *version.Version {
	var stamped string
	if info, ok := debug.ReadBuildInfo(); ok {
		stamped = info.Main.Version
	}
	return resolve(stamped)
}

func resolve(stamped string) *version.Version {
	if v, err := version.NewSemver(stamped); err == nil {
		return v
	}
	return version.Must(version.NewVersion(Version))
}
