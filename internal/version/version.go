// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Commit is set at build time with -ldflags "-X .../version.Commit=...".
var Commit = ""

// String returns the version with the commit when known.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}

// Milestones:
// 0.4.0 - Sky dashboard, observer registry, JSON output with derivation steps
// 0.3.0 - Moon and planet ephemerides, rise/set/transit solver, visibility report
// 0.2.0 - Sun position, twilight, day length, Galactic and horizontal frames
// 0.1.0 - Initial release: angles, Julian dates, ICRS parsing, separations
