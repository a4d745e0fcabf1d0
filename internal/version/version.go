package version

import "strings"

// Version is the current version of smashtest.
const Version = "0.1.0"

// GitRef is injected at build time for dev builds (e.g. via -ldflags -X).
var GitRef = "unknown"

// DisplayVersion returns the user-facing build version, v<semver>-<gitref>
// for dev builds and v<semver> when no ref was injected.
func DisplayVersion() string {
	ref := strings.TrimSpace(GitRef)
	if ref == "" || ref == "unknown" {
		return "v" + Version
	}
	return "v" + Version + "-" + ref
}
