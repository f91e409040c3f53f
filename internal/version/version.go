// Package version exposes the build version, set at link time via
// -ldflags "-X github.com/dstokesj/loginbench/internal/version.version=...".
package version

var (
	version = "dev"
	commit  = ""
)

// Get returns the version string with the short commit hash if available
func Get() string {
	if commit != "" {
		return version + " (" + commit + ")"
	}
	return version
}
