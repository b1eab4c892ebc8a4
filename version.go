package covenant

// release is bumped by hand on every tagged release.
const release = "v0.1.0-dev"

// GitCommit is set at build time through -ldflags "-X".
var GitCommit = ""

// Version returns the release name, followed by the commit it was built
// from when known.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
