// Package version holds the build version, overridable at link time via
// -ldflags "-X reqmd/internal/version.Version=v1.2.3".
package version

// Version is the reported server and CLI version.
var Version = "dev"
