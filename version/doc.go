// Package version exposes build information for streamkit binaries.
//
// Version, git commit, and build time are set at compile time via
// -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/streamkit/version.Version=1.2.0"
//
// Fields not set by the linker are recovered from the VCS metadata Go
// embeds in the binary.
package version
