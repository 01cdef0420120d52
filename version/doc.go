// Package version reports the build version of a command.
//
// Version and Commit may be set at link time:
//
//	go build -ldflags "-X github.com/kbukum/syncstream/version.Version=1.2.0" ./cmd/syncstream-demo
//
// Otherwise the module build info fills what it can.
package version
