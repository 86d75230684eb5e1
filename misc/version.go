// Package misc keeps program identity details set at build time.
package misc

// Overwritten by linker, for example:
//
//	go build -ldflags "-X colorful/misc.version=1.2.0 -X colorful/misc.gitHash=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "colorful"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
