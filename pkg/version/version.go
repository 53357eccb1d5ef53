// Package version exposes the build version of rmenu.
package version

// version is overridden at build time:
//
//	go build -ldflags "-X github.com/LordGrimmauld/rmenu/pkg/version.version=v1.2.3"
var version = "0.1.0-dev" //nolint:gochecknoglobals // build-time injection target

// GetVersion returns the version of the running build.
func GetVersion() string {
	return version
}
