// Package buildconfig exposes the version and commit stamped into the
// binary at build time:
//
//	go build -ldflags "-X .../internal/buildconfig.version=v1.2.0 \
//	                   -X .../internal/buildconfig.commit=$(git rev-parse --short HEAD)"
//
// Unstamped builds report "dev"/"unknown".
package buildconfig

var (
	version = "dev"
	commit  = "unknown"
)

func Version() string { return version }

func Commit() string { return commit }
