// Package version reports build metadata for the service and CLI
package version

import "snipjar/internal/core/classifier"

// BuildInfo describes the running binary and the classifier it embeds
type BuildInfo struct {
	Service    string `json:"service"`
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	Date       string `json:"date"`
	Classifier int    `json:"classifier_version"`
}

// Info returns the build information. version, commit and date are set with
// -ldflags "-X 'snipjar/internal/core/version.version=v0.1.0' -X 'snipjar/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	return BuildInfo{
		Service:    service,
		Version:    version,
		Commit:     commit,
		Date:       date,
		Classifier: classifier.Version,
	}
}

var (
	service = "snipjar-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
