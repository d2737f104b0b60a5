package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo identifies this process in system.query_log.
// role is the process kind ("api", "cli"); tag defaults to "snipjar"
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	rev, modVer := buildRevision()

	info := clickhouse.ClientInfo{}
	add := func(name, version string) {
		if version = strings.TrimSpace(version); version == "" {
			version = "unknown"
		}
		info.Products = append(info.Products, struct{ Name, Version string }{name, version})
	}
	if strings.TrimSpace(tag) == "" {
		tag = "snipjar"
	}
	add(tag, modVer)
	add("role", role)
	add("go", runtime.Version())
	add("commit", rev)
	add("host", host)
	return info
}

// buildRevision reads the short vcs revision and main module version stamped by the go tool
func buildRevision() (rev, version string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			rev = s.Value
			break
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	return rev, bi.Main.Version
}
