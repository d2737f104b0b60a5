package httpkit

import (
	"net/http"
	"strings"
)

// APIPrefix returns the mount path for an API version, e.g. "v1" gives "/api/v1"
func APIPrefix(version string) string {
	return "/api/" + strings.Trim(strings.TrimSpace(version), "/")
}

// MountAPI mounts routes under /api/{version} behind mw
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(httpkit.StackOptions{}), func(api httpkit.Router) {
//	  classify.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIPrefix(version), mw, mount)
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
