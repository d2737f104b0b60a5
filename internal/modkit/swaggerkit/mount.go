// Package swaggerkit serves the OpenAPI document and the swagger UI
package swaggerkit

import (
	"net/http"

	phttp "snipjar/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives
const DocsPath = "/api/docs"

// Mount registers the UI and the JSON document when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}
