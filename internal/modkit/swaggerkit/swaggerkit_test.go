package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "snipjar/internal/platform/net/http"
	kit "snipjar/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swagger2 = `{
  "swagger": "2.0",
  "info": {"title": "snipjar API", "version": "1"},
  "paths": {
    "/classify": {"post": {"responses": {"200": {"description": "ok"}}}},
    "/categories": {"get": {"responses": {"400": {"description": "custom"}}}}
  }
}`

func TestBuildSpecPatchesDocument(t *testing.T) {
	kit.Env(t, map[string]string{"CORE_API_DOCS_TITLE_SUFFIX": "(dev)"})

	spec, err := buildSpec(swagger2)
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", spec["openapi"])
	assert.NotContains(t, spec, "swagger")
	assert.Equal(t, "snipjar API (dev)", spec["info"].(map[string]any)["title"])

	servers := spec["servers"].([]any)
	assert.Equal(t, "/api/v1", servers[0].(map[string]any)["url"])

	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	assert.Contains(t, schemas, "ErrorResponse")

	paths := spec["paths"].(map[string]any)
	post := paths["/classify"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	assert.Contains(t, post, "400")
	assert.Contains(t, post, "500")

	get := paths["/categories"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	assert.Equal(t, "custom", get["400"].(map[string]any)["description"])
}

func TestBuildSpecRejectsGarbage(t *testing.T) {
	_, err := buildSpec("{nope")
	assert.Error(t, err)
}

func TestBuildSpecDowngrades31(t *testing.T) {
	spec, err := buildSpec(`{"openapi":"3.1.0","servers":[{"url":"/x"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", spec["openapi"])
	assert.Equal(t, "/x", spec["servers"].([]any)[0].(map[string]any)["url"])
}

func TestMountServesDocJSON(t *testing.T) {
	kit.Swap(t, &docReader, func() string { return swagger2 })
	Register(nil)
	Register(func(spec map[string]any) { spec["x-product"] = "snipjar" })

	r := phttp.NewRouter()
	Mount(r, true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocsPath+"/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var spec map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "snipjar", spec["x-product"])

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocsPath, nil))
	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
}

func TestMountServesParseError(t *testing.T) {
	kit.Swap(t, &docReader, func() string { return "not json" })
	r := phttp.NewRouter()
	Mount(r, true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocsPath+"/doc.json", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMountDisabled(t *testing.T) {
	r := phttp.NewRouter()
	Mount(r, false)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocsPath+"/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
