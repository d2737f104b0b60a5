package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"snipjar/internal/platform/config"
)

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator
)

// Register adds a spec mutator; modules call it while wiring
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		spec, err := buildSpec(docReader())
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

func buildSpec(raw string) (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}

	ensureServers(spec, "/api/v1")
	if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + v
			}
		}
	}
	ensureEnvelopeSchema(spec)
	addDefaultResponse(spec, "400", "Bad Request", 400, "validation", "content is a required field")
	addDefaultResponse(spec, "500", "Internal Server Error", 500, "panic", "internal error")

	mu.RLock()
	defer mu.RUnlock()
	for _, m := range mutators {
		m(spec)
	}
	return spec, nil
}

// ensureServers lifts swagger 2 and 3.1 documents to 3.0.3, which the UI renders, and sets servers
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureEnvelopeSchema adds the error envelope the runtime writes
func ensureEnvelopeSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "string"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status", "code", "error"},
	}
}

// addDefaultResponse injects status into every operation that does not document it
func addDefaultResponse(spec map[string]any, status, text string, code int, errCode, msg string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": text,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": code,
					"status":      text,
					"code":        errCode,
					"error":       msg,
				},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}
