package httpkit

import (
	"net/http"

	phttp "snipjar/internal/platform/net/http"
	"snipjar/internal/platform/net/http/bind"
)

// Get registers a bodiless handler on GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { phttp.GetJSON(r, path, h) }

// Post registers a bodiless handler on POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostJSON registers a validated JSON handler on POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	phttp.PostJSON(r, path, h, opts...)
}

// CreateJSON is PostJSON answering 201 unless h returns its own Response
func CreateJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	phttp.CreateJSON(r, path, h, opts...)
}
