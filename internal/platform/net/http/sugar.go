package http

import (
	"net/http"

	"snipjar/internal/platform/net/http/bind"
)

// GetJSON mounts a bodiless JSON handler on GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a validated JSON handler on POST answering 200
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	r.Post(path, JSONHandler(http.StatusOK, h, opts...))
}

// CreateJSON mounts a validated JSON handler on POST answering 201
func CreateJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	r.Post(path, JSONHandler(http.StatusCreated, h, opts...))
}
