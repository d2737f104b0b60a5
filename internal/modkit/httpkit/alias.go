// Package httpkit re-exports the platform http seams modules need, so modules
// do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "snipjar/internal/platform/net/http"
	"snipjar/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a Response returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// JSON parses and validates T then calls fn. fn may return a Response to pick the status
func JSON[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return phttp.JSONHandler(http.StatusOK, fn, opts...)
}

// Call adapts a handler that takes no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.JSONHandlerNoBody(fn) }
