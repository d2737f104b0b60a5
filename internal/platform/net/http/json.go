package http

import (
	"net/http"

	"snipjar/internal/platform/net/http/bind"
)

// JSONHandler parses and validates T, calls fn and answers with status (200 when zero).
// fn may return a Response to pick its own status
func JSONHandler[T any](status int, fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		Handle(func(r *http.Request) Response {
			in, err := bind.ParseJSON[T](w, r, opts...)
			if err != nil {
				return Error(err)
			}
			out, err := fn(r, in)
			return result(status, out, err)
		})(w, r)
	}
}

// JSONHandlerNoBody calls fn without reading a body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		return result(http.StatusOK, out, err)
	})
}

func result(status int, out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return Response{Status: status, Body: out}
}
