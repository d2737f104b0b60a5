// Package net carries request scoped values shared by HTTP middleware and handlers
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyClient ctxKey = "client"

// ClientHeader identifies the calling app and version, e.g. "macos/1.4.0"
const ClientHeader = "X-Client"

// WithRequestID stores reqID where chi's GetReqID finds it
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on ctx, "" when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithClient stores the calling client label
func WithClient(ctx context.Context, client string) context.Context {
	if client == "" {
		return ctx
	}
	return context.WithValue(ctx, keyClient, client)
}

// Client returns the calling client label, "" when absent
func Client(ctx context.Context) string {
	v, _ := ctx.Value(keyClient).(string)
	return v
}
