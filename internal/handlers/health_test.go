package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"TOURMAP_BACK-END/internal/dto"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthChecks(t *testing.T) {
	healthy := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }))
	down := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("connection refused") }))

	tests := []struct {
		name       string
		target     string
		handler    http.HandlerFunc
		wantCode   int
		wantStatus string
	}{
		{name: "healthz", target: "/healthz", handler: healthy.HealthCheck, wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "livez ignores db", target: "/livez", handler: down.LivenessCheck, wantCode: http.StatusOK, wantStatus: "alive"},
		{name: "readyz", target: "/readyz", handler: healthy.ReadinessCheck, wantCode: http.StatusOK, wantStatus: "ready"},
		{name: "readyz db down", target: "/readyz", handler: down.ReadinessCheck, wantCode: http.StatusServiceUnavailable, wantStatus: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.handler, call{method: http.MethodGet, target: tt.target})
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantStatus, decode[dto.HealthResponse](t, rec).Status)
		})
	}
}
