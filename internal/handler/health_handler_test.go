package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"hisaab/internal/handler"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(fakePinger{err: errors.New("down")})

	c, w := newTestContext(http.MethodGet, "/healthz", nil)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"hisaab"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"database up", nil, http.StatusOK, `{"status":"ok","database":"ok"}`},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable,
			`{"status":"unavailable","error":"database not reachable"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(fakePinger{err: tt.pingErr})

			c, w := newTestContext(http.MethodGet, "/readyz", nil)
			h.Readiness(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
