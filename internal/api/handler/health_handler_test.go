package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		checks   map[string]Pinger
		wantCode int
		wantBody string
	}{
		{"all up", map[string]Pinger{"database": up, "redis": up}, http.StatusOK, `"redis":"up"`},
		{"redis down", map[string]Pinger{"database": up, "redis": down}, http.StatusServiceUnavailable, `"redis":"down"`},
		{"no checks", nil, http.StatusOK, `"success":true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("vtube-go", "1.0.0", tt.checks)
			r := gin.New()
			r.GET("/healthz", h.Healthz)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Fatalf("body = %s, want to contain %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/videos/:id", func(c *gin.Context) {
		id, ok := parseID(c, "id", "视频")
		if !ok {
			return
		}
		c.String(http.StatusOK, id)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/7C9E6679-7425-40DE-944B-E07FC1F90AE7", nil))
	if w.Code != http.StatusOK || w.Body.String() != "7c9e6679-7425-40de-944b-e07fc1f90ae7" {
		t.Fatalf("valid id: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/123", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id: %d", w.Code)
	}
}
