package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vtube-go/internal/config"
	"vtube-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

type revokedSet map[string]bool

func (s revokedSet) IsRevoked(_ context.Context, jti string) bool {
	return s[jti]
}

func newAuthEngine(revocations RevocationChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", AuthRequired(revocations), func(c *gin.Context) {
		userID, _ := GetCurrentUserID(c)
		claims, ok := GetCurrentClaims(c)
		if !ok {
			c.String(http.StatusInternalServerError, "claims missing")
			return
		}
		c.String(http.StatusOK, userID+"|"+claims.ID)
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "vtube-go-test"},
		JWT: config.JWTConfig{Secret: "middleware-secret", ExpireHours: 1},
	})

	token, claims, err := utils.GenerateToken("user-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name     string
		header   string
		revoked  revokedSet
		wantCode int
		wantBody string
	}{
		{name: "missing header", wantCode: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic " + token, wantCode: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantCode: http.StatusUnauthorized},
		{name: "revoked", header: "Bearer " + token, revoked: revokedSet{claims.ID: true}, wantCode: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + token, wantCode: http.StatusOK, wantBody: "user-42|" + claims.ID},
		{name: "lowercase scheme", header: "bearer " + token, wantCode: http.StatusOK, wantBody: "user-42|" + claims.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checker RevocationChecker
			if tt.revoked != nil {
				checker = tt.revoked
			}
			r := newAuthEngine(checker)

			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Fatalf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
