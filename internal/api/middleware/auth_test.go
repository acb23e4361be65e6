package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/St1cky1/taskr-service/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticatorPutsUserIDIntoContext(t *testing.T) {
	jwtManager := auth.NewJWTManager()
	token, err := jwtManager.GenerateAccessToken(7, "alice@example.com")
	require.NoError(t, err)

	var gotID int
	var gotOK bool
	handler := Authenticator(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, 7, gotID)
}

func TestAuthenticatorRejects(t *testing.T) {
	jwtManager := auth.NewJWTManager()
	handler := Authenticator(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler was called without valid token")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestWithUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), 7)

	id, ok := UserID(ctx)
	require.True(t, ok)
	assert.Equal(t, 7, id)

	_, ok = UserID(context.Background())
	assert.False(t, ok)
}
