package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/St1cky1/taskr-service/internal/infrastructure/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Authenticator проверяет Bearer токен и кладет id пользователя в контекст.
// Ядро получает уже аутентифицированного acting user, само оно
// аутентификацией не занимается.
func Authenticator(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Authentication credentials were not provided.")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorized(w, "Invalid authorization header.")
				return
			}

			claims, err := jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				unauthorized(w, "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID достает id аутентифицированного пользователя из контекста
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID - для тестов и внутренних вызовов
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
