package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims — полезная нагрузка токена доступа.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// DefaultTokenTTL — срок жизни токена по умолчанию (7 дней).
const DefaultTokenTTL = 7 * 24 * time.Hour

// BuildToken выпускает подписанный HS256-токен с user_id, email и абсолютным сроком.
func BuildToken(userID, email, secret string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок токена. Любая проблема — ошибка,
// клеймы при этом не возвращаются.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// WithAuth разбирает заголовок Authorization: Bearer <token>.
// Валидный токен кладёт клеймы в контекст; без токена или с плохим токеном
// запрос проходит анонимным — отказ отдают хендлеры защищённых маршрутов.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth != "" {
				parts := strings.SplitN(auth, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					if claims, err := ParseToken(parts[1], secret); err == nil && claims.UserID != "" {
						ctx := context.WithValue(r.Context(), claimsContextKey, claims)
						r = r.WithContext(ctx)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaimsFromContext возвращает клеймы аутентифицированного пользователя.
func GetClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// GetUserIDFromContext возвращает user_id аутентифицированного пользователя.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
