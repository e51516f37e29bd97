package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName — имя cookie с JWT. Под тем же ключом клиентский
// скрипт хранит токен в localStorage.
const AuthCookieName = "auth_token"

// tokenTTL — срок жизни выданного токена.
const tokenTTL = 24 * time.Hour

type contextKey int

const (
	userIDKey contextKey = iota
	loginKey
)

// Claims — полезная нагрузка JWT.
type Claims struct {
	UserID int64  `json:"user_id"`
	Login  string `json:"login,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken подписывает HS256-токен с идентификатором и логином.
func GenerateToken(userID int64, login, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Login:  login,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// SetLoginCookie выписывает токен и кладёт его в cookie ответа.
// Токен возвращается, чтобы хендлер мог отдать его и в теле ответа.
func SetLoginCookie(w http.ResponseWriter, userID int64, login, secret string, secure bool) (string, error) {
	token, err := GenerateToken(userID, login, secret)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// ClearLoginCookie гасит cookie авторизации.
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// WithAuth разбирает JWT из cookie или заголовка Authorization и кладёт
// идентификатор и логин пользователя в контекст. Запросы без валидного
// токена проходят дальше анонимно.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := tokenFromRequest(r); raw != "" {
				claims := &Claims{}
				token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, jwt.ErrSignatureInvalid
					}
					return []byte(secret), nil
				})
				if err == nil && token.Valid {
					ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
					ctx = context.WithValue(ctx, loginKey, claims.Login)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest достаёт токен сначала из cookie, затем из
// заголовка Authorization: Bearer.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// GetUserIDFromContext возвращает идентификатор пользователя запроса.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(userIDKey).(int64)
	return uid, ok
}

// GetLoginFromContext возвращает логин пользователя запроса.
func GetLoginFromContext(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(loginKey).(string)
	return login, ok
}
