package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
)

// AdminRole значение claim role, открывающее административные маршруты
const AdminRole = "admin"

const adminClaimsKey contextKey = "adminClaims"

const (
	msgAuthDisabled = "административный доступ отключен"
	msgMissingToken = "отсутствует заголовок Authorization"
	msgInvalidToken = "недействительный токен"
	msgNotAdmin     = "доступ разрешен только администратору"
)

// AdminClaims claims административного токена
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminJWT проверяет Bearer токен HS256 и требует role=admin.
// Пустой secret закрывает маршруты целиком.
func AdminJWT(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logger.Warn("AdminJWT: secret is not configured, path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgAuthDisabled)
				return
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				logger.Warn("AdminJWT: missing bearer token, path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims := &AdminClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("AdminJWT: invalid token, path=%s, error=%v", r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			if claims.Role != AdminRole {
				logger.Warn("AdminJWT: forbidden role=%q, subject=%s", claims.Role, claims.Subject)
				handlers.RespondForbidden(w, msgNotAdmin)
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminClaims возвращает claims администратора из контекста
func GetAdminClaims(ctx context.Context) (*AdminClaims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(*AdminClaims)
	return claims, ok
}
