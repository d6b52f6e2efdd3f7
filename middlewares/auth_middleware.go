package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/healthstation/BEAttendance/httperr"
)

// Claims yang diharapkan (sesuai yang ditandatangani di auth_handler.go)
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func extractBearer(c echo.Context) (string, bool) {
	h := c.Request().Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireAuth memverifikasi JWT (HS256) dan menaruh claims di context.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, ok := extractBearer(c)
			if !ok {
				return httperr.JSON(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Token tidak ditemukan.", nil)
			}
			token, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
				// tolak token dengan alg yang ditukar
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return httperr.JSON(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Token tidak valid atau kadaluarsa.", nil)
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return httperr.JSON(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Token tidak valid atau kadaluarsa.", nil)
			}
			if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
				return httperr.JSON(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Token tidak valid atau kadaluarsa.", nil)
			}
			c.Set("auth_id", claims.ID)
			c.Set("auth_email", claims.Email)
			c.Set("auth_role", claims.Role)
			return next(c)
		}
	}
}

// RequireRole membatasi akses ke role tertentu, mis. RequireRole("admin").
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("auth_role").(string)
			if role == "" {
				return httperr.JSON(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Login diperlukan.", nil)
			}
			if _, ok := allowed[strings.ToLower(role)]; !ok {
				return httperr.JSON(c, http.StatusForbidden, "FORBIDDEN", "Hanya admin yang dapat mengakses resource ini.", nil)
			}
			return next(c)
		}
	}
}
