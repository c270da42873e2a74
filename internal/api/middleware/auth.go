package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextKeyUser      = "user"
	ContextKeySessionID = "session_id"
)

// SessionChecker reports whether a session is still live. Tokens carry a
// session ID (jti); a structurally valid token whose session has been
// revoked or expired must be rejected.
type SessionChecker interface {
	SessionActive(ctx context.Context, sessionID string) bool
}

// Auth validates the bearer JWT, confirms the session it names is still
// active, and injects the authenticated user into the request context.
func Auth(jwtSecret string, sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sessionID, _ := claims["jti"].(string)
			if sessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !sessions.SessionActive(c.Request().Context(), sessionID) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
			}

			c.Set(ContextKeyUser, userFromClaims(claims))
			c.Set(ContextKeySessionID, sessionID)

			return next(c)
		}
	}
}

// userFromClaims rebuilds the authenticated user from token claims. A
// token only exists for accounts that were active at sign-in; mid-session
// deactivation is handled through session revocation, not claims.
func userFromClaims(claims jwt.MapClaims) *domain.User {
	id, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	department, _ := claims["department"].(string)

	return &domain.User{
		ID:         id,
		Email:      email,
		Username:   username,
		Role:       domain.Role(role),
		Department: department,
		IsActive:   true,
	}
}
