package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Claims is the token payload this service understands. ProfileID is the
// patient or professional record the account maps to.
type Claims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	ProfileID string `json:"profile_id"`
}

type JWTConfig struct {
	Issuer   string
	Audience string
	// SigningKey is the HMAC key shared with the token issuer.
	SigningKey []byte
}

// JWTMiddleware validates the bearer token and places the resulting Actor on
// the request context.
func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			opts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"HS256"}),
			}
			if cfg.Issuer != "" {
				opts = append(opts, jwt.WithIssuer(cfg.Issuer))
			}
			if cfg.Audience != "" {
				opts = append(opts, jwt.WithAudience(cfg.Audience))
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return cfg.SigningKey, nil
			}, opts...)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.SetRequest(c.Request().WithContext(WithActor(c.Request().Context(), actor)))
			return next(c)
		}
	}
}

func actorFromClaims(claims *Claims) (Actor, error) {
	switch claims.Role {
	case RolePatient, RoleProfessional, RoleAdmin:
	default:
		return Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "unknown role")
	}

	id, err := uuid.Parse(claims.ProfileID)
	if err != nil {
		return Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid profile id")
	}

	return Actor{ID: id, Role: claims.Role}, nil
}

// DevAuthMiddleware is a permissive middleware for development that grants
// admin access to unauthenticated requests. Requests may also impersonate an
// actor via X-Dev-Role and X-Dev-Profile-ID headers.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := Actor{ID: uuid.Nil, Role: RoleAdmin}

			if role := c.Request().Header.Get("X-Dev-Role"); role != "" {
				actor.Role = role
			}
			if pid := c.Request().Header.Get("X-Dev-Profile-ID"); pid != "" {
				if id, err := uuid.Parse(pid); err == nil {
					actor.ID = id
				}
			}

			c.SetRequest(c.Request().WithContext(WithActor(c.Request().Context(), actor)))
			return next(c)
		}
	}
}
