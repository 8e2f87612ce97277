package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/relaydesk/handover-api/internal/api/metrics"
	"github.com/relaydesk/handover-api/internal/core/domain"
)

// SessionValidator resolves a bearer token to its session record.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*domain.Session, error)
}

// Auth validates the bearer session token and injects the resolved identity
// into the request context. It performs no persistence work beyond the
// validator call.
func Auth(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := validator.Validate(c.Request().Context(), BearerToken(c))
			if err != nil {
				switch err {
				case domain.ErrNoSession:
					metrics.SessionValidationsTotal.WithLabelValues("no_session").Inc()
				case domain.ErrInvalidSession:
					metrics.SessionValidationsTotal.WithLabelValues("invalid_session").Inc()
				default:
					metrics.SessionValidationsTotal.WithLabelValues("error").Inc()
				}
				return err
			}
			metrics.SessionValidationsTotal.WithLabelValues("valid").Inc()

			c.Set("username", session.Username)
			c.Set("role", session.Role)
			c.Set("name", session.DisplayName)
			c.Set("login_time", session.LoginTime)

			return next(c)
		}
	}
}

// BearerToken extracts the token from the Authorization header. An absent or
// malformed header yields an empty token; the validator decides what that
// means for the operation.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
