package middleware

import (
	"fintrack/internal/errors"
	"fintrack/internal/handlers"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// UserIDContextKey is the context key holding the authenticated user's UUID
	UserIDContextKey = "user_id"
	// UserEmailContextKey is the context key holding the authenticated user's email
	UserEmailContextKey = "user_email"
)

// RequireAuth creates a middleware that requires a valid JWT access token.
// On success it stores the user's ID and email in the request context so
// handlers can scope every query to the authenticated user.
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if err == services.ErrExpiredToken {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid user ID in token"))
			}

			c.Set(UserIDContextKey, userID)
			c.Set(UserEmailContextKey, claims.Email)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}
