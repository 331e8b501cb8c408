package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/platform/respond"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// Middleware validates the Authorization bearer token and stores the
// authenticated user id on the request context.
func Middleware(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return respond.Auth("not authorized, no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return respond.Auth("not authorized, invalid token format")
			}

			userID, err := issuer.Verify(parts[1])
			if err != nil {
				return respond.Auth("not authorized, token failed")
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user id, or "" when the
// request did not pass through the auth middleware.
func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

// CurrentUserID resolves the authenticated user id from an echo context
// as an ObjectID.
func CurrentUserID(c echo.Context) (primitive.ObjectID, error) {
	uid := UserIDFromContext(c.Request().Context())
	if uid == "" {
		return primitive.NilObjectID, respond.Auth("not authorized")
	}
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return primitive.NilObjectID, respond.Auth("not authorized")
	}
	return id, nil
}
