package db

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/healthmate/healthmate/internal/platform/respond"
)

// HealthHandler returns a handler for the health check endpoint. A database
// that fails to answer the ping within 5 seconds yields 503.
func HealthHandler(client *mongo.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return respond.Unhealthy("database unreachable", err)
		}

		return respond.OK(c, http.StatusOK, "healthy", map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	}
}
