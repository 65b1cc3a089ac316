package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vira-library/catalog/internal/pkg"
)

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	DB      *gorm.DB
	Redis   *redis.Client // optional
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}

	// Health check
	r.GET("/health", healthHandler(deps.DB, deps.Redis))

	// Versioned API routes
	api := r.Group("/api/v1")

	// Register module routes
	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api)
	}

	// NoRoute handler
	r.NoRoute(noRouteHandler())

	return nil
}

// healthHandler returns a handler that pings the database and, when
// configured, Redis. A failing Redis only degrades the report; the
// service stays available because count caching is best-effort.
func healthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		components := gin.H{}
		status := "ok"
		code := http.StatusOK

		dbStatus := "ok"
		if db == nil {
			dbStatus = "error"
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				dbStatus = "error"
			} else {
				ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
				defer cancel()
				if err := sqlDB.PingContext(ctx); err != nil {
					dbStatus = "error"
				}
			}
		}
		components["database"] = dbStatus
		if dbStatus != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if rdb != nil {
			redisStatus := "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				redisStatus = "error"
				if status == "ok" {
					status = "degraded"
				}
			}
			components["redis"] = redisStatus
		}

		c.JSON(code, gin.H{
			"status":     status,
			"components": components,
		})
	}
}

// noRouteHandler returns a JSON 404 for unknown paths.
func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: "not found"})
	}
}
