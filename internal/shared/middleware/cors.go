package middleware

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS applies the configured policy. X-Request-ID is always exposed so browser clients can report it.
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}

	// wildcard origin with credentials is rejected by browsers; echo the caller's origin instead
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowOrigins = nil
		if corsConfig.AllowCredentials {
			corsConfig.AllowOriginFunc = func(string) bool { return true }
		} else {
			corsConfig.AllowAllOrigins = true
		}
	}

	return cors.New(corsConfig)
}
