package middleware

import (
	"net/http"

	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/rs/cors"
)

func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: false, // bearer tokens, no cookies
		MaxAge:           300,   // 5 minutes
	})

	return c.Handler
}
