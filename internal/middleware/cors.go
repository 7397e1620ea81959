package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the browser client from origin (comma separated; "*" for any).
func CORSMiddleware(origin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeaderName},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{requestIDHeaderName},
		AllowCredentials: false,
	}

	origin = strings.TrimSpace(origin)
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		for _, o := range strings.Split(origin, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	}

	return cors.New(cfg)
}
