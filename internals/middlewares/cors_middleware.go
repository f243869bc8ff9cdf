// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware: origins come from CORS_ALLOW_ORIGINS (comma separated, "*" allowed).
func CorsMiddleware(allowOrigins string) fiber.Handler {
	origins := make([]string, 0)
	for _, o := range strings.Split(allowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	joined := strings.Join(origins, ", ")

	return cors.New(cors.Config{
		AllowOrigins: joined,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		// credentials can't be combined with a wildcard origin
		AllowCredentials: joined != "*",
	})
}
