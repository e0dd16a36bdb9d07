package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"biblioteka_backend/internals/configs"
)

// CorsMiddleware builds the CORS layer. Origins come from CORS_ORIGINS
// (comma separated); the defaults cover local front-end development.
func CorsMiddleware() fiber.Handler {
	origins := configs.CORSOrigins
	if origins == "" {
		origins = strings.Join([]string{
			"http://localhost:5173",
			"http://localhost:5500",
			"http://127.0.0.1:5500",
		}, ", ")
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Admin-Token",
		AllowCredentials: true,
	})
}
