package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"performance_backend/internals/middlewares/logger"
)

type Options struct {
	AllowOrigins   string
	Timezone       string
	RequestTimeout time.Duration
}

func SetupMiddlewares(app *fiber.App, opts Options) {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}

	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(opts.RequestTimeout))
	app.Use(logger.LoggerMiddleware(opts.Timezone))
	app.Use(CorsMiddleware(opts.AllowOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter())
	app.Use(WriteRateLimiter())
}
