package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"

	authrouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/router"
	businessrouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/router"
	candidaterouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/router"
	clientrouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/router"
	contentrouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/router"
	referencerouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/router"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
	staffrouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/router"
	websiteleadrouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/router"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/media"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/metrics"
)

// errorHandler renders errors that escaped the handlers in the common response format.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	errorCode := common.ErrCodeInternalServer.Code

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
		switch code {
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			errorCode = common.ErrCodeValidationInput.Code
		case fiber.StatusUnauthorized:
			errorCode = common.ErrCodeAuthToken.Code
		case fiber.StatusForbidden:
			errorCode = common.ErrCodeAuthRole.Code
		case fiber.StatusNotFound, fiber.StatusConflict:
			errorCode = common.ErrCodeDatabaseQuery.Code
		}
	}

	logger.WithRequest(c).WithFields(map[string]interface{}{
		"code":      code,
		"errorCode": errorCode,
		"message":   message,
	}).Error("Request error")

	return c.Status(code).JSON(fiber.Map{
		"code":    errorCode,
		"message": message,
		"status":  "error",
	})
}

// InitFiberApp creates the app with its middleware stack and every route.
func InitFiberApp() *fiber.App {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		AppName:       "RebootCRM API",
		ServerHeader:  "RebootCRM API",
		StrictRouting: false,
		CaseSensitive: true,
		UnescapePath:  true,

		// uploads are capped at media.MaxUploadSize; leave room for the other form fields
		BodyLimit:       int(media.MaxUploadSize) + 1024*1024,
		ReadBufferSize:  8192,
		WriteBufferSize: 4096,

		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins(),
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": "Too many requests, please try again later",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics" || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic": fmt.Sprintf("%v", e),
			}).Error("Panic recovered")
		},
	}))

	if cfg.MetricsEnabled {
		m := metrics.Default()
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	err := router.SetupRoutes(app,
		authrouter.Register,
		staffrouter.Register,
		referencerouter.Register,
		businessrouter.Register,
		clientrouter.Register,
		candidaterouter.Register,
		contentrouter.Register,
		websiteleadrouter.Register,
	)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	return app
}
