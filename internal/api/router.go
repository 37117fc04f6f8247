package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"ocr-journal-backend/docs"
	"ocr-journal-backend/internal/api/handlers"
	"ocr-journal-backend/pkg/auth"
	"ocr-journal-backend/pkg/middleware"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	ocrHandler *handlers.OCRHandler,
	rulesHandler *handlers.RulesHandler,
	companiesHandler *handlers.CompaniesHandler,
	booksHandler *handlers.BooksHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing docs registers the generated document via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// Public routes
	app.Post("/auth/login", authHandler.Login)
	oauth := app.Group("/oauth/zoho")
	oauth.Get("/start", oauthHandler.Start)
	oauth.Get("/callback", oauthHandler.Callback)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	ocr := protected.Group("/ocr")
	ocr.Post("/upload", ocrHandler.Upload)
	ocr.Post("/route", ocrHandler.Route)
	ocr.Get("/_diag", ocrHandler.Diag)

	rules := protected.Group("/rules")
	rules.Post("/bank", rulesHandler.CreateBankRule)
	rules.Post("/mapping", rulesHandler.CreateMappingRule)

	companies := protected.Group("/companies")
	companies.Get("", companiesHandler.List)
	companies.Post("/pick", companiesHandler.PickOrg)

	protected.Get("/accounts", companiesHandler.ListAccounts)

	books := protected.Group("/books")
	books.Post("/journal", booksHandler.PostJournal)

	return app
}
