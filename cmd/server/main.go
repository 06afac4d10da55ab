// @title           HRMS Backend API
// @version         1.0
// @description     HR administration API: employees, organizations and clients, with per-field validation and uniqueness checks for the admin UI.
// @contact.name    Aldo Rifki Putra
// @contact.email   aldoetobex@gmail.com
// @BasePath        /api
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Format: Bearer <token>
package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aldoetobex/hrms-backend/internal/auth"
	"github.com/aldoetobex/hrms-backend/internal/clients"
	"github.com/aldoetobex/hrms-backend/internal/config"
	"github.com/aldoetobex/hrms-backend/internal/employees"
	"github.com/aldoetobex/hrms-backend/internal/organizations"
	"github.com/aldoetobex/hrms-backend/internal/validationapi"
	"github.com/aldoetobex/hrms-backend/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.IsDev() {
		log.SetLevel(log.LevelDebug)
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.IsDev())
	if err != nil {
		log.Fatal("database: ", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: auth.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := app.Group("/api")
	requireAuth := auth.RequireAuth(cfg.JWTSecret)

	// Auth
	authH := auth.NewHandler(db, cfg.JWTSecret)
	api.Post("/signup", authH.Signup)
	api.Post("/login", authH.Login)
	api.Get("/me", requireAuth, authH.Me)

	// Validation (per keystroke / on blur from the admin UI)
	valH := validationapi.NewHandler(validationapi.NewStore(db), cfg.UniqueCheckTimeout)
	valH.Register(api.Group("/validation", requireAuth))

	// Employees
	empH := employees.NewHandler(db)
	api.Get("/employees", requireAuth, empH.List)
	api.Post("/employees", requireAuth, empH.Create)
	api.Get("/employees/:id/history", requireAuth, empH.History)
	api.Get("/employees/:id", requireAuth, empH.Get)
	api.Put("/employees/:id", requireAuth, empH.Update)

	// Organizations (admins only)
	orgH := organizations.NewHandler(db)
	api.Get("/organizations", requireAuth, orgH.List)
	api.Get("/organizations/:id", requireAuth, orgH.Get)
	api.Post("/organizations", requireAuth, auth.RequireRole("admin"), orgH.Create)
	api.Put("/organizations/:id", requireAuth, auth.RequireRole("admin"), orgH.Update)

	// Clients
	cliH := clients.NewHandler(db)
	api.Get("/clients/options", requireAuth, cliH.Options)
	api.Get("/clients", requireAuth, cliH.List)
	api.Post("/clients", requireAuth, cliH.Create)

	log.Infof("Server running on :%s (%s)", cfg.Port, cfg.AppEnv)
	log.Fatal(app.Listen(":" + cfg.Port))
}
