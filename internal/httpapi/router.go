// Package httpapi содержит компоненты для HTTP сервера.
package httpapi

import (
	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/auth/ports/api"
	"notekeeper/internal/auth/ports/repositories"
	"notekeeper/internal/auth/ports/services"
	authhandlers "notekeeper/internal/httpapi/auth"
	"notekeeper/internal/httpapi/middleware"
	noteshandlers "notekeeper/internal/httpapi/notes"
	notesapp "notekeeper/internal/notes/app"
)

// Deps - зависимости маршрутизатора.
type Deps struct {
	AuthUseCase  api.AuthUseCase
	UserUseCase  api.UserUseCase
	NoteUseCase  *notesapp.NoteUseCase
	TokenService services.TokenService
	UserRepo     repositories.UserRepository
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Deps) {
	authHandler := authhandlers.NewHandler(deps.AuthUseCase, deps.UserUseCase)
	notesHandler := noteshandlers.NewHandler(deps.NoteUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (публичные).
	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	// Защищенные маршруты.
	guard := middleware.NewAuthMiddleware(deps.TokenService, deps.UserRepo)

	authRoutes.Get("/profile", authHandler.GetProfile, guard)

	noteRoutes := app.Group("/notes", guard)
	noteRoutes.Get("/", notesHandler.ListNotes)
	noteRoutes.Post("/", notesHandler.CreateNote)
	noteRoutes.Put("/:id", notesHandler.UpdateNote)
	noteRoutes.Delete("/:id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route not found",
		})
	})
}
