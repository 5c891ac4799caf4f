package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/artem13815/dragonball/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. Character routes sit
// behind the auth gate; auth and health routes are public.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	chars *handlers.CharactersHandler,
	authMW fiber.Handler,
) {
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/verify", auth.Verify)

	cg := v1.Group("/characters", authMW)
	cg.Get("/", chars.List)
	cg.Get("/:id", chars.GetByID)
}
