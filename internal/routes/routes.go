package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xperttutor/user-service/internal/handlers"
)

func Setup(app *fiber.App, h *handlers.Handler, auth fiber.Handler) {
	users := app.Group("/api/users")

	users.Post("/register", h.Register)
	users.Post("/auth", h.Login)

	users.Get("/auth", auth, h.Profile)
	users.Patch("/register/:id", auth, h.UpdateProfile)
	users.Patch("/referal/:id", auth, h.LinkReferral)
}
