package routes

import (
	"github.com/gofiber/fiber/v2"

	menuController "resto-mongo-api/controllers/menu"
)

func MenuRoutes(app *fiber.App, ct *menuController.Controller) {
	app.Get("/api/menu", ct.GetMenu)
}
