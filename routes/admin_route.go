package routes

import (
	"github.com/gofiber/fiber/v2"

	adminController "resto-mongo-api/controllers/admin"
	"resto-mongo-api/middlewares"
	"resto-mongo-api/models"
	"resto-mongo-api/store"
)

func AdminRoutes(app *fiber.App, st store.Store, ct *adminController.Controller) {
	admin := middlewares.RequireRole(st, models.RoleAdmin)

	app.Get("/api/admin/categories", middlewares.AuthMiddleware, admin, ct.ListCategories)
	app.Post("/api/admin/categories", middlewares.AuthMiddleware, admin, ct.CreateCategory)
	app.Delete("/api/admin/categories/:id", middlewares.AuthMiddleware, admin, ct.DeleteCategory)

	app.Post("/api/admin/categories/:id/items", middlewares.AuthMiddleware, admin, ct.AddItem)
	app.Put("/api/admin/categories/:id/items/:itemID", middlewares.AuthMiddleware, admin, ct.EditItem)
	app.Delete("/api/admin/categories/:id/items/:itemID", middlewares.AuthMiddleware, admin, ct.DeleteItem)
}
