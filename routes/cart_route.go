package routes

import (
	"github.com/gofiber/fiber/v2"

	cartController "resto-mongo-api/controllers/cart"
	"resto-mongo-api/middlewares"
	"resto-mongo-api/models"
	"resto-mongo-api/store"
)

func CartRoutes(app *fiber.App, st store.Store, ct *cartController.Controller) {
	app.Post("/api/cart/add", ct.AddToCart)
	app.Post("/api/cart/quantity", ct.SetQuantity)
	app.Post("/api/cart/remove", ct.RemoveFromCart)
	app.Post("/api/cart/notes", ct.SetNotes)
	app.Get("/api/cart", ct.GetCart)
	app.Get("/api/cart/totals", ct.GetCartTotals)
	app.Post("/api/cart/clear", ct.ClearCart)

	// Discounts are granted by staff, not by the customer's own device.
	staff := middlewares.RequireRole(st, models.RoleAdmin, models.RoleCashier, models.RoleWaiter)
	app.Post("/api/cart/discount", middlewares.AuthMiddleware, staff, ct.SetDiscount)
}
