package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "resto-mongo-api/controllers/orders"
	"resto-mongo-api/middlewares"
	"resto-mongo-api/models"
	"resto-mongo-api/store"
)

func OrderRoutes(app *fiber.App, st store.Store, ct *orderController.Controller) {
	app.Post("/api/orders", ct.SubmitOrder)
	app.Get("/api/orders/:id", ct.GetOrderById)

	app.Post("/api/payments/create", ct.CreatePayment)
	app.Post("/api/payments/verify", ct.VerifyPayment)

	cashier := middlewares.RequireRole(st, models.RoleAdmin, models.RoleCashier)
	app.Get("/api/orders-pending", middlewares.AuthMiddleware, cashier, ct.GetPendingOrders)
	app.Post("/api/orders/mark-paid", middlewares.AuthMiddleware, cashier, ct.MarkPaid)
	app.Delete("/api/orders/:id", middlewares.AuthMiddleware, cashier, ct.DeleteOrder)
}
