package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"resto-mongo-api/configs"
	adminController "resto-mongo-api/controllers/admin"
	cartController "resto-mongo-api/controllers/cart"
	menuController "resto-mongo-api/controllers/menu"
	orderController "resto-mongo-api/controllers/orders"
	"resto-mongo-api/logger"
	"resto-mongo-api/routes"
	"resto-mongo-api/services/allocator"
	cartService "resto-mongo-api/services/cart"
	"resto-mongo-api/services/catalog"
	ordersService "resto-mongo-api/services/orders"
	"resto-mongo-api/store"
)

func main() {
	logger.Init(configs.EnvLogLevel())

	app := fiber.New()

	client := configs.ConnectDB()
	documents := store.NewMongoStore(configs.GetDatabase(client))
	// Carts are session-lifetime working sets; they live in process memory
	// and vanish on restart.
	sessions := store.NewMemoryStore()

	catalogSvc := catalog.NewService(documents)
	cartSvc := cartService.NewService(sessions)
	orderSvc := ordersService.NewService(documents, cartSvc,
		ordersService.WithDailySequence(allocator.NewInMemorySequence()))

	routes.MenuRoutes(app, &menuController.Controller{Catalog: catalogSvc})
	routes.AdminRoutes(app, documents, &adminController.Controller{Catalog: catalogSvc})
	routes.CartRoutes(app, documents, &cartController.Controller{Cart: cartSvc, Catalog: catalogSvc})
	routes.OrderRoutes(app, documents, &orderController.Controller{Orders: orderSvc})

	addr := configs.EnvListenAddr()
	logrus.WithField("addr", addr).Info("starting server")
	if err := app.Listen(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
