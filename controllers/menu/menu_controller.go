package menuController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"resto-mongo-api/responses"
	"resto-mongo-api/services/catalog"
)

type Controller struct {
	Catalog *catalog.Service
}

// GetMenu returns every category ordered by name, for the public menu page.
func (ct *Controller) GetMenu(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	categories, err := ct.Catalog.ListCategories(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching menu",
			Result:  nil,
		})
	}

	result := make([]fiber.Map, 0, len(categories))
	for _, cat := range categories {
		items := make([]fiber.Map, 0, len(cat.Items))
		for _, it := range cat.Items {
			items = append(items, fiber.Map{
				"itemID":      it.ItemID,
				"name":        it.Name,
				"price":       it.Price,
				"stockStatus": it.EffectiveStockStatus(),
			})
		}
		result = append(result, fiber.Map{
			"id":           cat.ID,
			"categoryName": cat.CategoryName,
			"items":        items,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched menu",
		Result: &fiber.Map{
			"categories": result,
		},
	})
}
