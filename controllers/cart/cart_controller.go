package cartController

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resto-mongo-api/models"
	"resto-mongo-api/responses"
	cartService "resto-mongo-api/services/cart"
	"resto-mongo-api/services/catalog"
)

var validate = validator.New()

type Controller struct {
	Cart    *cartService.Service
	Catalog *catalog.Service
}

const sessionHeader = "X-Session-Id"

// sessionID returns the caller's cart session, minting one when the header
// is absent. The id is echoed back so the client can persist it.
func sessionID(c *fiber.Ctx) string {
	id := c.Get(sessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(sessionHeader, id)
	return id
}

type AddToCartRequest struct {
	CategoryID string `json:"categoryId" validate:"required"`
	ItemID     string `json:"itemID" validate:"required"`
	Quantity   int    `json:"quantity" validate:"omitempty,min=1"`
}

func (ct *Controller) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request AddToCartRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
			Result:  nil,
		})
	}
	if err := validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}
	if request.Quantity == 0 {
		request.Quantity = 1
	}

	category, err := ct.Catalog.GetCategory(ctx, request.CategoryID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: "Category not found",
			Result:  nil,
		})
	}
	var item *models.Item
	for i := range category.Items {
		if category.Items[i].ItemID == request.ItemID {
			item = &category.Items[i]
			break
		}
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: "Item not found",
			Result:  nil,
		})
	}
	if item.EffectiveStockStatus() == models.StockStatusOut {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Item is out of stock",
			Result:  nil,
		})
	}

	session := sessionID(c)
	cart, err := ct.Cart.AddItem(ctx, session, models.CartLine{
		CategoryID: request.CategoryID,
		ItemID:     item.ItemID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   request.Quantity,
	})
	if err != nil {
		return cartError(c, err)
	}
	return cartResponse(c, session, cart, "Added to cart")
}

type LineRequest struct {
	LineKey  string `json:"lineKey" validate:"required"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

func (ct *Controller) SetQuantity(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request LineRequest
	if err := c.BodyParser(&request); err != nil || request.LineKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
			Result:  nil,
		})
	}

	session := sessionID(c)
	cart, err := ct.Cart.SetQuantity(ctx, session, request.LineKey, request.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return cartResponse(c, session, cart, "Quantity updated")
}

func (ct *Controller) RemoveFromCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request LineRequest
	if err := c.BodyParser(&request); err != nil || request.LineKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
			Result:  nil,
		})
	}

	session := sessionID(c)
	cart, err := ct.Cart.RemoveItem(ctx, session, request.LineKey)
	if err != nil {
		return cartError(c, err)
	}
	return cartResponse(c, session, cart, "Removed from cart")
}

func (ct *Controller) SetNotes(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request LineRequest
	if err := c.BodyParser(&request); err != nil || request.LineKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
			Result:  nil,
		})
	}

	session := sessionID(c)
	cart, err := ct.Cart.SetNotes(ctx, session, request.LineKey, request.Notes)
	if err != nil {
		return cartError(c, err)
	}
	return cartResponse(c, session, cart, "Notes saved")
}

type DiscountRequest struct {
	LineKey string `json:"lineKey"`
	Amount  int64  `json:"amount" validate:"min=0"`
	Type    string `json:"type" validate:"required,oneof=fixed percentage"`
	Clear   bool   `json:"clear"`
}

// SetDiscount applies an order-level discount, or an item-level one when
// lineKey is present. Clear removes it.
func (ct *Controller) SetDiscount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request DiscountRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
			Result:  nil,
		})
	}
	var discount *models.Discount
	if !request.Clear {
		if err := validate.Struct(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
				Result:  nil,
			})
		}
		discount = &models.Discount{Amount: request.Amount, Type: request.Type}
	}

	session := sessionID(c)
	var (
		cart *models.Cart
		err  error
	)
	if request.LineKey != "" {
		cart, err = ct.Cart.SetItemDiscount(ctx, session, request.LineKey, discount)
	} else {
		cart, err = ct.Cart.SetOrderDiscount(ctx, session, discount)
	}
	if err != nil {
		return cartError(c, err)
	}
	return cartResponse(c, session, cart, "Discount updated")
}

func (ct *Controller) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	session := sessionID(c)
	cart, err := ct.Cart.Get(ctx, session)
	if err != nil {
		return cartError(c, err)
	}
	return cartResponse(c, session, cart, "Fetched cart")
}

func (ct *Controller) GetCartTotals(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	session := sessionID(c)
	cart, err := ct.Cart.Get(ctx, session)
	if err != nil {
		return cartError(c, err)
	}
	totals := cartService.ComputeTotals(cart.Lines, cart.Discount)
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Calculated cart totals",
		Result: &fiber.Map{
			"sessionId":      session,
			"subtotal":       totals.Subtotal,
			"discountAmount": totals.DiscountAmount,
			"total":          totals.Total,
		},
	})
}

func (ct *Controller) ClearCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	session := sessionID(c)
	if err := ct.Cart.Clear(ctx, session); err != nil {
		return cartError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Cart cleared",
		Result: &fiber.Map{
			"sessionId": session,
		},
	})
}

func cartResponse(c *fiber.Ctx, session string, cart *models.Cart, message string) error {
	totals := cartService.ComputeTotals(cart.Lines, cart.Discount)
	count := 0
	for _, line := range cart.Lines {
		count += line.Quantity
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result: &fiber.Map{
			"sessionId": session,
			"cart":      cart,
			"lines":     cart.OrderedLines(),
			"cartCount": count,
			"totals":    totals,
		},
	})
}

func cartError(c *fiber.Ctx, err error) error {
	if errors.Is(err, cartService.ErrLineNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: "Item not found in cart",
			Result:  nil,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Failed to update cart",
		Result:  nil,
	})
}
