package adminController

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"resto-mongo-api/responses"
	"resto-mongo-api/services/allocator"
	"resto-mongo-api/services/catalog"
	"resto-mongo-api/store"
)

var validate = validator.New()

type Controller struct {
	Catalog *catalog.Service
}

type CreateCategoryRequest struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Prefix string `json:"prefix" validate:"required,min=2,max=3"`
}

func (ct *Controller) CreateCategory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request CreateCategoryRequest
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

	category, err := ct.Catalog.CreateCategory(ctx, request.ID, request.Name, request.Prefix)
	if err != nil {
		return categoryError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Category created",
		Result: &fiber.Map{
			"category": category,
		},
	})
}

func (ct *Controller) ListCategories(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	categories, err := ct.Catalog.ListCategories(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching categories",
			Result:  nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched categories",
		Result: &fiber.Map{
			"categories": categories,
		},
	})
}

func (ct *Controller) DeleteCategory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := ct.Catalog.DeleteCategory(ctx, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error deleting category",
			Result:  nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Category deleted",
		Result:  nil,
	})
}

type ItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       int64  `json:"price" validate:"min=0"`
	StockStatus string `json:"stockStatus" validate:"omitempty,oneof='In Stock' 'Out of Stock'"`
}

func (ct *Controller) AddItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request ItemRequest
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

	item, err := ct.Catalog.AddItem(ctx, c.Params("id"), request.Name, request.Price, request.StockStatus)
	if err != nil {
		return categoryError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Item added",
		Result: &fiber.Map{
			"item": item,
		},
	})
}

func (ct *Controller) EditItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request ItemRequest
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

	item, err := ct.Catalog.EditItem(ctx, c.Params("id"), c.Params("itemID"), request.Name, request.Price, request.StockStatus)
	if err != nil {
		return categoryError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Item saved",
		Result: &fiber.Map{
			"item": item,
		},
	})
}

// DeleteItem succeeds even when the item is already gone; the filter write
// is idempotent.
func (ct *Controller) DeleteItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := ct.Catalog.DeleteItem(ctx, c.Params("id"), c.Params("itemID")); err != nil {
		return categoryError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Item deleted",
		Result:  nil,
	})
}

func categoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrInvalidCategoryID),
		errors.Is(err, allocator.ErrInvalidPrefix),
		errors.Is(err, catalog.ErrDuplicateCategory):
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	case errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, catalog.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: err.Error(),
			Result:  nil,
		})
	case errors.Is(err, store.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(responses.UserResponse{
			Status:  fiber.StatusConflict,
			Message: "Category was modified concurrently, retry",
			Result:  nil,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating category",
			Result:  nil,
		})
	}
}
