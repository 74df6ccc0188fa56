package responses

import "github.com/gofiber/fiber/v2"

// UserResponse is the envelope every endpoint returns.
type UserResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Result  *fiber.Map `json:"result"`
}
