package middlewares

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"resto-mongo-api/configs"
	"resto-mongo-api/models"
	"resto-mongo-api/responses"
	"resto-mongo-api/store"
)

var jwtSecret = configs.EnvJWTSecret()

// AuthMiddleware validates the bearer token issued by the external auth
// service and stores the authenticated email in Locals.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "No auth token, access denied",
		})
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid authorization header format",
		})
	}

	claims := &jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(bearerToken[1], claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Token verification failed, access denied",
		})
	}

	email, ok := (*claims)["email"].(string)
	if !ok || email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Email not found in token",
		})
	}

	c.Locals("email", email)
	return c.Next()
}

// RequireRole resolves the caller's role from the staff collection and
// rejects anyone whose role is not in the allowed set. Runs after
// AuthMiddleware.
func RequireRole(st store.Store, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()

		email, _ := c.Locals("email").(string)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Email not found in token",
			})
		}

		var members []models.Staff
		if err := st.List(ctx, "staff", "", &members); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error fetching staff roles",
			})
		}

		var role string
		for _, member := range members {
			if member.Email == email {
				role = member.Role
				break
			}
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Locals("role", role)
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(responses.UserResponse{
			Status:  fiber.StatusForbidden,
			Message: "Access denied for role",
		})
	}
}
