package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const adminIDKey = "admin_id"

// RequireAdmin validates the Bearer token on admin routes and stashes the
// admin identity for handlers. Every review decision is recorded against
// this identity; there is no anonymous admin action.
func RequireAdmin() fiber.Handler {
	secret := os.Getenv("ADMIN_JWT_SECRET")

	return func(c *fiber.Ctx) error {
		if secret == "" {
			fmt.Println("ERROR: ADMIN_JWT_SECRET not set")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server configuration error",
			})
		}

		auth := c.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}

		token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}
		if role, _ := claims["role"].(string); role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin role required",
			})
		}
		adminID, _ := claims["sub"].(string)
		if adminID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token missing subject",
			})
		}

		c.Locals(adminIDKey, adminID)
		return c.Next()
	}
}

// AdminID returns the authenticated admin identity set by RequireAdmin.
func AdminID(c *fiber.Ctx) string {
	id, _ := c.Locals(adminIDKey).(string)
	return id
}
