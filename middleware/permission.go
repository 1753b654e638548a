package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Mavton23/donza-sub001/database"
	"github.com/Mavton23/donza-sub001/models"
)

// RequireRole lets the request through only when the token's user still
// exists, is not blocked and has one of roles. The role is read from the
// database, not from the token.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		if user.IsBlocked && (user.BlockedUntil == nil || user.BlockedUntil.After(time.Now())) {
			return JsonResponse(c, fiber.StatusForbidden, false, "Your account is blocked.", nil)
		}
		if !allowed[user.Role] {
			return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
		}

		c.Locals("role", user.Role)
		return c.Next()
	}
}

// AdminOnly is RequireRole(ADMIN).
func AdminOnly() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}
