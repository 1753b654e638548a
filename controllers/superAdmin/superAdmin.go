package superAdminController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mavton23/donza-sub001/config"
	"github.com/Mavton23/donza-sub001/database"
	"github.com/Mavton23/donza-sub001/logger"
	"github.com/Mavton23/donza-sub001/middleware"
	"github.com/Mavton23/donza-sub001/models"
	superAdminValidator "github.com/Mavton23/donza-sub001/validators/superAdmin"
)

// UserList lists the accounts that can sign in to the authoring API.
func UserList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*superAdminValidator.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("is_deleted = ?", false)
		if reqData.Role != "" {
			tx = tx.Where("role = ?", reqData.Role)
		}
		return tx
	}
	db := database.Database.Db

	var total int64
	if err := db.Model(&models.User{}).Scopes(filter).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	var users []models.User
	if err := db.Scopes(filter).Order("id asc").Offset(offset).Limit(reqData.Limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// RegisterUser creates an ADMIN or AUTHOR account. Role defaults to AUTHOR.
func RegisterUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*superAdminValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	cost := config.AppConfig.SaltRound
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), cost)
	if err != nil {
		logger.L().Error("failed to hash password", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleAuthor
	}
	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := db.Create(&newUser).Error; err != nil {
		logger.L().Error("failed to save user", "email", reqData.Email, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	logger.L().Info("user registered", "user_id", newUser.ID, "role", role, "by", c.Locals("userId"))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// SetUserBlocked blocks or unblocks an account. A manual block has no end
// time; unblocking also clears the failed login counter. Admins cannot block
// themselves.
func SetUserBlocked(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)
	reqData, ok := c.Locals("validatedBlock").(*superAdminValidator.BlockRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	if self, _ := c.Locals("userId").(uint); self == targetID && *reqData.Blocked {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot block your own account!", nil)
	}

	db := database.Database.Db
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	user.IsBlocked = *reqData.Blocked
	user.BlockedUntil = nil
	if !user.IsBlocked {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
	}
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User unblocked."
	if user.IsBlocked {
		message = "User blocked."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}
