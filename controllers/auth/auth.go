package authController

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mavton23/donza-sub001/database"
	"github.com/Mavton23/donza-sub001/logger"
	"github.com/Mavton23/donza-sub001/middleware"
	"github.com/Mavton23/donza-sub001/models"
	authValidator "github.com/Mavton23/donza-sub001/validators/auth"
)

const (
	maxFailedLogins = 3
	failureWindow   = 15 * time.Minute
	blockDuration   = time.Minute
)

// Login checks email and password and returns a signed token. Three wrong
// passwords within the failure window block the account for a minute.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(reqData.Email)

	var user models.User
	err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if err != nil {
		recordAttempt(c, 0, email, false)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	now := time.Now()
	if user.IsBlocked && user.BlockedUntil != nil && user.BlockedUntil.After(now) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}
	if user.LastFailedLogin != nil && now.Sub(*user.LastFailedLogin) > failureWindow {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		user.LastFailedLogin = &now
		if user.FailedLoginAttempts >= maxFailedLogins {
			user.IsBlocked = true
			until := now.Add(blockDuration)
			user.BlockedUntil = &until
		}
		if err := db.Save(&user).Error; err != nil {
			logger.L().Error("failed to record failed login", "user_id", user.ID, "error", err)
		}
		recordAttempt(c, user.ID, email, false)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	user.LastLogin = &now
	user.FailedLoginAttempts = 0
	user.LastFailedLogin = nil
	user.IsBlocked = false
	user.BlockedUntil = nil
	if err := db.Save(&user).Error; err != nil {
		logger.L().Error("failed to save last login time", "user_id", user.ID, "error", err)
	}
	recordAttempt(c, user.ID, email, true)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func recordAttempt(c *fiber.Ctx, userID uint, email string, succeeded bool) {
	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	attempt := models.LoginAttempt{
		UserID:    userID,
		Email:     email,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Succeeded: succeeded,
		Timestamp: time.Now(),
	}
	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		logger.L().Error("failed to save login attempt", "email", email, "error", err)
	}
}
