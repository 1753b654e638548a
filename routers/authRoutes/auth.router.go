package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "github.com/Mavton23/donza-sub001/controllers/auth"
	authValidators "github.com/Mavton23/donza-sub001/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
}
