package superAdminRoutes

import (
	"github.com/gofiber/fiber/v2"

	superAdminController "github.com/Mavton23/donza-sub001/controllers/superAdmin"
	"github.com/Mavton23/donza-sub001/middleware"
	superAdminValidator "github.com/Mavton23/donza-sub001/validators/superAdmin"
)

func SetupSuperAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/user", middleware.JWTMiddleware, middleware.AdminOnly())

	adminGroup.Get("/list", superAdminValidator.List(), superAdminController.UserList)
	adminGroup.Post("/register", superAdminValidator.Register(), superAdminController.RegisterUser)
	adminGroup.Put("/:id/block", superAdminValidator.Block(), superAdminController.SetUserBlocked)
}
