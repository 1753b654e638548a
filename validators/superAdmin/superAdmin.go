package superAdminValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mavton23/donza-sub001/middleware"
	"github.com/Mavton23/donza-sub001/utils"
)

type ListQuery struct {
	Page  int    `query:"page" json:"page" validate:"min=0"`
	Limit int    `query:"limit" json:"limit" validate:"min=0,max=100"`
	Role  string `query:"role" json:"role" validate:"omitempty,oneof=ADMIN AUTHOR"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN AUTHOR"`
}

type BlockRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))

		if errors := utils.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		if reqData.Page == 0 {
			reqData.Page = 1
		}
		if reqData.Limit == 0 {
			reqData.Limit = 10
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))

		if errors := utils.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Block validates the block/unblock body and the :id user parameter.
func Block() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"id": "User ID must be a valid positive number!"})
		}

		reqData := new(BlockRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := utils.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("targetUserID", uint(id))
		c.Locals("validatedBlock", reqData)
		return c.Next()
	}
}
