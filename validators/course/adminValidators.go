package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mavton23/donza-sub001/authoring/ordering"
	"github.com/Mavton23/donza-sub001/middleware"
	"github.com/Mavton23/donza-sub001/utils"
)

// parseID reads a positive numeric route parameter.
func parseID(c *fiber.Ctx, param, label string) (uint, error) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
	}
	return uint(id), nil
}

// withIDs parses the named route parameters into locals before next runs.
// The locals are named after the parameter: "id" and "course_id" become
// courseID, "module_id" moduleID, "lesson_id" lessonID.
func withIDs(params ...string) func(c *fiber.Ctx) (bool, error) {
	return func(c *fiber.Ctx) (bool, error) {
		for _, p := range params {
			var local, label string
			switch p {
			case "id", "course_id":
				local, label = "courseID", "Course ID"
			case "module_id":
				local, label = "moduleID", "Module ID"
			case "lesson_id":
				local, label = "lessonID", "Lesson ID"
			}
			id, err := parseID(c, p, label)
			if id == 0 {
				return false, err
			}
			c.Locals(local, id)
		}
		return true, nil
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func blankPtr(s *string) bool {
	return s != nil && *s == ""
}

// ============ Course Validators ============

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Author = strings.TrimSpace(reqData.Author)

		if errors := utils.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	ids := withIDs("id")
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}

		reqData := new(CourseUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		trimPtr(reqData.Title)
		trimPtr(reqData.Description)
		trimPtr(reqData.Author)
		if reqData.Status != nil {
			*reqData.Status = strings.ToLower(strings.TrimSpace(*reqData.Status))
		}

		errors := utils.ValidateStruct(reqData)
		if blankPtr(reqData.Title) {
			errors["title"] = "Title cannot be blank!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseParams validates requests that only carry a course ID
func CourseParams() fiber.Handler {
	ids := withIDs("id")
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}
		return c.Next()
	}
}

// ============ Module Validators ============

// CreateModule validates module creation request
func CreateModule() fiber.Handler {
	ids := withIDs("id")
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if errors := utils.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates module update request
func UpdateModule() fiber.Handler {
	ids := withIDs("course_id", "module_id")
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}

		reqData := new(ModuleUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		trimPtr(reqData.Title)
		trimPtr(reqData.Description)

		errors := utils.ValidateStruct(reqData)
		if blankPtr(reqData.Title) {
			errors["title"] = "Module title cannot be blank!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// ModuleParams validates requests addressing one module
func ModuleParams() fiber.Handler {
	ids := withIDs("course_id", "module_id")
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}
		return c.Next()
	}
}

// ============ Lesson Validators ============

// CreateLesson validates lesson creation request
func CreateLesson() fiber.Handler {
	ids := withIDs("course_id", "module_id")
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.LessonType = strings.ToLower(strings.TrimSpace(reqData.LessonType))
		reqData.MediaRef = strings.TrimSpace(reqData.MediaRef)
		reqData.ExternalURL = strings.TrimSpace(reqData.ExternalURL)

		if errors := utils.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates lesson update request
func UpdateLesson() fiber.Handler {
	ids := withIDs("course_id", "module_id", "lesson_id")
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}

		reqData := new(LessonUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		trimPtr(reqData.Title)
		trimPtr(reqData.Description)
		trimPtr(reqData.MediaRef)
		trimPtr(reqData.ExternalURL)
		if reqData.LessonType != nil {
			*reqData.LessonType = strings.ToLower(strings.TrimSpace(*reqData.LessonType))
		}

		errors := utils.ValidateStruct(reqData)
		if blankPtr(reqData.Title) {
			errors["title"] = "Lesson title cannot be blank!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// LessonParams validates requests addressing one lesson
func LessonParams() fiber.Handler {
	ids := withIDs("course_id", "module_id", "lesson_id")
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}
		return c.Next()
	}
}

// ============ Reorder Validators ============

// Reorder validates a move request. params are the route parameters that
// identify the moved entity.
func Reorder(params ...string) fiber.Handler {
	ids := withIDs(params...)
	return func(c *fiber.Ctx) error {
		if ok, err := ids(c); !ok {
			return err
		}

		reqData := new(struct {
			Direction string `json:"direction"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		dir, err := ordering.ParseDirection(reqData.Direction)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"direction": "Direction must be up or down!"})
		}

		c.Locals("direction", dir)
		return c.Next()
	}
}
