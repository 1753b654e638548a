package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "github.com/Mavton23/donza-sub001/controllers/course"
	"github.com/Mavton23/donza-sub001/middleware"
	validators "github.com/Mavton23/donza-sub001/validators/course"
)

// SetupAdminCourseRoutes sets up all course authoring routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminOnly := middleware.AdminOnly()
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, adminOnly)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", controllers.AdminGetAllCourses)
	adminGroup.Get("/:id", validators.CourseParams(), controllers.AdminGetCourseDetails)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseParams(), controllers.AdminDeleteCourse)

	// Module Management
	adminGroup.Post("/:id/module", validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Put("/:course_id/module/:module_id", validators.UpdateModule(), controllers.AdminUpdateModule)
	adminGroup.Delete("/:course_id/module/:module_id", validators.ModuleParams(), controllers.AdminDeleteModule)
	adminGroup.Post("/:course_id/module/:module_id/reorder", validators.Reorder("course_id", "module_id"), controllers.AdminReorderModule)

	// Lesson Management
	lessons := "/:course_id/module/:module_id/lesson"
	adminGroup.Post(lessons, validators.CreateLesson(), controllers.AdminCreateLesson)
	adminGroup.Put(lessons+"/:lesson_id", validators.UpdateLesson(), controllers.AdminUpdateLesson)
	adminGroup.Delete(lessons+"/:lesson_id", validators.LessonParams(), controllers.AdminDeleteLesson)
	adminGroup.Post(lessons+"/:lesson_id/reorder", validators.Reorder("course_id", "module_id", "lesson_id"), controllers.AdminReorderLesson)

	// Media
	app.Post("/admin/media", middleware.JWTMiddleware, adminOnly, controllers.AdminUploadMedia)
}
