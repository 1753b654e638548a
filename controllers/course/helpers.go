package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Mavton23/donza-sub001/authoring"
	"github.com/Mavton23/donza-sub001/authoring/ordering"
	"github.com/Mavton23/donza-sub001/database"
	"github.com/Mavton23/donza-sub001/logger"
	"github.com/Mavton23/donza-sub001/middleware"
	courseModels "github.com/Mavton23/donza-sub001/models/course"
)

var (
	errCourseNotFound = errors.New("course not found")
	errModuleNotFound = errors.New("module not found")
	errLessonNotFound = errors.New("lesson not found")
)

// txFailure answers for an error returned out of a write transaction.
func txFailure(c *fiber.Ctx, err error, message string) error {
	var verr *authoring.ValidationError
	switch {
	case errors.Is(err, errCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, errModuleNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	case errors.Is(err, errLessonNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	case errors.As(err, &verr):
		return middleware.ValidationErrorResponse(c, map[string]string{verr.Field: verr.Message})
	}
	logger.L().Error(message, "path", c.Path(), "error", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, message, nil)
}

// notFoundAs maps gorm's missing-row error to sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func db() *gorm.DB {
	return database.Database.Db
}

func findCourse(tx *gorm.DB, courseID uint) (courseModels.Course, error) {
	var course courseModels.Course
	err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error
	return course, notFoundAs(err, errCourseNotFound)
}

func findModule(tx *gorm.DB, courseID, moduleID uint) (courseModels.Module, error) {
	var module courseModels.Module
	err := tx.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error
	return module, notFoundAs(err, errModuleNotFound)
}

func findLesson(tx *gorm.DB, courseID, moduleID, lessonID uint) (courseModels.Lesson, error) {
	var lesson courseModels.Lesson
	err := tx.Where("id = ? AND module_id = ? AND course_id = ? AND is_deleted = ?", lessonID, moduleID, courseID, false).
		First(&lesson).Error
	return lesson, notFoundAs(err, errLessonNotFound)
}

// moduleSiblings loads the live modules of a course in display order.
func moduleSiblings(tx *gorm.DB, courseID uint) ([]ordering.Sibling, error) {
	var modules []courseModels.Module
	err := tx.Select("id", "order_index").
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").
		Find(&modules).Error
	if err != nil {
		return nil, err
	}
	sibs := make([]ordering.Sibling, len(modules))
	for i, m := range modules {
		sibs[i] = ordering.Sibling{ID: m.ID, Order: m.OrderIndex}
	}
	return sibs, nil
}

// lessonSiblings loads the live lessons of a module in display order.
func lessonSiblings(tx *gorm.DB, moduleID uint) ([]ordering.Sibling, error) {
	var lessons []courseModels.Lesson
	err := tx.Select("id", "order_index").
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc, id asc").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	sibs := make([]ordering.Sibling, len(lessons))
	for i, l := range lessons {
		sibs[i] = ordering.Sibling{ID: l.ID, Order: l.OrderIndex}
	}
	return sibs, nil
}

// saveOrder writes every order that differs from the stored one. model is
// a pointer to an empty Module or Lesson.
func saveOrder(tx *gorm.DB, model interface{}, before, after []ordering.Sibling) error {
	stored := make(map[uint]int, len(before))
	for _, s := range before {
		stored[s.ID] = s.Order
	}
	for _, s := range after {
		if old, ok := stored[s.ID]; ok && old == s.Order {
			continue
		}
		if err := tx.Model(model).Where("id = ?", s.ID).Update("order_index", s.Order).Error; err != nil {
			return err
		}
	}
	return nil
}

func orderOf(sibs []ordering.Sibling, id uint) int {
	if i := ordering.IndexOf(sibs, id); i >= 0 {
		return sibs[i].Order
	}
	return 0
}

func reorderMessage(entity string, outcome ordering.Outcome) string {
	if outcome == ordering.AtBoundary {
		return entity + " is already at the edge, nothing moved."
	}
	return entity + " moved successfully!"
}
