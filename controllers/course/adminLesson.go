package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Mavton23/donza-sub001/authoring"
	"github.com/Mavton23/donza-sub001/authoring/ordering"
	"github.com/Mavton23/donza-sub001/middleware"
	courseModels "github.com/Mavton23/donza-sub001/models/course"
	validators "github.com/Mavton23/donza-sub001/validators/course"
)

// setContent stores only the fields the payload's lesson type uses.
func setContent(lesson *courseModels.Lesson, p authoring.LessonPayload) {
	lesson.LessonType = string(p.LessonType)
	lesson.Duration = p.Duration
	lesson.MediaRef = p.MediaRef
	lesson.ExternalURL = p.ExternalURL
	lesson.Content = p.Content
}

// AdminCreateLesson creates a lesson in a module. Fields that do not belong
// to the lesson type are dropped before saving.
func AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)
	reqData, ok := c.Locals("validatedLesson").(*validators.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	err := db().Transaction(func(tx *gorm.DB) error {
		if _, err := findModule(tx, courseID, moduleID); err != nil {
			return err
		}
		before, err := lessonSiblings(tx, moduleID)
		if err != nil {
			return err
		}

		payload, err := authoring.BuildPayload(authoring.LessonDraft{
			ModuleID:          moduleID,
			Title:             reqData.Title,
			Description:       reqData.Description,
			Type:              reqData.LessonType,
			Duration:          strconv.Itoa(reqData.Duration),
			MediaRef:          reqData.MediaRef,
			ExternalURL:       reqData.ExternalURL,
			Body:              reqData.Content,
			ExternalResources: reqData.ExternalResources,
			IsFree:            reqData.IsFree,
			IsPublished:       reqData.IsPublished,
		}, len(before))
		if err != nil {
			return err
		}

		lesson = courseModels.Lesson{
			CourseID:          courseID,
			ModuleID:          moduleID,
			Title:             payload.Title,
			Description:       payload.Description,
			OrderIndex:        payload.Order,
			IsFree:            payload.IsFree,
			IsPublished:       payload.IsPublished,
			ExternalResources: datatypes.JSONSlice[string](payload.ExternalResources),
		}
		setContent(&lesson, payload)
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}

		after := ordering.Insert(before, ordering.Sibling{ID: lesson.ID, Order: reqData.Order})
		before = append(before, ordering.Sibling{ID: lesson.ID, Order: lesson.OrderIndex})
		if err := saveOrder(tx, &courseModels.Lesson{}, before, after); err != nil {
			return err
		}
		lesson.OrderIndex = orderOf(after, lesson.ID)
		return nil
	})
	if err != nil {
		return txFailure(c, err, "Failed to create lesson!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson applies a partial update. A new lesson_type resets every
// type-specific field; other content fields are merged onto the stored ones
// and re-filtered for the lesson type.
func AdminUpdateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	reqData, ok := c.Locals("validatedLessonUpdate").(*validators.LessonUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := findLesson(db(), courseID, moduleID, lessonID)
	if err != nil {
		return txFailure(c, err, "Failed to fetch lesson!")
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.Description != nil {
		lesson.Description = *reqData.Description
	}
	if reqData.IsFree != nil {
		lesson.IsFree = *reqData.IsFree
	}
	if reqData.IsPublished != nil {
		lesson.IsPublished = *reqData.IsPublished
	}
	if reqData.ExternalResources != nil {
		lesson.ExternalResources = datatypes.JSONSlice[string](authoring.CleanResources(*reqData.ExternalResources))
	}

	if reqData.TouchesContent() {
		draft := authoring.LessonDraft{
			Title:       lesson.Title,
			Type:        lesson.LessonType,
			Duration:    strconv.Itoa(lesson.Duration),
			MediaRef:    lesson.MediaRef,
			ExternalURL: lesson.ExternalURL,
			Body:        lesson.Content,
		}
		if reqData.LessonType != nil {
			draft = authoring.LessonDraft{Title: lesson.Title, Type: *reqData.LessonType}
		}
		if reqData.Duration != nil {
			draft.Duration = strconv.Itoa(*reqData.Duration)
		}
		if reqData.MediaRef != nil {
			draft.MediaRef = *reqData.MediaRef
		}
		if reqData.ExternalURL != nil {
			draft.ExternalURL = *reqData.ExternalURL
		}
		if reqData.Content != nil {
			draft.Body = *reqData.Content
		}

		payload, err := authoring.BuildPayload(draft, 0)
		if err != nil {
			return txFailure(c, err, "Failed to update lesson!")
		}
		setContent(&lesson, payload)
	}

	if err := db().Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft deletes a lesson and renumbers the rest of its
// module.
func AdminDeleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	err := db().Transaction(func(tx *gorm.DB) error {
		lesson, err := findLesson(tx, courseID, moduleID, lessonID)
		if err != nil {
			return err
		}
		before, err := lessonSiblings(tx, moduleID)
		if err != nil {
			return err
		}

		lesson.IsDeleted = true
		if err := tx.Save(&lesson).Error; err != nil {
			return err
		}
		return saveOrder(tx, &courseModels.Lesson{}, before, ordering.Remove(before, lessonID))
	})
	if err != nil {
		return txFailure(c, err, "Failed to delete lesson!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AdminReorderLesson swaps a lesson with its neighbour inside its module.
func AdminReorderLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	dir := c.Locals("direction").(ordering.Direction)

	var lesson courseModels.Lesson
	var outcome ordering.Outcome
	err := db().Transaction(func(tx *gorm.DB) error {
		if _, err := findLesson(tx, courseID, moduleID, lessonID); err != nil {
			return err
		}
		before, err := lessonSiblings(tx, moduleID)
		if err != nil {
			return err
		}

		var after []ordering.Sibling
		after, outcome = ordering.Move(before, lessonID, dir)
		if err := saveOrder(tx, &courseModels.Lesson{}, before, after); err != nil {
			return err
		}
		lesson, err = findLesson(tx, courseID, moduleID, lessonID)
		return err
	})
	if err != nil {
		return txFailure(c, err, "Failed to reorder lesson!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, reorderMessage("Lesson", outcome), lesson)
}
