package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Mavton23/donza-sub001/middleware"
	courseModels "github.com/Mavton23/donza-sub001/models/course"
	validators "github.com/Mavton23/donza-sub001/validators/course"
)

// AdminCreateCourse creates a new draft course
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*validators.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       courseModels.StatusDraft,
	}

	if err := db().Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	course.Modules = []courseModels.Module{}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedCourseUpdate").(*validators.CourseUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := findCourse(db(), courseID)
	if err != nil {
		return txFailure(c, err, "Failed to fetch course!")
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Author != nil {
		course.Author = *reqData.Author
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}

	if err := db().Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft deletes a course with all its modules and lessons
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	err := db().Transaction(func(tx *gorm.DB) error {
		course, err := findCourse(tx, courseID)
		if err != nil {
			return err
		}
		course.IsDeleted = true
		if err := tx.Save(&course).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", courseID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.Lesson{}).Where("course_id = ?", courseID).Update("is_deleted", true).Error
	})
	if err != nil {
		return txFailure(c, err, "Failed to delete course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists courses, newest first
func AdminGetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var courses []courseModels.Course
	var total int64

	status := c.Query("status")
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("is_deleted = ?", false)
		if status != "" {
			tx = tx.Where("status = ?", status)
		}
		return tx
	}

	if err := db().Model(&courseModels.Course{}).Scopes(filter).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	if err := db().Scopes(filter).Offset(offset).Limit(limit).Order("created_at desc, id desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetCourseDetails returns the whole content tree of a course, modules
// and lessons in display order.
func AdminGetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	live := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_deleted = ?", false).Order("order_index asc, id asc")
	}

	var course courseModels.Course
	err := db().
		Preload("Modules", live).
		Preload("Modules.Lessons", live).
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if err != nil {
		return txFailure(c, notFoundAs(err, errCourseNotFound), "Failed to fetch course!")
	}

	if course.Modules == nil {
		course.Modules = []courseModels.Module{}
	}
	for i := range course.Modules {
		if course.Modules[i].Lessons == nil {
			course.Modules[i].Lessons = []courseModels.Lesson{}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", course)
}
