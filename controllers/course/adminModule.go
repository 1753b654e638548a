package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Mavton23/donza-sub001/authoring/ordering"
	"github.com/Mavton23/donza-sub001/middleware"
	courseModels "github.com/Mavton23/donza-sub001/models/course"
	validators "github.com/Mavton23/donza-sub001/validators/course"
)

// AdminCreateModule creates a module. Order 0 appends it; an explicit order
// inserts it there and shifts the modules after it.
func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedModule").(*validators.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	err := db().Transaction(func(tx *gorm.DB) error {
		if _, err := findCourse(tx, courseID); err != nil {
			return err
		}
		before, err := moduleSiblings(tx, courseID)
		if err != nil {
			return err
		}

		module = courseModels.Module{
			CourseID:    courseID,
			Title:       reqData.Title,
			Description: reqData.Description,
			OrderIndex:  len(before) + 1,
		}
		if err := tx.Create(&module).Error; err != nil {
			return err
		}

		after := ordering.Insert(before, ordering.Sibling{ID: module.ID, Order: reqData.Order})
		before = append(before, ordering.Sibling{ID: module.ID, Order: module.OrderIndex})
		if err := saveOrder(tx, &courseModels.Module{}, before, after); err != nil {
			return err
		}
		module.OrderIndex = orderOf(after, module.ID)
		return nil
	})
	if err != nil {
		return txFailure(c, err, "Failed to create module!")
	}
	module.Lessons = []courseModels.Lesson{}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule updates title, description or publish flag. Publishing
// a module leaves its lessons as they are.
func AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)
	reqData, ok := c.Locals("validatedModuleUpdate").(*validators.ModuleUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := findModule(db(), courseID, moduleID)
	if err != nil {
		return txFailure(c, err, "Failed to fetch module!")
	}

	if reqData.Title != nil {
		module.Title = *reqData.Title
	}
	if reqData.Description != nil {
		module.Description = *reqData.Description
	}
	if reqData.IsPublished != nil {
		module.IsPublished = *reqData.IsPublished
	}

	if err := db().Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminDeleteModule soft deletes a module and its lessons, then renumbers
// the remaining modules.
func AdminDeleteModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)

	err := db().Transaction(func(tx *gorm.DB) error {
		module, err := findModule(tx, courseID, moduleID)
		if err != nil {
			return err
		}
		before, err := moduleSiblings(tx, courseID)
		if err != nil {
			return err
		}

		module.IsDeleted = true
		if err := tx.Save(&module).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Lesson{}).Where("module_id = ?", moduleID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return saveOrder(tx, &courseModels.Module{}, before, ordering.Remove(before, moduleID))
	})
	if err != nil {
		return txFailure(c, err, "Failed to delete module!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// AdminReorderModule swaps a module with its neighbour. At the edge of the
// course nothing changes and the module is returned as is.
func AdminReorderModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)
	dir := c.Locals("direction").(ordering.Direction)

	var module courseModels.Module
	var outcome ordering.Outcome
	err := db().Transaction(func(tx *gorm.DB) error {
		if _, err := findModule(tx, courseID, moduleID); err != nil {
			return err
		}
		before, err := moduleSiblings(tx, courseID)
		if err != nil {
			return err
		}

		var after []ordering.Sibling
		after, outcome = ordering.Move(before, moduleID, dir)
		if err := saveOrder(tx, &courseModels.Module{}, before, after); err != nil {
			return err
		}
		module, err = findModule(tx, courseID, moduleID)
		return err
	})
	if err != nil {
		return txFailure(c, err, "Failed to reorder module!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, reorderMessage("Module", outcome), module)
}
