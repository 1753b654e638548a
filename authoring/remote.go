package authoring

import (
	"context"

	"github.com/Mavton23/donza-sub001/authoring/ordering"
)

// RemoteSync is the persistence boundary. Every call is a single
// request/response; failures should be *RemoteError values.
type RemoteSync interface {
	FetchCourse(ctx context.Context, courseID uint) (Course, error)

	CreateModule(ctx context.Context, courseID uint, in ModuleInput) (Module, error)
	UpdateModule(ctx context.Context, courseID, moduleID uint, patch ModulePatch) (Module, error)
	DeleteModule(ctx context.Context, courseID, moduleID uint) error
	ReorderModule(ctx context.Context, courseID, moduleID uint, dir ordering.Direction) (Module, error)

	CreateLesson(ctx context.Context, courseID, moduleID uint, payload LessonPayload) (Lesson, error)
	UpdateLesson(ctx context.Context, courseID, moduleID, lessonID uint, patch LessonPatch) (Lesson, error)
	DeleteLesson(ctx context.Context, courseID, moduleID, lessonID uint) error
	ReorderLesson(ctx context.Context, courseID, moduleID, lessonID uint, dir ordering.Direction) (Lesson, error)
}
