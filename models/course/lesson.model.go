package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson is one ordered unit of a module. Only the fields of its
// lesson_type are set; the rest stay empty.
type Lesson struct {
	gorm.Model
	CourseID          uint                        `json:"course_id" gorm:"index;not null"`
	ModuleID          uint                        `json:"module_id" gorm:"index;not null"`
	Title             string                      `json:"title"`
	Description       string                      `json:"description"`
	LessonType        string                      `json:"lesson_type" gorm:"default:'text'"` // video, text, pdf, audio, quiz, assignment
	OrderIndex        int                         `json:"order" gorm:"default:0"`            // 1..N within the module
	Duration          int                         `json:"duration" gorm:"default:0"`         // minutes, video and audio only
	MediaRef          string                      `json:"media_ref"`
	ExternalURL       string                      `json:"external_url"`
	Content           string                      `json:"content" gorm:"type:text"` // text and assignment body
	IsFree            bool                        `json:"is_free" gorm:"default:false"`
	IsPublished       bool                        `json:"is_published" gorm:"default:false"`
	ExternalResources datatypes.JSONSlice[string] `json:"external_resources"`
	IsDeleted         bool                        `gorm:"default:false"`
}
