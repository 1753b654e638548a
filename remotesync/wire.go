package remotesync

import (
	"encoding/json"
	"time"

	"github.com/Mavton23/donza-sub001/authoring"
)

// envelope is the {status, message, data} body every API response carries.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type courseWire struct {
	ID          uint         `json:"ID"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Modules     []moduleWire `json:"modules"`
}

type moduleWire struct {
	ID          uint         `json:"ID"`
	CourseID    uint         `json:"course_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Order       int          `json:"order"`
	IsPublished bool         `json:"is_published"`
	Lessons     []lessonWire `json:"lessons"`
	CreatedAt   time.Time    `json:"CreatedAt"`
	UpdatedAt   time.Time    `json:"UpdatedAt"`
}

type lessonWire struct {
	ID                uint      `json:"ID"`
	ModuleID          uint      `json:"module_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	LessonType        string    `json:"lesson_type"`
	Order             int       `json:"order"`
	Duration          int       `json:"duration"`
	MediaRef          string    `json:"media_ref"`
	ExternalURL       string    `json:"external_url"`
	Content           string    `json:"content"`
	IsFree            bool      `json:"is_free"`
	IsPublished       bool      `json:"is_published"`
	ExternalResources []string  `json:"external_resources"`
	CreatedAt         time.Time `json:"CreatedAt"`
	UpdatedAt         time.Time `json:"UpdatedAt"`
}

type reorderBody struct {
	Direction string `json:"direction"`
}

func (w courseWire) course() (authoring.Course, error) {
	status, err := authoring.ParseCourseStatus(w.Status)
	if err != nil {
		return authoring.Course{}, err
	}
	c := authoring.Course{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Status:      status,
		Modules:     make([]authoring.Module, 0, len(w.Modules)),
	}
	for _, mw := range w.Modules {
		m, err := mw.module()
		if err != nil {
			return authoring.Course{}, err
		}
		c.Modules = append(c.Modules, m)
	}
	return c, nil
}

func (w moduleWire) module() (authoring.Module, error) {
	m := authoring.Module{
		ID:          w.ID,
		CourseID:    w.CourseID,
		Title:       w.Title,
		Description: w.Description,
		Order:       w.Order,
		IsPublished: w.IsPublished,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	for _, lw := range w.Lessons {
		l, err := lw.lesson()
		if err != nil {
			return authoring.Module{}, err
		}
		m.Lessons = append(m.Lessons, l)
	}
	return m, nil
}

func (w lessonWire) lesson() (authoring.Lesson, error) {
	lessonType, err := authoring.ParseLessonType(w.LessonType)
	if err != nil {
		return authoring.Lesson{}, err
	}
	content, err := authoring.ContentFromPayload(authoring.LessonPayload{
		LessonType:  lessonType,
		Duration:    w.Duration,
		MediaRef:    w.MediaRef,
		ExternalURL: w.ExternalURL,
		Content:     w.Content,
	})
	if err != nil {
		return authoring.Lesson{}, err
	}
	return authoring.Lesson{
		ID:                w.ID,
		ModuleID:          w.ModuleID,
		Title:             w.Title,
		Description:       w.Description,
		Order:             w.Order,
		IsFree:            w.IsFree,
		IsPublished:       w.IsPublished,
		Content:           content,
		ExternalResources: authoring.CleanResources(w.ExternalResources),
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}, nil
}
