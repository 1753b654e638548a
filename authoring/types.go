package authoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mavton23/donza-sub001/authoring/ordering"
)

type EntityKind string

const (
	EntityCourse EntityKind = "course"
	EntityModule EntityKind = "module"
	EntityLesson EntityKind = "lesson"
)

// CourseStatus is the course lifecycle. Courses are created outside the
// engine; the engine only carries the value.
type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

func ParseCourseStatus(s string) (CourseStatus, error) {
	switch st := CourseStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case CourseDraft, CoursePublished, CourseArchived:
		return st, nil
	case "":
		return CourseDraft, nil
	}
	return "", invalid("status", fmt.Sprintf("unknown course status %q", s))
}

type LessonType string

const (
	LessonVideo      LessonType = "video"
	LessonText       LessonType = "text"
	LessonPDF        LessonType = "pdf"
	LessonAudio      LessonType = "audio"
	LessonQuiz       LessonType = "quiz"
	LessonAssignment LessonType = "assignment"
)

// LessonTypes lists every recognised kind.
var LessonTypes = []LessonType{LessonVideo, LessonText, LessonPDF, LessonAudio, LessonQuiz, LessonAssignment}

func ParseLessonType(s string) (LessonType, error) {
	t := LessonType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range LessonTypes {
		if t == known {
			return t, nil
		}
	}
	return "", invalid("lesson_type", fmt.Sprintf("unknown lesson type %q", s))
}

// TimedMedia reports whether the kind carries a duration.
func (t LessonType) TimedMedia() bool {
	return t == LessonVideo || t == LessonAudio
}

// Content is the kind-specific part of a lesson. The set of implementations
// is closed.
type Content interface {
	Kind() LessonType
	sealed()
}

type VideoContent struct {
	MediaRef    string
	ExternalURL string
	Duration    int
}

type AudioContent struct {
	MediaRef    string
	ExternalURL string
	Duration    int
}

type PDFContent struct {
	MediaRef    string
	ExternalURL string
}

type TextContent struct {
	Body string
}

type AssignmentContent struct {
	Body string
}

// QuizContent has nothing inline; quiz configuration lives elsewhere.
type QuizContent struct{}

func (VideoContent) Kind() LessonType      { return LessonVideo }
func (AudioContent) Kind() LessonType      { return LessonAudio }
func (PDFContent) Kind() LessonType        { return LessonPDF }
func (TextContent) Kind() LessonType       { return LessonText }
func (AssignmentContent) Kind() LessonType { return LessonAssignment }
func (QuizContent) Kind() LessonType       { return LessonQuiz }

func (VideoContent) sealed()      {}
func (AudioContent) sealed()      {}
func (PDFContent) sealed()        {}
func (TextContent) sealed()       {}
func (AssignmentContent) sealed() {}
func (QuizContent) sealed()       {}

// DurationOf returns the minutes of timed media, 0 for everything else.
func DurationOf(c Content) int {
	switch v := c.(type) {
	case VideoContent:
		return v.Duration
	case AudioContent:
		return v.Duration
	}
	return 0
}

type Lesson struct {
	ID                uint
	ModuleID          uint
	Title             string
	Description       string
	Order             int
	IsFree            bool
	IsPublished       bool
	Content           Content
	ExternalResources []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (l Lesson) Type() LessonType {
	if l.Content == nil {
		return ""
	}
	return l.Content.Kind()
}

func (l Lesson) Duration() int { return DurationOf(l.Content) }

func (l Lesson) clone() Lesson {
	l.ExternalResources = append([]string(nil), l.ExternalResources...)
	return l
}

type Module struct {
	ID          uint
	CourseID    uint
	Title       string
	Description string
	Order       int
	IsPublished bool
	Lessons     []Lesson
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m Module) clone() Module {
	lessons := make([]Lesson, len(m.Lessons))
	for i, l := range m.Lessons {
		lessons[i] = l.clone()
	}
	m.Lessons = lessons
	return m
}

func (m Module) lessonSiblings() []ordering.Sibling {
	out := make([]ordering.Sibling, len(m.Lessons))
	for i, l := range m.Lessons {
		out[i] = ordering.Sibling{ID: l.ID, Order: l.Order}
	}
	return out
}

type Course struct {
	ID          uint
	Title       string
	Description string
	Status      CourseStatus
	Modules     []Module
}

func (c Course) clone() Course {
	modules := make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		modules[i] = m.clone()
	}
	c.Modules = modules
	return c
}

func (c Course) moduleSiblings() []ordering.Sibling {
	out := make([]ordering.Sibling, len(c.Modules))
	for i, m := range c.Modules {
		out[i] = ordering.Sibling{ID: m.ID, Order: m.Order}
	}
	return out
}

// LessonCount across all modules.
func (c Course) LessonCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}
