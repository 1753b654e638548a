package courseValidator

// Request bodies handed to the course controllers through c.Locals.

type CourseRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Author       string `json:"author" validate:"max=120"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
}

type CourseUpdateRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	Author       *string `json:"author" validate:"omitempty,max=120"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,url"`
	Status       *string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type ModuleRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Order       int    `json:"order" validate:"min=0"`
}

type ModuleUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	IsPublished *bool   `json:"is_published"`
}

type LessonRequest struct {
	Title             string   `json:"title" validate:"required,max=200"`
	Description       string   `json:"description" validate:"max=5000"`
	LessonType        string   `json:"lesson_type" validate:"required,oneof=video text pdf audio quiz assignment"`
	Duration          int      `json:"duration" validate:"min=0"`
	MediaRef          string   `json:"media_ref" validate:"max=1024"`
	ExternalURL       string   `json:"external_url" validate:"omitempty,url"`
	Content           string   `json:"content"`
	IsFree            bool     `json:"is_free"`
	IsPublished       bool     `json:"is_published"`
	ExternalResources []string `json:"external_resources" validate:"max=50"`
	Order             int      `json:"order" validate:"min=0"`
}

// LessonUpdateRequest is a partial update. Any of lesson_type, duration,
// media_ref, external_url or content present means the lesson content is
// rebuilt; a lesson_type starts it from scratch.
type LessonUpdateRequest struct {
	Title             *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description       *string   `json:"description" validate:"omitempty,max=5000"`
	LessonType        *string   `json:"lesson_type" validate:"omitempty,oneof=video text pdf audio quiz assignment"`
	Duration          *int      `json:"duration" validate:"omitempty,min=0"`
	MediaRef          *string   `json:"media_ref" validate:"omitempty,max=1024"`
	ExternalURL       *string   `json:"external_url" validate:"omitempty,url"`
	Content           *string   `json:"content"`
	IsFree            *bool     `json:"is_free"`
	IsPublished       *bool     `json:"is_published"`
	ExternalResources *[]string `json:"external_resources" validate:"omitempty,max=50"`
}

func (r *LessonUpdateRequest) TouchesContent() bool {
	return r.LessonType != nil || r.Duration != nil || r.MediaRef != nil || r.ExternalURL != nil || r.Content != nil
}
