package authoring

import (
	"math"
	"strconv"
	"strings"
)

// LessonDraft is what the authoring form collects. Values arrive raw and are
// normalized by BuildPayload.
type LessonDraft struct {
	ModuleID          uint
	Title             string
	Description       string
	Type              string
	Duration          string
	MediaRef          string
	ExternalURL       string
	Body              string
	ExternalResources []string
	IsFree            bool
	IsPublished       bool
	// Order is the requested position; 0 appends.
	Order int
}

// LessonPayload is the create body sent to the remote store. Kind-specific
// fields are empty unless the kind uses them and are then left out of the
// JSON encoding.
type LessonPayload struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	LessonType        LessonType `json:"lesson_type"`
	Duration          int        `json:"duration"`
	IsFree            bool       `json:"is_free"`
	IsPublished       bool       `json:"is_published"`
	ExternalResources []string   `json:"external_resources"`
	Order             int        `json:"order"`
	MediaRef          string     `json:"media_ref,omitempty"`
	ExternalURL       string     `json:"external_url,omitempty"`
	Content           string     `json:"content,omitempty"`
}

// BuildContent turns the draft into the variant for its declared kind,
// dropping every field the kind does not use.
func BuildContent(d LessonDraft) (Content, error) {
	kind, err := ParseLessonType(d.Type)
	if err != nil {
		return nil, err
	}
	media := strings.TrimSpace(d.MediaRef)
	url := strings.TrimSpace(d.ExternalURL)

	switch kind {
	case LessonVideo:
		return VideoContent{MediaRef: media, ExternalURL: url, Duration: CoerceDuration(d.Duration)}, nil
	case LessonAudio:
		return AudioContent{MediaRef: media, ExternalURL: url, Duration: CoerceDuration(d.Duration)}, nil
	case LessonPDF:
		return PDFContent{MediaRef: media, ExternalURL: url}, nil
	case LessonText:
		return TextContent{Body: d.Body}, nil
	case LessonAssignment:
		return AssignmentContent{Body: d.Body}, nil
	default:
		return QuizContent{}, nil
	}
}

// BuildPayload validates the draft and produces the create payload. When the
// draft has no explicit order the lesson goes after the current
// currentLessonCount lessons of its module.
func BuildPayload(d LessonDraft, currentLessonCount int) (LessonPayload, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return LessonPayload{}, invalid("title", "title is required")
	}
	content, err := BuildContent(d)
	if err != nil {
		return LessonPayload{}, err
	}

	order := d.Order
	if order <= 0 {
		order = currentLessonCount + 1
	}

	p := LessonPayload{
		Title:             title,
		Description:       strings.TrimSpace(d.Description),
		IsFree:            d.IsFree,
		IsPublished:       d.IsPublished,
		ExternalResources: CleanResources(d.ExternalResources),
		Order:             order,
	}
	applyContent(&p, content)
	return p, nil
}

func applyContent(p *LessonPayload, c Content) {
	p.LessonType = c.Kind()
	p.Duration = DurationOf(c)
	switch v := c.(type) {
	case VideoContent:
		p.MediaRef, p.ExternalURL = v.MediaRef, v.ExternalURL
	case AudioContent:
		p.MediaRef, p.ExternalURL = v.MediaRef, v.ExternalURL
	case PDFContent:
		p.MediaRef, p.ExternalURL = v.MediaRef, v.ExternalURL
	case TextContent:
		p.Content = v.Body
	case AssignmentContent:
		p.Content = v.Body
	}
}

// CoerceDuration parses minutes from form input. Anything non-numeric or
// negative becomes 0; fractions are truncated.
func CoerceDuration(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// CleanResources trims entries and drops blanks. The result is never nil so
// it encodes as an empty JSON array.
func CleanResources(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// ContentFromPayload rebuilds the variant from persisted fields.
func ContentFromPayload(p LessonPayload) (Content, error) {
	return BuildContent(LessonDraft{
		Type:        string(p.LessonType),
		Duration:    strconv.Itoa(p.Duration),
		MediaRef:    p.MediaRef,
		ExternalURL: p.ExternalURL,
		Body:        p.Content,
	})
}

// LessonPatch is a partial lesson update. Nil fields are left alone. A
// non-nil Content replaces the kind and all kind-specific fields.
type LessonPatch struct {
	Title             *string
	Description       *string
	IsFree            *bool
	IsPublished       *bool
	ExternalResources []string
	Content           Content
}

// Fields is the update body sent to the remote store.
func (p LessonPatch) Fields() map[string]interface{} {
	out := map[string]interface{}{}
	if p.Title != nil {
		out["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		out["description"] = strings.TrimSpace(*p.Description)
	}
	if p.IsFree != nil {
		out["is_free"] = *p.IsFree
	}
	if p.IsPublished != nil {
		out["is_published"] = *p.IsPublished
	}
	if p.ExternalResources != nil {
		out["external_resources"] = CleanResources(p.ExternalResources)
	}
	if p.Content != nil {
		var cp LessonPayload
		applyContent(&cp, p.Content)
		out["lesson_type"] = cp.LessonType
		out["duration"] = cp.Duration
		if cp.MediaRef != "" {
			out["media_ref"] = cp.MediaRef
		}
		if cp.ExternalURL != "" {
			out["external_url"] = cp.ExternalURL
		}
		if cp.Content != "" {
			out["content"] = cp.Content
		}
	}
	return out
}

func (p LessonPatch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("title", "title cannot be blank")
	}
	return nil
}

func (p LessonPatch) apply(l *Lesson) {
	if p.Title != nil {
		l.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		l.Description = strings.TrimSpace(*p.Description)
	}
	if p.IsFree != nil {
		l.IsFree = *p.IsFree
	}
	if p.IsPublished != nil {
		l.IsPublished = *p.IsPublished
	}
	if p.ExternalResources != nil {
		l.ExternalResources = CleanResources(p.ExternalResources)
	}
	if p.Content != nil {
		l.Content = p.Content
	}
}

// restore puts back the fields of prior this patch set, leaving the rest of l
// as it is now.
func (p LessonPatch) restore(l *Lesson, prior Lesson) {
	if p.Title != nil {
		l.Title = prior.Title
	}
	if p.Description != nil {
		l.Description = prior.Description
	}
	if p.IsFree != nil {
		l.IsFree = prior.IsFree
	}
	if p.IsPublished != nil {
		l.IsPublished = prior.IsPublished
	}
	if p.ExternalResources != nil {
		l.ExternalResources = append([]string(nil), prior.ExternalResources...)
	}
	if p.Content != nil {
		l.Content = prior.Content
	}
}

// ModuleInput is the create body for a module.
type ModuleInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// ModulePatch is a partial module update.
type ModulePatch struct {
	Title       *string
	Description *string
	IsPublished *bool
}

func (p ModulePatch) Fields() map[string]interface{} {
	out := map[string]interface{}{}
	if p.Title != nil {
		out["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		out["description"] = strings.TrimSpace(*p.Description)
	}
	if p.IsPublished != nil {
		out["is_published"] = *p.IsPublished
	}
	return out
}

func (p ModulePatch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("title", "title cannot be blank")
	}
	return nil
}

func (p ModulePatch) apply(m *Module) {
	if p.Title != nil {
		m.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		m.Description = strings.TrimSpace(*p.Description)
	}
	if p.IsPublished != nil {
		m.IsPublished = *p.IsPublished
	}
}

func (p ModulePatch) restore(m *Module, prior Module) {
	if p.Title != nil {
		m.Title = prior.Title
	}
	if p.Description != nil {
		m.Description = prior.Description
	}
	if p.IsPublished != nil {
		m.IsPublished = prior.IsPublished
	}
}
