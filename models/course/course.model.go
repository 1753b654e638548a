package course

import "gorm.io/gorm"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Course is the root of the content tree
type Course struct {
	gorm.Model
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Author       string   `json:"author"`
	Status       string   `json:"status" gorm:"default:'draft'"` // draft, published, archived
	ThumbnailURL string   `json:"thumbnail_url"`
	Modules      []Module `json:"modules" gorm:"foreignKey:CourseID"`
	IsDeleted    bool     `gorm:"default:false"`
}
