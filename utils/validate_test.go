package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Title  string `json:"title" validate:"required,max=5"`
	Kind   string `json:"lesson_type" validate:"omitempty,oneof=video text"`
	Count  int    `json:"count" validate:"min=1"`
	Link   string `json:"link" validate:"omitempty,url"`
	Secret string `json:"-" validate:"max=3"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Title: "far too long", Kind: "slides", Link: "nope"})

	assert.Equal(t, map[string]string{
		"title":       "title must be at most 5 characters long!",
		"lesson_type": "lesson_type must be one of: video, text",
		"count":       "count must be at least 1!",
		"link":        "link must be a valid URL!",
	}, errs)
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Title: "ok", Count: 2})
	assert.Empty(t, errs)

	errs = ValidateStruct(&sampleRequest{Count: 1})
	assert.Equal(t, "title is required!", errs["title"])
}
