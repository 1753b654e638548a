package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFileURL(t *testing.T) {
	assert.Equal(t, "/media/a.pdf", GetFileURL("/media/", "a.pdf"))
	assert.Equal(t, "/media/a.pdf", GetFileURL("/media", "a.pdf"))
	assert.Equal(t, "", GetFileURL("/media", ""))
}
