package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveUploadedFile copies the upload into destDir under a fresh unique name
// and returns that name and the full path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext
	filePath := filepath.Join(destDir, name)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", "", err
	}

	return name, filePath, nil
}

// GetFileURL joins the public media prefix and a stored file name.
func GetFileURL(baseURL, name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + name
}
