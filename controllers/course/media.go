package controllers

import (
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/Mavton23/donza-sub001/authoring"
	"github.com/Mavton23/donza-sub001/config"
	"github.com/Mavton23/donza-sub001/logger"
	"github.com/Mavton23/donza-sub001/middleware"
	"github.com/Mavton23/donza-sub001/utils"
)

const maxMediaSize = 512 << 20

// Nominal bitrates, in bits per second, used to guess a duration from the
// file size.
const (
	videoBitrate = 1_000_000
	audioBitrate = 128_000
)

// MediaKind maps a detected MIME type to the lesson type that can carry
// it. Anything else is not accepted as lesson media.
func MediaKind(mime *mimetype.MIME) (authoring.LessonType, bool) {
	for m := mime; m != nil; m = m.Parent() {
		switch {
		case m.Is("application/pdf"):
			return authoring.LessonPDF, true
		case strings.HasPrefix(m.String(), "video/"):
			return authoring.LessonVideo, true
		case strings.HasPrefix(m.String(), "audio/"):
			return authoring.LessonAudio, true
		}
	}
	return "", false
}

// EstimateDuration guesses whole minutes of playback from the size. It is
// only a hint for the authoring form; non-timed kinds get 0.
func EstimateDuration(kind authoring.LessonType, size int64) int {
	var bitrate int64
	switch kind {
	case authoring.LessonVideo:
		bitrate = videoBitrate
	case authoring.LessonAudio:
		bitrate = audioBitrate
	default:
		return 0
	}
	seconds := size * 8 / bitrate
	return int(seconds / 60)
}

// AdminUploadMedia stores a video, audio or pdf file and returns the
// reference lessons point at.
func AdminUploadMedia(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"file": "File is required!"})
	}
	if file.Size <= 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"file": "File is empty!"})
	}
	if file.Size > maxMediaSize {
		return middleware.JsonResponse(c, fiber.StatusRequestEntityTooLarge, false, "File is too large!", nil)
	}

	cfg := config.AppConfig
	name, path, err := utils.SaveUploadedFile(file, cfg.MediaDir)
	if err != nil {
		logger.L().Error("failed to store upload", "file", file.Filename, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		os.Remove(path)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read file!", nil)
	}
	kind, ok := MediaKind(mime)
	if !ok {
		os.Remove(path)
		return middleware.JsonResponse(c, fiber.StatusUnsupportedMediaType, false, "Only video, audio and pdf files are accepted!", fiber.Map{
			"mime": mime.String(),
		})
	}

	logger.L().Info("media stored", "name", name, "mime", mime.String(), "size", file.Size)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", fiber.Map{
		"reference":         utils.GetFileURL(cfg.MediaBaseURL, name),
		"mime":              mime.String(),
		"kind":              kind,
		"duration_estimate": EstimateDuration(kind, file.Size),
	})
}
