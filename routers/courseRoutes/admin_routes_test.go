package courseRoutes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mavton23/donza-sub001/config"
	"github.com/Mavton23/donza-sub001/database"
	"github.com/Mavton23/donza-sub001/middleware"
	"github.com/Mavton23/donza-sub001/models"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type lessonView struct {
	ID          uint
	Title       string `json:"title"`
	LessonType  string `json:"lesson_type"`
	Order       int    `json:"order"`
	Duration    int    `json:"duration"`
	MediaRef    string `json:"media_ref"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
}

type moduleView struct {
	ID          uint
	Title       string       `json:"title"`
	Order       int          `json:"order"`
	IsPublished bool         `json:"is_published"`
	Lessons     []lessonView `json:"lessons"`
}

type courseView struct {
	ID      uint
	Title   string       `json:"title"`
	Status  string       `json:"status"`
	Modules []moduleView `json:"modules"`
}

type testServer struct {
	app    *fiber.App
	admin  string
	author string
}

// newTestServer wires the course routes to a fresh sqlite file with one
// admin and one author account.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	config.AppConfig = &config.Config{
		LogMode:      "test",
		DBDriver:     "sqlite",
		DBName:       filepath.Join(dir, "courses.db"),
		JWTKey:       "test-secret",
		TokenTTL:     time.Hour,
		SaltRound:    4,
		MediaDir:     filepath.Join(dir, "media"),
		MediaBaseURL: "/media",
	}

	db, err := database.Open(config.AppConfig)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	admin := models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
	author := models.User{Name: "Writer", Email: "writer@example.com", Role: models.RoleAuthor}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&author).Error)

	adminToken, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	authorToken, err := middleware.GenerateJWT(author.ID, author.Name, author.Role, author.Email)
	require.NoError(t, err)

	app := fiber.New()
	SetupAdminCourseRoutes(app)
	return &testServer{app: app, admin: adminToken, author: authorToken}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (s *testServer) createCourse(t *testing.T, title string) uint {
	t.Helper()
	status, env := s.do(t, http.MethodPost, "/admin/course/create", s.admin, fiber.Map{"title": title})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var c courseView
	require.NoError(t, json.Unmarshal(env.Data, &c))
	return c.ID
}

func (s *testServer) createModule(t *testing.T, courseID uint, title string, order int) moduleView {
	t.Helper()
	status, env := s.do(t, http.MethodPost, fmt.Sprintf("/admin/course/%d/module", courseID), s.admin,
		fiber.Map{"title": title, "order": order})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var m moduleView
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

func (s *testServer) createLesson(t *testing.T, courseID, moduleID uint, body fiber.Map) lessonView {
	t.Helper()
	status, env := s.do(t, http.MethodPost, fmt.Sprintf("/admin/course/%d/module/%d/lesson", courseID, moduleID), s.admin, body)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var l lessonView
	require.NoError(t, json.Unmarshal(env.Data, &l))
	return l
}

func (s *testServer) details(t *testing.T, courseID uint) courseView {
	t.Helper()
	status, env := s.do(t, http.MethodGet, fmt.Sprintf("/admin/course/%d", courseID), s.admin, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var c courseView
	require.NoError(t, json.Unmarshal(env.Data, &c))
	return c
}

func moduleTitles(c courseView) []string {
	out := make([]string, len(c.Modules))
	for i, m := range c.Modules {
		out[i] = m.Title
	}
	return out
}

func moduleOrders(c courseView) []int {
	out := make([]int, len(c.Modules))
	for i, m := range c.Modules {
		out[i] = m.Order
	}
	return out
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	body := fiber.Map{"title": "Go"}

	status, _ := s.do(t, http.MethodPost, "/admin/course/create", "", body)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodPost, "/admin/course/create", "not-a-token", body)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := s.do(t, http.MethodPost, "/admin/course/create", s.author, body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, env.Status)

	status, env = s.do(t, http.MethodPost, "/admin/course/create", s.admin, body)
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Status)
}

func TestCourseDetailsOfNewCourse(t *testing.T) {
	s := newTestServer(t)
	id := s.createCourse(t, "Empty")

	c := s.details(t, id)
	assert.Equal(t, "Empty", c.Title)
	assert.Equal(t, "draft", c.Status)
	assert.NotNil(t, c.Modules)
	assert.Empty(t, c.Modules)

	status, _ := s.do(t, http.MethodGet, "/admin/course/9999", s.admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodGet, "/admin/course/abc", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestModuleOrderStaysContiguous(t *testing.T) {
	s := newTestServer(t)
	courseID := s.createCourse(t, "Go")

	s.createModule(t, courseID, "A", 0)
	s.createModule(t, courseID, "B", 0)
	s.createModule(t, courseID, "C", 0)
	d := s.createModule(t, courseID, "D", 2)
	assert.Equal(t, 2, d.Order)
	assert.NotNil(t, d.Lessons)

	c := s.details(t, courseID)
	assert.Equal(t, []string{"A", "D", "B", "C"}, moduleTitles(c))
	assert.Equal(t, []int{1, 2, 3, 4}, moduleOrders(c))

	status, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/admin/course/%d/module/%d", courseID, d.ID), s.admin, nil)
	require.Equal(t, http.StatusOK, status)

	c = s.details(t, courseID)
	assert.Equal(t, []string{"A", "B", "C"}, moduleTitles(c))
	assert.Equal(t, []int{1, 2, 3}, moduleOrders(c))
}

func TestReorderModule(t *testing.T) {
	s := newTestServer(t)
	courseID := s.createCourse(t, "Go")
	a := s.createModule(t, courseID, "A", 0)
	s.createModule(t, courseID, "B", 0)
	path := fmt.Sprintf("/admin/course/%d/module/%d/reorder", courseID, a.ID)

	status, env := s.do(t, http.MethodPost, path, s.admin, fiber.Map{"direction": "up"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Module is already at the edge, nothing moved.", env.Message)
	assert.Equal(t, []string{"A", "B"}, moduleTitles(s.details(t, courseID)))

	status, env = s.do(t, http.MethodPost, path, s.admin, fiber.Map{"direction": "down"})
	require.Equal(t, http.StatusOK, status)
	var moved moduleView
	require.NoError(t, json.Unmarshal(env.Data, &moved))
	assert.Equal(t, 2, moved.Order)

	c := s.details(t, courseID)
	assert.Equal(t, []string{"B", "A"}, moduleTitles(c))
	assert.Equal(t, []int{1, 2}, moduleOrders(c))

	status, env = s.do(t, http.MethodPost, path, s.admin, fiber.Map{"direction": "sideways"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(env.Data), "direction")
}

func TestLessonFieldsFollowLessonType(t *testing.T) {
	s := newTestServer(t)
	courseID := s.createCourse(t, "Go")
	m := s.createModule(t, courseID, "Basics", 0)

	video := s.createLesson(t, courseID, m.ID, fiber.Map{
		"title":       "Intro",
		"lesson_type": "video",
		"duration":    12,
		"media_ref":   "/media/intro.mp4",
		"content":     "not for video",
	})
	assert.Equal(t, 1, video.Order)
	assert.Equal(t, 12, video.Duration)
	assert.Equal(t, "/media/intro.mp4", video.MediaRef)
	assert.Empty(t, video.Content)

	path := fmt.Sprintf("/admin/course/%d/module/%d/lesson/%d", courseID, m.ID, video.ID)
	status, env := s.do(t, http.MethodPut, path, s.admin, fiber.Map{"lesson_type": "text", "content": "Read me"})
	require.Equal(t, http.StatusOK, status, env.Message)
	var text lessonView
	require.NoError(t, json.Unmarshal(env.Data, &text))
	assert.Equal(t, "text", text.LessonType)
	assert.Equal(t, "Read me", text.Content)
	assert.Empty(t, text.MediaRef)
	assert.Zero(t, text.Duration)

	// duration means nothing for text
	status, env = s.do(t, http.MethodPut, path, s.admin, fiber.Map{"duration": 30})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &text))
	assert.Zero(t, text.Duration)
	assert.Equal(t, "Read me", text.Content)

	status, env = s.do(t, http.MethodPut, path, s.admin, fiber.Map{"is_published": true})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &text))
	assert.True(t, text.IsPublished)
	assert.Equal(t, "Read me", text.Content)
}

func TestLessonOrderAndDelete(t *testing.T) {
	s := newTestServer(t)
	courseID := s.createCourse(t, "Go")
	m := s.createModule(t, courseID, "Basics", 0)

	first := s.createLesson(t, courseID, m.ID, fiber.Map{"title": "one", "lesson_type": "quiz"})
	s.createLesson(t, courseID, m.ID, fiber.Map{"title": "two", "lesson_type": "quiz"})
	front := s.createLesson(t, courseID, m.ID, fiber.Map{"title": "zero", "lesson_type": "quiz", "order": 1})
	assert.Equal(t, 1, front.Order)

	lessons := s.details(t, courseID).Modules[0].Lessons
	require.Len(t, lessons, 3)
	assert.Equal(t, "zero", lessons[0].Title)
	assert.Equal(t, "one", lessons[1].Title)
	assert.Equal(t, 2, lessons[1].Order)

	status, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/admin/course/%d/module/%d/lesson/%d", courseID, m.ID, first.ID), s.admin, nil)
	require.Equal(t, http.StatusOK, status)

	lessons = s.details(t, courseID).Modules[0].Lessons
	require.Len(t, lessons, 2)
	assert.Equal(t, "zero", lessons[0].Title)
	assert.Equal(t, "two", lessons[1].Title)
	assert.Equal(t, 2, lessons[1].Order)

	status, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/course/%d/module/%d/lesson/%d", courseID, m.ID, first.ID), s.admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLessonValidation(t *testing.T) {
	s := newTestServer(t)
	courseID := s.createCourse(t, "Go")
	m := s.createModule(t, courseID, "Basics", 0)
	path := fmt.Sprintf("/admin/course/%d/module/%d/lesson", courseID, m.ID)

	status, env := s.do(t, http.MethodPost, path, s.admin, fiber.Map{"title": "x", "lesson_type": "slides"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(env.Data), "lesson_type")

	status, env = s.do(t, http.MethodPost, path, s.admin, fiber.Map{"lesson_type": "text"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(env.Data), "title")

	status, _ = s.do(t, http.MethodPost, fmt.Sprintf("/admin/course/%d/module/%d/lesson", courseID, m.ID+100), s.admin,
		fiber.Map{"title": "x", "lesson_type": "text"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteCourseHidesIt(t *testing.T) {
	s := newTestServer(t)
	keep := s.createCourse(t, "Keep")
	drop := s.createCourse(t, "Drop")
	s.createModule(t, drop, "M", 0)

	status, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/admin/course/%d", drop), s.admin, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, fmt.Sprintf("/admin/course/%d", drop), s.admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env := s.do(t, http.MethodGet, "/admin/course/list", s.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Courses    []courseView `json:"courses"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Pagination.Total)
	require.Len(t, list.Courses, 1)
	assert.Equal(t, keep, list.Courses[0].ID)
}

func upload(t *testing.T, s *testServer, name string, content []byte) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/media", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.admin)
	return s.send(t, req)
}

func TestUploadMedia(t *testing.T) {
	s := newTestServer(t)

	status, env := upload(t, s, "notes.pdf", []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n%%EOF\n"))
	require.Equal(t, http.StatusCreated, status, env.Message)
	var out struct {
		Reference string `json:"reference"`
		Kind      string `json:"kind"`
		Duration  int    `json:"duration_estimate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "pdf", out.Kind)
	assert.Zero(t, out.Duration)
	assert.Contains(t, out.Reference, "/media/")

	stored, err := os.ReadDir(config.AppConfig.MediaDir)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	status, _ = upload(t, s, "notes.txt", []byte("just some text"))
	assert.Equal(t, http.StatusUnsupportedMediaType, status)

	stored, err = os.ReadDir(config.AppConfig.MediaDir)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
