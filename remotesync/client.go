// Package remotesync talks to the course content API over HTTP and
// implements authoring.RemoteSync.
package remotesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Mavton23/donza-sub001/authoring"
	"github.com/Mavton23/donza-sub001/authoring/ordering"
	"github.com/Mavton23/donza-sub001/config"
	"github.com/Mavton23/donza-sub001/logger"
)

const defaultTimeout = 15 * time.Second

type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *logger.Logger
}

// Client is a RemoteSync backed by the admin course API. It never retries.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

var _ authoring.RemoteSync = (*Client)(nil)

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	h := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")
	if opts.Token != "" {
		h.SetAuthToken(opts.Token)
	}
	return &Client{http: h, log: opts.Logger}
}

// NewFromConfig builds a client from REMOTE_BASE_URL, REMOTE_TOKEN and
// REMOTE_TIMEOUT.
func NewFromConfig(cfg *config.Config, log *logger.Logger) *Client {
	return New(Options{
		BaseURL: cfg.RemoteBaseURL,
		Token:   cfg.RemoteToken,
		Timeout: cfg.RemoteTimeout,
		Logger:  log,
	})
}

func (c *Client) FetchCourse(ctx context.Context, courseID uint) (authoring.Course, error) {
	var w courseWire
	err := c.do(ctx, "fetch course", http.MethodGet, fmt.Sprintf("/admin/course/%d", courseID), nil, &w)
	if err != nil {
		var re *authoring.RemoteError
		if errors.As(err, &re) && re.Status == http.StatusNotFound {
			return authoring.Course{}, &authoring.NotFoundError{Kind: authoring.EntityCourse, ID: courseID}
		}
		return authoring.Course{}, err
	}
	return decode("fetch course", w.course)
}

func (c *Client) CreateModule(ctx context.Context, courseID uint, in authoring.ModuleInput) (authoring.Module, error) {
	var w moduleWire
	if err := c.do(ctx, "create module", http.MethodPost, fmt.Sprintf("/admin/course/%d/module", courseID), in, &w); err != nil {
		return authoring.Module{}, err
	}
	return decode("create module", w.module)
}

func (c *Client) UpdateModule(ctx context.Context, courseID, moduleID uint, patch authoring.ModulePatch) (authoring.Module, error) {
	var w moduleWire
	if err := c.do(ctx, "update module", http.MethodPut, modulePath(courseID, moduleID), patch.Fields(), &w); err != nil {
		return authoring.Module{}, err
	}
	return decode("update module", w.module)
}

func (c *Client) DeleteModule(ctx context.Context, courseID, moduleID uint) error {
	return c.do(ctx, "delete module", http.MethodDelete, modulePath(courseID, moduleID), nil, nil)
}

func (c *Client) ReorderModule(ctx context.Context, courseID, moduleID uint, dir ordering.Direction) (authoring.Module, error) {
	var w moduleWire
	body := reorderBody{Direction: string(dir)}
	if err := c.do(ctx, "reorder module", http.MethodPost, modulePath(courseID, moduleID)+"/reorder", body, &w); err != nil {
		return authoring.Module{}, err
	}
	return decode("reorder module", w.module)
}

func (c *Client) CreateLesson(ctx context.Context, courseID, moduleID uint, payload authoring.LessonPayload) (authoring.Lesson, error) {
	var w lessonWire
	if err := c.do(ctx, "create lesson", http.MethodPost, modulePath(courseID, moduleID)+"/lesson", payload, &w); err != nil {
		return authoring.Lesson{}, err
	}
	return decode("create lesson", w.lesson)
}

func (c *Client) UpdateLesson(ctx context.Context, courseID, moduleID, lessonID uint, patch authoring.LessonPatch) (authoring.Lesson, error) {
	var w lessonWire
	if err := c.do(ctx, "update lesson", http.MethodPut, lessonPath(courseID, moduleID, lessonID), patch.Fields(), &w); err != nil {
		return authoring.Lesson{}, err
	}
	return decode("update lesson", w.lesson)
}

func (c *Client) DeleteLesson(ctx context.Context, courseID, moduleID, lessonID uint) error {
	return c.do(ctx, "delete lesson", http.MethodDelete, lessonPath(courseID, moduleID, lessonID), nil, nil)
}

func (c *Client) ReorderLesson(ctx context.Context, courseID, moduleID, lessonID uint, dir ordering.Direction) (authoring.Lesson, error) {
	var w lessonWire
	body := reorderBody{Direction: string(dir)}
	if err := c.do(ctx, "reorder lesson", http.MethodPost, lessonPath(courseID, moduleID, lessonID)+"/reorder", body, &w); err != nil {
		return authoring.Lesson{}, err
	}
	return decode("reorder lesson", w.lesson)
}

// do sends one request and unpacks the envelope's data into out. Any
// non-2xx answer, or a 2xx with status=false, is a RemoteError carrying the
// server's message.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Warn("remote request failed", "op", op, "path", path, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return authoring.NewRemoteError(op, 0, "", ctxErr)
		}
		return authoring.NewRemoteError(op, 0, "", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		c.log.Warn("remote request rejected", "op", op, "path", path, "status", resp.StatusCode(), "message", env.Message)
		return authoring.NewRemoteError(op, resp.StatusCode(), env.Message, nil)
	}
	if decodeErr != nil {
		return authoring.NewRemoteError(op, resp.StatusCode(), "malformed response", decodeErr)
	}
	if !env.Status {
		return authoring.NewRemoteError(op, resp.StatusCode(), env.Message, nil)
	}

	c.log.Debug("remote request ok", "op", op, "path", path, "status", resp.StatusCode())
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return authoring.NewRemoteError(op, resp.StatusCode(), "malformed response data", err)
	}
	return nil
}

// decode converts a wire value, reporting unreadable server data as a
// RemoteError for op.
func decode[T any](op string, convert func() (T, error)) (T, error) {
	v, err := convert()
	if err != nil {
		var zero T
		return zero, authoring.NewRemoteError(op, http.StatusOK, "unreadable server data", err)
	}
	return v, nil
}

func modulePath(courseID, moduleID uint) string {
	return fmt.Sprintf("/admin/course/%d/module/%d", courseID, moduleID)
}

func lessonPath(courseID, moduleID, lessonID uint) string {
	return fmt.Sprintf("/admin/course/%d/module/%d/lesson/%d", courseID, moduleID, lessonID)
}
