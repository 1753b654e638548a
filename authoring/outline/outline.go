// Package outline imports a course structure written as YAML into a
// ContentTree.
//
//	course_id: 12
//	author: {id: 3, name: Ana}
//	modules:
//	  - title: Basics
//	    lessons:
//	      - title: Welcome
//	        type: video
//	        duration: "4"
//	        media_ref: /media/welcome.mp4
package outline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Mavton23/donza-sub001/authoring"
)

type Outline struct {
	CourseID uint            `yaml:"course_id"`
	Author   AuthorOutline   `yaml:"author"`
	Modules  []ModuleOutline `yaml:"modules"`
}

type AuthorOutline struct {
	ID   uint   `yaml:"id"`
	Name string `yaml:"name"`
}

type ModuleOutline struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Lessons     []LessonOutline `yaml:"lessons"`
}

type LessonOutline struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	Duration    string   `yaml:"duration"`
	MediaRef    string   `yaml:"media_ref"`
	ExternalURL string   `yaml:"external_url"`
	Body        string   `yaml:"body"`
	Resources   []string `yaml:"resources"`
	Free        bool     `yaml:"free"`
	Published   bool     `yaml:"published"`
}

// Parse decodes and checks an outline. Every problem is reported with its
// position, not only the first.
func Parse(r io.Reader) (Outline, error) {
	var o Outline
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		if errors.Is(err, io.EOF) {
			return Outline{}, errors.New("outline is empty")
		}
		return Outline{}, fmt.Errorf("decode outline: %w", err)
	}
	return o, o.Validate()
}

func (o Outline) Validate() error {
	var problems []string
	if o.CourseID == 0 {
		problems = append(problems, "course_id is required")
	}
	for i, m := range o.Modules {
		if strings.TrimSpace(m.Title) == "" {
			problems = append(problems, fmt.Sprintf("modules[%d]: title is required", i))
		}
		for j, l := range m.Lessons {
			if strings.TrimSpace(l.Title) == "" {
				problems = append(problems, fmt.Sprintf("modules[%d].lessons[%d]: title is required", i, j))
			}
			if _, err := authoring.ParseLessonType(l.Type); err != nil {
				problems = append(problems, fmt.Sprintf("modules[%d].lessons[%d]: %v", i, j, err))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid outline: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Session is the authoring session an import runs as.
func (o Outline) Session() authoring.Session {
	return authoring.Session{
		CourseID: o.CourseID,
		Author:   authoring.Author{ID: o.Author.ID, Name: o.Author.Name},
	}
}

func (o Outline) LessonCount() int {
	n := 0
	for _, m := range o.Modules {
		n += len(m.Lessons)
	}
	return n
}

func (l LessonOutline) draft(moduleID uint) authoring.LessonDraft {
	return authoring.LessonDraft{
		ModuleID:          moduleID,
		Title:             l.Title,
		Description:       l.Description,
		Type:              l.Type,
		Duration:          l.Duration,
		MediaRef:          l.MediaRef,
		ExternalURL:       l.ExternalURL,
		Body:              l.Body,
		ExternalResources: l.Resources,
		IsFree:            l.Free,
		IsPublished:       l.Published,
	}
}

// Report is what an import did.
type Report struct {
	ModulesCreated int
	ModulesReused  int
	Lessons        []authoring.Lesson
}

// Import creates the outline's modules that the course does not have yet
// (matched by title, ignoring case) and then submits every lesson through
// one batch, in outline order. A failing lesson stops the import; the
// returned error is then a *authoring.PartialBatchError and the queue still
// holds the lessons that were not sent.
func Import(ctx context.Context, tree *authoring.ContentTree, queue *authoring.BatchQueue, o Outline) (Report, error) {
	var rep Report

	existing := map[string]uint{}
	for _, m := range tree.Snapshot().Modules {
		existing[key(m.Title)] = m.ID
	}

	for _, mo := range o.Modules {
		id, ok := existing[key(mo.Title)]
		if ok {
			rep.ModulesReused++
		} else {
			m, err := tree.AddModule(ctx, mo.Title, mo.Description)
			if err != nil {
				return rep, fmt.Errorf("create module %q: %w", mo.Title, err)
			}
			id = m.ID
			existing[key(mo.Title)] = id
			rep.ModulesCreated++
		}

		for _, lo := range mo.Lessons {
			if _, err := queue.Enqueue(lo.draft(id)); err != nil {
				return rep, fmt.Errorf("stage lesson %q: %w", lo.Title, err)
			}
		}
	}

	res, err := queue.SubmitAll(ctx)
	rep.Lessons = res.Created
	return rep, err
}

func key(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
