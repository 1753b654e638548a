package authoring

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Mavton23/donza-sub001/authoring/ordering"
)

// fakeRemote is an in-memory RemoteSync. failAt makes the n-th call (1-based)
// of an operation fail with a server error.
type fakeRemote struct {
	mu       sync.Mutex
	nextID   uint
	course   Course
	calls    map[string]int
	failAt   map[string]int
	payloads []LessonPayload
	patches  []LessonPatch
	modPatch []ModulePatch
}

func newFakeRemote(courseID uint) *fakeRemote {
	return &fakeRemote{
		nextID: 100,
		course: Course{ID: courseID, Title: "Course", Status: CourseDraft},
		calls:  map[string]int{},
		failAt: map[string]int{},
	}
}

func (f *fakeRemote) hit(op string) error {
	f.calls[op]++
	if n, ok := f.failAt[op]; ok && n == f.calls[op] {
		return NewRemoteError(op, http.StatusInternalServerError, "boom", nil)
	}
	return nil
}

func (f *fakeRemote) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRemote) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRemote) FetchCourse(ctx context.Context, courseID uint) (Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("fetch_course"); err != nil {
		return Course{}, err
	}
	if courseID != f.course.ID {
		return Course{}, &NotFoundError{Kind: EntityCourse, ID: courseID}
	}
	return f.course.clone(), nil
}

func (f *fakeRemote) CreateModule(ctx context.Context, courseID uint, in ModuleInput) (Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("create_module"); err != nil {
		return Module{}, err
	}
	m := Module{ID: f.id(), CourseID: courseID, Title: in.Title, Description: in.Description, Order: in.Order, CreatedAt: time.Now()}
	f.course.Modules = append(f.course.Modules, m)
	return m, nil
}

func (f *fakeRemote) UpdateModule(ctx context.Context, courseID, moduleID uint, patch ModulePatch) (Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modPatch = append(f.modPatch, patch)
	if err := f.hit("update_module"); err != nil {
		return Module{}, err
	}
	i := f.course.moduleIndex(moduleID)
	if i < 0 {
		return Module{}, NewRemoteError("update module", http.StatusNotFound, "Module not found!", nil)
	}
	patch.apply(&f.course.Modules[i])
	f.course.Modules[i].UpdatedAt = time.Now()
	return f.course.Modules[i].clone(), nil
}

func (f *fakeRemote) DeleteModule(ctx context.Context, courseID, moduleID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("delete_module"); err != nil {
		return err
	}
	f.course.removeModule(moduleID)
	return nil
}

func (f *fakeRemote) ReorderModule(ctx context.Context, courseID, moduleID uint, dir ordering.Direction) (Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("reorder_module"); err != nil {
		return Module{}, err
	}
	sibs, _ := ordering.Move(f.course.moduleSiblings(), moduleID, dir)
	f.course.arrangeModules(sibs)
	return f.course.Modules[f.course.moduleIndex(moduleID)].clone(), nil
}

func (f *fakeRemote) CreateLesson(ctx context.Context, courseID, moduleID uint, payload LessonPayload) (Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	if err := f.hit("create_lesson"); err != nil {
		return Lesson{}, err
	}
	content, err := ContentFromPayload(payload)
	if err != nil {
		return Lesson{}, err
	}
	l := Lesson{
		ID:                f.id(),
		ModuleID:          moduleID,
		Title:             payload.Title,
		Description:       payload.Description,
		Order:             payload.Order,
		IsFree:            payload.IsFree,
		IsPublished:       payload.IsPublished,
		Content:           content,
		ExternalResources: payload.ExternalResources,
		CreatedAt:         time.Now(),
	}
	if i := f.course.moduleIndex(moduleID); i >= 0 {
		f.course.Modules[i].insertLesson(l)
	}
	return l, nil
}

func (f *fakeRemote) UpdateLesson(ctx context.Context, courseID, moduleID, lessonID uint, patch LessonPatch) (Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	if err := f.hit("update_lesson"); err != nil {
		return Lesson{}, err
	}
	i, j := f.course.lessonIndex(lessonID)
	if i < 0 {
		return Lesson{}, NewRemoteError("update lesson", http.StatusNotFound, "Lesson not found!", nil)
	}
	patch.apply(&f.course.Modules[i].Lessons[j])
	f.course.Modules[i].Lessons[j].UpdatedAt = time.Now()
	return f.course.Modules[i].Lessons[j].clone(), nil
}

func (f *fakeRemote) DeleteLesson(ctx context.Context, courseID, moduleID, lessonID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("delete_lesson"); err != nil {
		return err
	}
	if i := f.course.moduleIndex(moduleID); i >= 0 {
		m := &f.course.Modules[i]
		m.arrangeLessons(ordering.Remove(m.lessonSiblings(), lessonID))
	}
	return nil
}

func (f *fakeRemote) ReorderLesson(ctx context.Context, courseID, moduleID, lessonID uint, dir ordering.Direction) (Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("reorder_lesson"); err != nil {
		return Lesson{}, err
	}
	i := f.course.moduleIndex(moduleID)
	if i < 0 {
		return Lesson{}, NewRemoteError("reorder lesson", http.StatusNotFound, "", nil)
	}
	m := &f.course.Modules[i]
	sibs, _ := ordering.Move(m.lessonSiblings(), lessonID, dir)
	m.arrangeLessons(sibs)
	l := m.Lessons[m.lessonIndex(lessonID)]
	l.UpdatedAt = time.Now()
	return l.clone(), nil
}
