package authoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mavton23/donza-sub001/authoring/ordering"
	"github.com/Mavton23/donza-sub001/logger"
)

// ContentTree is the aggregate root of one course being authored.
//
// The mutex only guards local state. It is released while a RemoteSync call
// is in flight, so an operation issued meanwhile sees the optimistic state
// and the remote store settles overlapping edits last-write-wins.
type ContentTree struct {
	session         Session
	remote          RemoteSync
	publisher       publishStateMachine
	log             *logger.Logger
	revertOnFailure bool
	now             func() time.Time

	mu     sync.Mutex
	course Course
	ledger []*Mutation
}

type Option func(*ContentTree)

func WithLogger(l *logger.Logger) Option {
	return func(t *ContentTree) {
		if l != nil {
			t.log = l
		}
	}
}

// WithRevertOnFailure undoes the optimistic local change of any mutation
// the remote store rejects. Without it failed mutations stay applied until
// the caller calls Revert.
func WithRevertOnFailure() Option {
	return func(t *ContentTree) { t.revertOnFailure = true }
}

// NewContentTree wraps a course that already exists remotely. Orders are
// repaired to 1..N on the way in.
func NewContentTree(session Session, course Course, remote RemoteSync, opts ...Option) *ContentTree {
	t := &ContentTree{
		session:   session,
		remote:    remote,
		publisher: publishStateMachine{remote: remote},
		log:       logger.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With("course_id", session.CourseID, "author_id", session.Author.ID)
	course.ID = session.CourseID
	t.course = normalizeCourse(course.clone())
	return t
}

// OpenContentTree fetches the course from the remote store.
func OpenContentTree(ctx context.Context, session Session, remote RemoteSync, opts ...Option) (*ContentTree, error) {
	t := NewContentTree(session, Course{}, remote, opts...)
	if err := t.Load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Load replaces the local tree with the remote one. Pending ledger entries
// are kept.
func (t *ContentTree) Load(ctx context.Context) error {
	course, err := t.remote.FetchCourse(ctx, t.session.CourseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return asRemote("fetch course", err)
	}
	course.ID = t.session.CourseID

	t.mu.Lock()
	t.course = normalizeCourse(course.clone())
	t.mu.Unlock()

	t.log.Info("course loaded", "modules", len(course.Modules), "lessons", course.LessonCount())
	return nil
}

func (t *ContentTree) Session() Session { return t.session }

// Snapshot is a deep copy of the current, possibly optimistic, state.
func (t *ContentTree) Snapshot() Course {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.course.clone()
}

func (t *ContentTree) Module(id uint) (Module, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	mi := t.course.moduleIndex(id)
	if mi < 0 {
		return Module{}, &NotFoundError{Kind: EntityModule, ID: id}
	}
	return t.course.Modules[mi].clone(), nil
}

func (t *ContentTree) Lesson(id uint) (Lesson, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	mi, li := t.course.lessonIndex(id)
	if mi < 0 {
		return Lesson{}, &NotFoundError{Kind: EntityLesson, ID: id}
	}
	return t.course.Modules[mi].Lessons[li].clone(), nil
}

// ModuleViews derives the publish view of every module, in order.
func (t *ContentTree) ModuleViews() []ModuleView {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ModuleView, len(t.course.Modules))
	for i, m := range t.course.Modules {
		out[i] = ViewOf(m)
	}
	return out
}

// AddModule creates a module at the end of the course.
func (t *ContentTree) AddModule(ctx context.Context, title, description string) (Module, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Module{}, invalid("title", "module title is required")
	}

	t.mu.Lock()
	order := ordering.NextOrder(t.course.moduleSiblings())
	mut := t.begin(MutationAddModule, EntityModule, 0, nil)
	t.mu.Unlock()

	created, err := t.remote.CreateModule(ctx, t.session.CourseID, ModuleInput{
		Title:       title,
		Description: strings.TrimSpace(description),
		Order:       order,
	})
	if err != nil {
		return Module{}, t.fail(mut, asRemote("create module", err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	created.CourseID = t.session.CourseID
	created.Lessons = nil
	if created.Order <= 0 {
		created.Order = order
	}
	t.course.insertModule(created)
	mut.EntityID = created.ID
	t.confirm(mut)

	t.log.Info("module created", "module_id", created.ID, "order", created.Order)
	m := t.course.Modules[t.course.moduleIndex(created.ID)]
	return m.clone(), nil
}

// UpdateModule applies title/description/publish changes optimistically.
func (t *ContentTree) UpdateModule(ctx context.Context, moduleID uint, patch ModulePatch) (Module, error) {
	if err := patch.validate(); err != nil {
		return Module{}, err
	}

	t.mu.Lock()
	mi := t.course.moduleIndex(moduleID)
	if mi < 0 {
		t.mu.Unlock()
		return Module{}, &NotFoundError{Kind: EntityModule, ID: moduleID}
	}
	prior := t.course.Modules[mi]
	patch.apply(&t.course.Modules[mi])
	mut := t.begin(MutationUpdateModule, EntityModule, moduleID, func(c *Course) {
		if i := c.moduleIndex(moduleID); i >= 0 {
			patch.restore(&c.Modules[i], prior)
		}
	})
	t.mu.Unlock()

	updated, err := t.remote.UpdateModule(ctx, t.session.CourseID, moduleID, patch)
	if err != nil {
		return Module{}, t.fail(mut, asRemote("update module", err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.confirm(mut)
	if i := t.course.moduleIndex(moduleID); i >= 0 {
		mergeModule(&t.course.Modules[i], updated)
		return t.course.Modules[i].clone(), nil
	}
	return updated, nil
}

// DeleteModule removes a module and its lessons, renumbering the remaining
// modules locally.
func (t *ContentTree) DeleteModule(ctx context.Context, moduleID uint) error {
	t.mu.Lock()
	mi := t.course.moduleIndex(moduleID)
	if mi < 0 {
		t.mu.Unlock()
		return &NotFoundError{Kind: EntityModule, ID: moduleID}
	}
	removed := t.course.Modules[mi].clone()
	t.course.removeModule(moduleID)
	mut := t.begin(MutationDeleteModule, EntityModule, moduleID, func(c *Course) {
		if c.moduleIndex(removed.ID) < 0 {
			c.insertModule(removed)
		}
	})
	t.mu.Unlock()

	if err := t.remote.DeleteModule(ctx, t.session.CourseID, moduleID); err != nil {
		return t.fail(mut, asRemote("delete module", err))
	}

	t.mu.Lock()
	t.confirm(mut)
	t.mu.Unlock()
	t.log.Info("module deleted", "module_id", moduleID, "lessons", len(removed.Lessons))
	return nil
}

// MoveModule swaps a module with its neighbour. A module already at the
// boundary is left alone and no remote call is made.
func (t *ContentTree) MoveModule(ctx context.Context, moduleID uint, dir ordering.Direction) (ordering.Outcome, error) {
	t.mu.Lock()
	sibs, outcome := ordering.Move(t.course.moduleSiblings(), moduleID, dir)
	switch outcome {
	case ordering.Missing:
		t.mu.Unlock()
		return outcome, &NotFoundError{Kind: EntityModule, ID: moduleID}
	case ordering.AtBoundary:
		t.mu.Unlock()
		return outcome, nil
	}
	t.course.arrangeModules(sibs)
	mut := t.begin(MutationMoveModule, EntityModule, moduleID, func(c *Course) {
		back, moved := ordering.Move(c.moduleSiblings(), moduleID, opposite(dir))
		if moved == ordering.Moved {
			c.arrangeModules(back)
		}
	})
	t.mu.Unlock()

	if _, err := t.remote.ReorderModule(ctx, t.session.CourseID, moduleID, dir); err != nil {
		return outcome, t.fail(mut, asRemote("reorder module", err))
	}

	t.mu.Lock()
	t.confirm(mut)
	t.mu.Unlock()
	return outcome, nil
}

// AddLesson builds the payload from the draft, creates the lesson and
// inserts the confirmed lesson into its module.
func (t *ContentTree) AddLesson(ctx context.Context, moduleID uint, draft LessonDraft) (Lesson, error) {
	draft.ModuleID = moduleID

	t.mu.Lock()
	mi := t.course.moduleIndex(moduleID)
	if mi < 0 {
		t.mu.Unlock()
		return Lesson{}, &NotFoundError{Kind: EntityModule, ID: moduleID}
	}
	payload, err := BuildPayload(draft, len(t.course.Modules[mi].Lessons))
	if err != nil {
		t.mu.Unlock()
		return Lesson{}, err
	}
	mut := t.begin(MutationAddLesson, EntityLesson, 0, nil)
	t.mu.Unlock()

	created, err := t.remote.CreateLesson(ctx, t.session.CourseID, moduleID, payload)
	if err != nil {
		return Lesson{}, t.fail(mut, asRemote("create lesson", err))
	}

	created.ModuleID = moduleID
	if created.Order <= 0 {
		created.Order = payload.Order
	}
	if created.Content == nil {
		if content, cerr := ContentFromPayload(payload); cerr == nil {
			created.Content = content
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	mut.EntityID = created.ID
	t.confirm(mut)

	mi = t.course.moduleIndex(moduleID)
	if mi < 0 {
		t.log.Warn("lesson created for a module no longer in the tree", "module_id", moduleID, "lesson_id", created.ID)
		return created.clone(), nil
	}
	m := &t.course.Modules[mi]
	m.insertLesson(created)
	t.log.Info("lesson created", "module_id", moduleID, "lesson_id", created.ID, "order", created.Order, "lesson_type", created.Type())
	return m.Lessons[m.lessonIndex(created.ID)].clone(), nil
}

// UpdateLesson applies the patch locally, then remotely.
func (t *ContentTree) UpdateLesson(ctx context.Context, lessonID uint, patch LessonPatch) (Lesson, error) {
	if err := patch.validate(); err != nil {
		return Lesson{}, err
	}

	t.mu.Lock()
	mi, li := t.course.lessonIndex(lessonID)
	if mi < 0 {
		t.mu.Unlock()
		return Lesson{}, &NotFoundError{Kind: EntityLesson, ID: lessonID}
	}
	prior := t.course.Modules[mi].Lessons[li].clone()
	patch.apply(&t.course.Modules[mi].Lessons[li])
	mut := t.begin(MutationUpdateLesson, EntityLesson, lessonID, func(c *Course) {
		if i, j := c.lessonIndex(lessonID); i >= 0 {
			patch.restore(&c.Modules[i].Lessons[j], prior)
		}
	})
	t.mu.Unlock()

	updated, err := t.remote.UpdateLesson(ctx, t.session.CourseID, prior.ModuleID, lessonID, patch)
	if err != nil {
		return Lesson{}, t.fail(mut, asRemote("update lesson", err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.confirm(mut)
	if i, j := t.course.lessonIndex(lessonID); i >= 0 {
		mergeLesson(&t.course.Modules[i].Lessons[j], updated)
		return t.course.Modules[i].Lessons[j].clone(), nil
	}
	return updated, nil
}

// DeleteLesson removes the lesson and renumbers its siblings. Renumbering is
// local only; no further remote calls are made for it.
func (t *ContentTree) DeleteLesson(ctx context.Context, lessonID uint) error {
	t.mu.Lock()
	mi, li := t.course.lessonIndex(lessonID)
	if mi < 0 {
		t.mu.Unlock()
		return &NotFoundError{Kind: EntityLesson, ID: lessonID}
	}
	m := &t.course.Modules[mi]
	removed := m.Lessons[li].clone()
	m.arrangeLessons(ordering.Remove(m.lessonSiblings(), lessonID))
	mut := t.begin(MutationDeleteLesson, EntityLesson, lessonID, func(c *Course) {
		i := c.moduleIndex(removed.ModuleID)
		if i < 0 || c.Modules[i].lessonIndex(removed.ID) >= 0 {
			return
		}
		c.Modules[i].insertLesson(removed)
	})
	t.mu.Unlock()

	if err := t.remote.DeleteLesson(ctx, t.session.CourseID, removed.ModuleID, lessonID); err != nil {
		return t.fail(mut, asRemote("delete lesson", err))
	}

	t.mu.Lock()
	t.confirm(mut)
	t.mu.Unlock()
	t.log.Info("lesson deleted", "module_id", removed.ModuleID, "lesson_id", lessonID)
	return nil
}

// MoveLesson swaps a lesson with its neighbour and mirrors the move
// remotely. At the boundary nothing happens and AtBoundary is returned
// without error.
func (t *ContentTree) MoveLesson(ctx context.Context, lessonID uint, dir ordering.Direction) (ordering.Outcome, error) {
	t.mu.Lock()
	mi, _ := t.course.lessonIndex(lessonID)
	if mi < 0 {
		t.mu.Unlock()
		return ordering.Missing, &NotFoundError{Kind: EntityLesson, ID: lessonID}
	}
	m := &t.course.Modules[mi]
	moduleID := m.ID
	sibs, outcome := ordering.Move(m.lessonSiblings(), lessonID, dir)
	if outcome != ordering.Moved {
		t.mu.Unlock()
		return outcome, nil
	}
	m.arrangeLessons(sibs)
	mut := t.begin(MutationMoveLesson, EntityLesson, lessonID, func(c *Course) {
		i, _ := c.lessonIndex(lessonID)
		if i < 0 {
			return
		}
		back, moved := ordering.Move(c.Modules[i].lessonSiblings(), lessonID, opposite(dir))
		if moved == ordering.Moved {
			c.Modules[i].arrangeLessons(back)
		}
	})
	t.mu.Unlock()

	updated, err := t.remote.ReorderLesson(ctx, t.session.CourseID, moduleID, lessonID, dir)
	if err != nil {
		return outcome, t.fail(mut, asRemote("reorder lesson", err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.confirm(mut)
	if i, j := t.course.lessonIndex(lessonID); i >= 0 && !updated.UpdatedAt.IsZero() {
		t.course.Modules[i].Lessons[j].UpdatedAt = updated.UpdatedAt
	}
	return outcome, nil
}

// TogglePublish flips the publish flag of a module or lesson. Module toggles
// never touch lesson flags. When the remote store rejects the toggle the
// entity goes back to its prior flag before the error is returned.
func (t *ContentTree) TogglePublish(ctx context.Context, kind EntityKind, id uint) (PublishState, error) {
	switch kind {
	case EntityModule:
		return t.toggleModule(ctx, id)
	case EntityLesson:
		return t.toggleLesson(ctx, id)
	}
	return "", invalid("entity", "only modules and lessons can be published")
}

func (t *ContentTree) toggleModule(ctx context.Context, id uint) (PublishState, error) {
	t.mu.Lock()
	mi := t.course.moduleIndex(id)
	if mi < 0 {
		t.mu.Unlock()
		return "", &NotFoundError{Kind: EntityModule, ID: id}
	}
	before := t.course.Modules[mi].clone()
	prior := before.IsPublished
	t.course.Modules[mi].IsPublished = !prior
	restore := func(c *Course) {
		if i := c.moduleIndex(id); i >= 0 {
			c.Modules[i].IsPublished = prior
		}
	}
	mut := t.begin(MutationTogglePublish, EntityModule, id, restore)
	t.mu.Unlock()

	updated, err := t.publisher.toggleModule(ctx, t.session.CourseID, before)
	if err != nil {
		return StateOf(prior), t.failAndRevert(mut, asRemote("publish module", err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.confirm(mut)
	published := !prior
	if updated.ID != 0 {
		published = updated.IsPublished
	}
	state := StateOf(published)
	if i := t.course.moduleIndex(id); i >= 0 {
		t.course.Modules[i].IsPublished = published
	}
	t.log.Info("module publish toggled", "module_id", id, "state", state)
	return state, nil
}

func (t *ContentTree) toggleLesson(ctx context.Context, id uint) (PublishState, error) {
	t.mu.Lock()
	mi, li := t.course.lessonIndex(id)
	if mi < 0 {
		t.mu.Unlock()
		return "", &NotFoundError{Kind: EntityLesson, ID: id}
	}
	before := t.course.Modules[mi].Lessons[li].clone()
	prior := before.IsPublished
	t.course.Modules[mi].Lessons[li].IsPublished = !prior
	restore := func(c *Course) {
		if i, j := c.lessonIndex(id); i >= 0 {
			c.Modules[i].Lessons[j].IsPublished = prior
		}
	}
	mut := t.begin(MutationTogglePublish, EntityLesson, id, restore)
	t.mu.Unlock()

	updated, err := t.publisher.toggleLesson(ctx, t.session.CourseID, before)
	if err != nil {
		return StateOf(prior), t.failAndRevert(mut, asRemote("publish lesson", err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.confirm(mut)
	published := !prior
	if updated.ID != 0 {
		published = updated.IsPublished
	}
	state := StateOf(published)
	if i, j := t.course.lessonIndex(id); i >= 0 {
		t.course.Modules[i].Lessons[j].IsPublished = published
	}
	t.log.Info("lesson publish toggled", "lesson_id", id, "state", state)
	return state, nil
}

// Mutations lists the ledger, oldest first.
func (t *ContentTree) Mutations() []Mutation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Mutation, len(t.ledger))
	for i, m := range t.ledger {
		out[i] = *m
	}
	return out
}

// Failed lists mutations the remote store rejected that still await a
// decision from the caller.
func (t *ContentTree) Failed() []Mutation {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Mutation
	for _, m := range t.ledger {
		if m.Status == MutationFailed {
			out = append(out, *m)
		}
	}
	return out
}

// Revert undoes the local effect of a failed mutation. It never talks to the
// remote store.
func (t *ContentTree) Revert(id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range t.ledger {
		if m.ID != id {
			continue
		}
		if !m.Revertible() {
			return ErrNotRevertible
		}
		m.revert(&t.course)
		m.Status = MutationReverted
		t.log.Info("mutation reverted", "mutation_id", m.ID, "kind", m.Kind, "entity_id", m.EntityID)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownMutation, id)
}

// Forget drops a ledger entry, accepting its current local effect.
func (t *ContentTree) Forget(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, m := range t.ledger {
		if m.ID == id {
			t.ledger = append(t.ledger[:i], t.ledger[i+1:]...)
			return
		}
	}
}

// PruneConfirmed drops every confirmed entry and returns how many went.
func (t *ContentTree) PruneConfirmed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.ledger[:0]
	for _, m := range t.ledger {
		if m.Status != MutationConfirmed {
			kept = append(kept, m)
		}
	}
	n := len(t.ledger) - len(kept)
	t.ledger = kept
	return n
}

// begin records a pending mutation. Caller holds t.mu.
func (t *ContentTree) begin(kind MutationKind, entity EntityKind, id uint, revert func(*Course)) *Mutation {
	m := &Mutation{
		ID:       uuid.New(),
		Kind:     kind,
		Entity:   entity,
		EntityID: id,
		Author:   t.session.Author,
		Status:   MutationPending,
		IssuedAt: t.now(),
		revert:   revert,
	}
	t.ledger = append(t.ledger, m)
	return m
}

// confirm marks success. Caller holds t.mu.
func (t *ContentTree) confirm(m *Mutation) {
	m.Status = MutationConfirmed
}

// fail marks the mutation failed and returns err. The optimistic change
// stays unless the tree reverts on failure.
func (t *ContentTree) fail(m *Mutation, err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	m.Status = MutationFailed
	m.Err = err
	t.log.Warn("remote rejected mutation", "mutation_id", m.ID, "kind", m.Kind, "entity_id", m.EntityID, "error", err)
	if t.revertOnFailure && m.revert != nil {
		m.revert(&t.course)
		m.Status = MutationReverted
	}
	return err
}

func (t *ContentTree) failAndRevert(m *Mutation, err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	m.Err = err
	m.revert(&t.course)
	m.Status = MutationReverted
	t.log.Warn("publish toggle rejected", "mutation_id", m.ID, "entity", m.Entity, "entity_id", m.EntityID, "error", err)
	return err
}

func opposite(dir ordering.Direction) ordering.Direction {
	if dir == ordering.Up {
		return ordering.Down
	}
	return ordering.Up
}

func normalizeCourse(c Course) Course {
	if c.Status == "" {
		c.Status = CourseDraft
	}
	c.arrangeModules(ordering.Normalize(c.moduleSiblings()))
	for i := range c.Modules {
		m := &c.Modules[i]
		m.CourseID = c.ID
		for j := range m.Lessons {
			m.Lessons[j].ModuleID = m.ID
		}
		m.arrangeLessons(ordering.Normalize(m.lessonSiblings()))
	}
	return c
}

func (c *Course) moduleIndex(id uint) int {
	for i, m := range c.Modules {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (c *Course) lessonIndex(id uint) (int, int) {
	for i, m := range c.Modules {
		if j := m.lessonIndex(id); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// arrangeModules rebuilds the module slice in the sibling sequence.
func (c *Course) arrangeModules(sibs []ordering.Sibling) {
	byID := make(map[uint]Module, len(c.Modules))
	for _, m := range c.Modules {
		byID[m.ID] = m
	}
	out := make([]Module, 0, len(sibs))
	for _, s := range sibs {
		m, ok := byID[s.ID]
		if !ok {
			continue
		}
		m.Order = s.Order
		out = append(out, m)
	}
	c.Modules = out
}

func (c *Course) insertModule(m Module) {
	if i := c.moduleIndex(m.ID); i >= 0 {
		m.Lessons = c.Modules[i].Lessons
		c.Modules[i] = m
		c.arrangeModules(ordering.Normalize(c.moduleSiblings()))
		return
	}
	c.Modules = append(c.Modules, m)
	sibs := ordering.Insert(c.moduleSiblings()[:len(c.Modules)-1], ordering.Sibling{ID: m.ID, Order: m.Order})
	c.arrangeModules(sibs)
}

func (c *Course) removeModule(id uint) {
	c.arrangeModules(ordering.Remove(c.moduleSiblings(), id))
}

func (m *Module) lessonIndex(id uint) int {
	for i, l := range m.Lessons {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// arrangeLessons rebuilds the lesson slice in the sibling sequence.
func (m *Module) arrangeLessons(sibs []ordering.Sibling) {
	byID := make(map[uint]Lesson, len(m.Lessons))
	for _, l := range m.Lessons {
		byID[l.ID] = l
	}
	out := make([]Lesson, 0, len(sibs))
	for _, s := range sibs {
		l, ok := byID[s.ID]
		if !ok {
			continue
		}
		l.Order = s.Order
		out = append(out, l)
	}
	m.Lessons = out
}

// insertLesson places l at its order, or replaces it if already present.
func (m *Module) insertLesson(l Lesson) {
	l.ModuleID = m.ID
	if i := m.lessonIndex(l.ID); i >= 0 {
		l.Order = m.Lessons[i].Order
		m.Lessons[i] = l
		return
	}
	existing := m.lessonSiblings()
	m.Lessons = append(m.Lessons, l)
	m.arrangeLessons(ordering.Insert(existing, ordering.Sibling{ID: l.ID, Order: l.Order}))
}

// mergeModule takes server-owned fields; local order and lessons win.
func mergeModule(dst *Module, server Module) {
	if server.ID == 0 {
		return
	}
	dst.Title = server.Title
	dst.Description = server.Description
	dst.IsPublished = server.IsPublished
	if !server.UpdatedAt.IsZero() {
		dst.UpdatedAt = server.UpdatedAt
	}
}

// mergeLesson takes server-owned fields; local order and module win.
func mergeLesson(dst *Lesson, server Lesson) {
	if server.ID == 0 {
		return
	}
	order, moduleID := dst.Order, dst.ModuleID
	content := dst.Content
	*dst = server.clone()
	dst.Order, dst.ModuleID = order, moduleID
	if dst.Content == nil {
		dst.Content = content
	}
}
