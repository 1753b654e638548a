package authoring

import "context"

// PublishState is the lifecycle of a module or lesson. There are exactly
// two states.
type PublishState string

const (
	StateDraft     PublishState = "draft"
	StatePublished PublishState = "published"
)

func StateOf(isPublished bool) PublishState {
	if isPublished {
		return StatePublished
	}
	return StateDraft
}

func (s PublishState) IsPublished() bool { return s == StatePublished }

func (s PublishState) Toggle() PublishState {
	if s == StatePublished {
		return StateDraft
	}
	return StatePublished
}

// ModuleView is what the authoring UI renders for a module. Its State comes
// from the module flag alone; lesson flags only feed the unpublished count.
type ModuleView struct {
	ModuleID           uint
	State              PublishState
	UnpublishedLessons int
}

func (v ModuleView) HasUnpublishedLessons() bool { return v.UnpublishedLessons > 0 }

func ViewOf(m Module) ModuleView {
	v := ModuleView{ModuleID: m.ID, State: StateOf(m.IsPublished)}
	for _, l := range m.Lessons {
		if !l.IsPublished {
			v.UnpublishedLessons++
		}
	}
	return v
}

// HasUnpublishedLessons is the derived signal shown next to a module.
func HasUnpublishedLessons(m Module) bool {
	return ViewOf(m).HasUnpublishedLessons()
}

// publishStateMachine issues the remote update for a toggle. It never
// touches the lessons of a module.
type publishStateMachine struct {
	remote RemoteSync
}

func (p publishStateMachine) toggleModule(ctx context.Context, courseID uint, m Module) (Module, error) {
	next := StateOf(m.IsPublished).Toggle().IsPublished()
	return p.remote.UpdateModule(ctx, courseID, m.ID, ModulePatch{IsPublished: &next})
}

func (p publishStateMachine) toggleLesson(ctx context.Context, courseID uint, l Lesson) (Lesson, error) {
	next := StateOf(l.IsPublished).Toggle().IsPublished()
	return p.remote.UpdateLesson(ctx, courseID, l.ModuleID, l.ID, LessonPatch{IsPublished: &next})
}
