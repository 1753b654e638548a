package authoring

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotRevertible is returned by Revert for mutations that did not fail or
// have no local change to undo.
var ErrNotRevertible = errors.New("mutation cannot be reverted")

// ErrUnknownMutation is returned by Revert for an ID not in the ledger.
var ErrUnknownMutation = errors.New("unknown mutation")

type MutationStatus string

const (
	MutationPending   MutationStatus = "pending"
	MutationConfirmed MutationStatus = "confirmed"
	MutationFailed    MutationStatus = "failed"
	MutationReverted  MutationStatus = "reverted"
)

type MutationKind string

const (
	MutationAddModule     MutationKind = "add_module"
	MutationUpdateModule  MutationKind = "update_module"
	MutationDeleteModule  MutationKind = "delete_module"
	MutationMoveModule    MutationKind = "move_module"
	MutationAddLesson     MutationKind = "add_lesson"
	MutationUpdateLesson  MutationKind = "update_lesson"
	MutationDeleteLesson  MutationKind = "delete_lesson"
	MutationMoveLesson    MutationKind = "move_lesson"
	MutationTogglePublish MutationKind = "toggle_publish"
)

// Mutation records one tree operation and how the remote store answered.
// Failed mutations keep their optimistic local effect until the caller
// reverts them, unless the tree reverts on failure.
type Mutation struct {
	ID       uuid.UUID
	Kind     MutationKind
	Entity   EntityKind
	EntityID uint
	Author   Author
	Status   MutationStatus
	Err      error
	IssuedAt time.Time

	revert func(*Course)
}

// Revertible reports whether Revert would change the tree.
func (m Mutation) Revertible() bool {
	return m.Status == MutationFailed && m.revert != nil
}

// Author identifies who drives the session.
type Author struct {
	ID   uint
	Name string
}

// Session carries the course and author explicitly into the tree.
type Session struct {
	CourseID uint
	Author   Author
}
