package authoring

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// BatchEntry is a staged lesson draft. Key is local to the queue and never
// sent anywhere; the lesson gets its real identifier on creation.
type BatchEntry struct {
	Key      uuid.UUID
	ModuleID uint
	Draft    LessonDraft
}

type BatchResult struct {
	Created []Lesson
}

// BatchQueue stages lesson drafts for one ContentTree. Only the target
// module identifier is needed at staging time; payloads are built when an
// entry is submitted.
type BatchQueue struct {
	tree *ContentTree

	mu      sync.Mutex
	entries []BatchEntry
}

func NewBatchQueue(tree *ContentTree) *BatchQueue {
	return &BatchQueue{tree: tree}
}

// Enqueue appends a draft and returns the new queue length.
func (q *BatchQueue) Enqueue(draft LessonDraft) (int, error) {
	if err := validateStaged(draft); err != nil {
		return q.Len(), err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, BatchEntry{Key: uuid.New(), ModuleID: draft.ModuleID, Draft: draft})
	return len(q.entries), nil
}

// Dequeue removes the entry at index. Out of range is a no-op.
func (q *BatchQueue) Dequeue(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= len(q.entries) {
		return
	}
	q.entries = append(q.entries[:index], q.entries[index+1:]...)
}

func (q *BatchQueue) Clear() {
	q.mu.Lock()
	q.entries = nil
	q.mu.Unlock()
}

func (q *BatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Entries is a copy of the queue for display.
func (q *BatchQueue) Entries() []BatchEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]BatchEntry(nil), q.entries...)
}

// SubmitOne creates a single draft right away, bypassing the queue. On
// failure the draft is left with the caller; it is not enqueued.
func (q *BatchQueue) SubmitOne(ctx context.Context, draft LessonDraft) (Lesson, error) {
	if err := validateStaged(draft); err != nil {
		return Lesson{}, err
	}
	return q.tree.AddLesson(ctx, draft.ModuleID, draft)
}

// SubmitAll creates every queued entry one at a time, in enqueue order.
// Each payload is built just before its own create so default orders count
// the lessons created earlier in the same batch. The first failure stops
// the batch with a *PartialBatchError: created lessons stay created, the
// failed entry is handed back in the error and the unsent ones stay queued.
func (q *BatchQueue) SubmitAll(ctx context.Context) (BatchResult, error) {
	var res BatchResult
	for _, entry := range q.Entries() {
		if !q.contains(entry.Key) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, &PartialBatchError{
				Succeeded: len(res.Created),
				Created:   res.Created,
				Pending:   q.Entries(),
				Err:       err,
			}
		}

		lesson, err := q.tree.AddLesson(ctx, entry.ModuleID, entry.Draft)
		q.remove(entry.Key)
		if err != nil {
			q.tree.log.Warn("batch stopped", "created", len(res.Created), "failed_title", entry.Draft.Title, "error", err)
			return res, &PartialBatchError{
				Succeeded: len(res.Created),
				Created:   res.Created,
				Failed:    entry,
				Pending:   q.Entries(),
				Err:       err,
			}
		}
		res.Created = append(res.Created, lesson)
	}
	q.tree.log.Info("batch submitted", "created", len(res.Created))
	return res, nil
}

func (q *BatchQueue) contains(key uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		if e.Key == key {
			return true
		}
	}
	return false
}

func (q *BatchQueue) remove(key uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.Key == key {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

func validateStaged(d LessonDraft) error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("title", "lesson title is required")
	}
	if d.ModuleID == 0 {
		return invalid("module_id", "target module is required")
	}
	return nil
}
