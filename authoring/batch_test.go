package authoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueDequeueRoundTrip(t *testing.T) {
	tree, _, m1, _ := newC1(t)
	q := NewBatchQueue(tree)
	_, err := q.Enqueue(LessonDraft{ModuleID: m1, Title: "existing", Type: "text"})
	require.NoError(t, err)
	before := q.Len()

	n, err := q.Enqueue(LessonDraft{ModuleID: m1, Title: "staged", Type: "text"})
	require.NoError(t, err)
	assert.Equal(t, before+1, n)

	q.Dequeue(n - 1)
	assert.Equal(t, before, q.Len())
	assert.Equal(t, "existing", q.Entries()[0].Draft.Title)
}

func TestEnqueueValidation(t *testing.T) {
	tree, _, m1, _ := newC1(t)
	q := NewBatchQueue(tree)

	_, err := q.Enqueue(LessonDraft{ModuleID: m1, Title: "  "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field)

	_, err = q.Enqueue(LessonDraft{Title: "no module"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "module_id", verr.Field)

	assert.Equal(t, 0, q.Len())
}

func TestDequeueOutOfRangeIsNoop(t *testing.T) {
	tree, _, m1, _ := newC1(t)
	q := NewBatchQueue(tree)
	_, _ = q.Enqueue(LessonDraft{ModuleID: m1, Title: "a"})

	q.Dequeue(-1)
	q.Dequeue(1)
	q.Dequeue(100)
	assert.Equal(t, 1, q.Len())

	q.Clear()
	assert.Equal(t, 0, q.Len())
	q.Clear()
}

func TestStagedEntriesStayOutOfTree(t *testing.T) {
	tree, remote, m1, _ := newC1(t)
	q := NewBatchQueue(tree)
	_, err := q.Enqueue(LessonDraft{ModuleID: m1, Title: "a", Type: "text"})
	require.NoError(t, err)

	assert.Equal(t, 0, tree.Snapshot().LessonCount())
	assert.Equal(t, 0, remote.count("create_lesson"))
}

func TestSubmitAllOrdersWithinBatch(t *testing.T) {
	ctx := context.Background()
	tree, remote, m1, m2 := newC1(t)
	addText(t, tree, m1, "already there")
	q := NewBatchQueue(tree)

	for _, d := range []LessonDraft{
		{ModuleID: m1, Title: "one", Type: "video", Duration: "10"},
		{ModuleID: m2, Title: "other module", Type: "pdf"},
		{ModuleID: m1, Title: "two", Type: "audio", Duration: "x"},
		{ModuleID: m1, Title: "three", Type: "assignment", Body: "do it"},
	} {
		_, err := q.Enqueue(d)
		require.NoError(t, err)
	}

	res, err := q.SubmitAll(ctx)
	require.NoError(t, err)
	require.Len(t, res.Created, 4)
	assert.Equal(t, 0, q.Len())

	// payloads[0] belongs to the lesson created by addText
	orders := []int{}
	for _, p := range remote.payloads[1:] {
		orders = append(orders, p.Order)
	}
	assert.Equal(t, []int{2, 1, 3, 4}, orders)

	mod, err := tree.Module(m1)
	require.NoError(t, err)
	assert.Equal(t, []string{"already there", "one", "two", "three"}, lessonTitles(mod))
	assert.Equal(t, []int{1, 2, 3, 4}, lessonOrders(mod))
	assert.Equal(t, 10, mod.Lessons[1].Duration())
	assert.Equal(t, 0, mod.Lessons[2].Duration())
}

func TestSubmitAllStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	tree, remote, m1, _ := newC1(t)
	q := NewBatchQueue(tree)
	for _, title := range []string{"first", "second", "third"} {
		_, err := q.Enqueue(LessonDraft{ModuleID: m1, Title: title, Type: "text", Body: "..."})
		require.NoError(t, err)
	}
	remote.failAt["create_lesson"] = 2
	before, _ := tree.Module(m1)

	res, err := q.SubmitAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialBatch)
	assert.ErrorIs(t, err, ErrRemoteFailure)

	var perr *PartialBatchError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Succeeded)
	assert.Equal(t, "second", perr.Failed.Draft.Title)
	require.Len(t, perr.Pending, 1)
	assert.Equal(t, "third", perr.Pending[0].Draft.Title)
	require.Len(t, res.Created, 1)

	after, _ := tree.Module(m1)
	assert.Equal(t, len(before.Lessons)+1, len(after.Lessons))
	assert.Equal(t, []string{"first"}, lessonTitles(after))

	entries := q.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "third", entries[0].Draft.Title)
	assert.Equal(t, 2, remote.count("create_lesson"))

	// retrying the rest picks up after the first lesson
	res, err = q.SubmitAll(ctx)
	require.NoError(t, err)
	require.Len(t, res.Created, 1)
	assert.Equal(t, 2, res.Created[0].Order)
}

func TestSubmitAllUnknownModuleStops(t *testing.T) {
	ctx := context.Background()
	tree, _, m1, _ := newC1(t)
	q := NewBatchQueue(tree)
	_, _ = q.Enqueue(LessonDraft{ModuleID: 999, Title: "lost", Type: "text"})
	_, _ = q.Enqueue(LessonDraft{ModuleID: m1, Title: "fine", Type: "text"})

	_, err := q.SubmitAll(ctx)
	var perr *PartialBatchError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, perr.Succeeded)
	assert.Equal(t, 1, q.Len())
}

func TestSubmitAllCancelledKeepsQueue(t *testing.T) {
	tree, remote, m1, _ := newC1(t)
	q := NewBatchQueue(tree)
	_, _ = q.Enqueue(LessonDraft{ModuleID: m1, Title: "a", Type: "text"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := q.SubmitAll(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 0, remote.count("create_lesson"))
}

func TestSubmitOne(t *testing.T) {
	ctx := context.Background()
	tree, remote, m1, _ := newC1(t)
	q := NewBatchQueue(tree)

	l, err := q.SubmitOne(ctx, LessonDraft{ModuleID: m1, Title: "solo", Type: "video", MediaRef: "m.mp4"})
	require.NoError(t, err)
	assert.NotZero(t, l.ID)
	assert.Equal(t, 1, l.Order)
	assert.Equal(t, 0, q.Len())

	remote.failAt["create_lesson"] = 2
	_, err = q.SubmitOne(ctx, LessonDraft{ModuleID: m1, Title: "retry me", Type: "text"})
	assert.ErrorIs(t, err, ErrRemoteFailure)
	assert.Equal(t, 0, q.Len(), "failed drafts are not re-enqueued")

	_, err = q.SubmitOne(ctx, LessonDraft{Title: "no module"})
	assert.ErrorIs(t, err, ErrValidation)
}
