package courseRoutes

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mavton23/donza-sub001/authoring"
	"github.com/Mavton23/donza-sub001/authoring/ordering"
	"github.com/Mavton23/donza-sub001/remotesync"
)

func titlesOf(m authoring.Module) []string {
	out := make([]string, len(m.Lessons))
	for i, l := range m.Lessons {
		out[i] = l.Title
	}
	return out
}

func ordersOf(m authoring.Module) []int {
	out := make([]int, len(m.Lessons))
	for i, l := range m.Lessons {
		out[i] = l.Order
	}
	return out
}

// The authoring engine driving the real routes over HTTP.
func TestContentTreeAgainstServer(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(adaptor.FiberApp(s.app))
	defer srv.Close()

	ctx := context.Background()
	courseID := s.createCourse(t, "C1")
	client := remotesync.New(remotesync.Options{BaseURL: srv.URL, Token: s.admin})

	tree, err := authoring.OpenContentTree(ctx, authoring.Session{CourseID: courseID, Author: authoring.Author{ID: 1, Name: "Admin"}}, client)
	require.NoError(t, err)
	assert.Empty(t, tree.Snapshot().Modules)

	m1, err := tree.AddModule(ctx, "M1", "")
	require.NoError(t, err)
	m2, err := tree.AddModule(ctx, "M2", "")
	require.NoError(t, err)
	assert.Equal(t, 2, m2.Order)

	queue := authoring.NewBatchQueue(tree)
	for _, title := range []string{"L1", "L2", "L3"} {
		_, err := queue.Enqueue(authoring.LessonDraft{ModuleID: m1.ID, Title: title, Type: "text", Body: title + " body"})
		require.NoError(t, err)
	}
	res, err := queue.SubmitAll(ctx)
	require.NoError(t, err)
	require.Len(t, res.Created, 3)
	assert.Equal(t, 0, queue.Len())

	outcome, err := tree.MoveLesson(ctx, res.Created[2].ID, ordering.Up)
	require.NoError(t, err)
	assert.Equal(t, ordering.Moved, outcome)

	require.NoError(t, tree.DeleteLesson(ctx, res.Created[0].ID))

	state, err := tree.TogglePublish(ctx, authoring.EntityModule, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, authoring.StatePublished, state)

	local, err := tree.Module(m1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"L3", "L2"}, titlesOf(local))
	assert.Equal(t, []int{1, 2}, ordersOf(local))

	// A fresh load sees exactly what the tree holds locally.
	fresh, err := authoring.OpenContentTree(ctx, tree.Session(), client)
	require.NoError(t, err)
	remote, err := fresh.Module(m1.ID)
	require.NoError(t, err)
	assert.Equal(t, titlesOf(local), titlesOf(remote))
	assert.Equal(t, ordersOf(local), ordersOf(remote))
	assert.True(t, remote.IsPublished)
	for _, l := range remote.Lessons {
		assert.False(t, l.IsPublished, "publishing a module leaves lessons alone")
		assert.Equal(t, authoring.LessonText, l.Type())
	}

	views := fresh.ModuleViews()
	require.Len(t, views, 2)
	assert.True(t, views[0].HasUnpublishedLessons())
	assert.Equal(t, m2.ID, views[1].ModuleID)

	assert.Empty(t, tree.Failed())
}

func TestContentTreeServerErrors(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(adaptor.FiberApp(s.app))
	defer srv.Close()
	ctx := context.Background()

	client := remotesync.New(remotesync.Options{BaseURL: srv.URL, Token: s.admin})
	_, err := authoring.OpenContentTree(ctx, authoring.Session{CourseID: 404}, client)
	assert.True(t, errors.Is(err, authoring.ErrNotFound))

	courseID := s.createCourse(t, "C1")
	author := remotesync.New(remotesync.Options{BaseURL: srv.URL, Token: s.author})
	_, err = authoring.OpenContentTree(ctx, authoring.Session{CourseID: courseID}, author)
	var re *authoring.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 403, re.Status)
	assert.Equal(t, authoring.CategoryClient, re.Category)
	assert.Equal(t, "Access denied! Admin only.", re.Message)
}
