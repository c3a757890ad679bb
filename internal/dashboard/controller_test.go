package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ayatsuji/taskboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal stand-in for the task server. Handlers can be swapped
// per test; unset routes return 404.
type fakeAPI struct {
	listTasks func(w http.ResponseWriter, r *http.Request)
	patchTask func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/tasks" && f.listTasks != nil:
		f.listTasks(w, r)
	case r.Method == http.MethodPatch && f.patchTask != nil:
		f.patchTask(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func serveTasks(tasks []models.Task) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tasks)
	}
}

func newTestController(t *testing.T, api *fakeAPI) *Controller {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	return NewController(NewClient(server.URL, "session-token", server.Client()))
}

func TestControllerRefresh(t *testing.T) {
	api := &fakeAPI{listTasks: serveTasks([]models.Task{
		{ID: "t1", Title: "One", Status: models.StatusBacklog},
		{ID: "t2", Title: "Two", Status: models.StatusOngoing},
	})}
	ctl := newTestController(t, api)

	require.NoError(t, ctl.Refresh(context.Background()))
	assert.Len(t, ctl.Bucket(models.StatusBacklog), 1)
	assert.Len(t, ctl.Bucket(models.StatusOngoing), 1)
	assert.Empty(t, ctl.Bucket(models.StatusCompleted))
}

func TestControllerMoveTaskCommitsOnSuccess(t *testing.T) {
	var patched atomic.Int32
	api := &fakeAPI{
		listTasks: serveTasks([]models.Task{
			{ID: "t1", Title: "One", Status: models.StatusBacklog},
		}),
		patchTask: func(w http.ResponseWriter, r *http.Request) {
			patched.Add(1)

			var fields map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
			assert.Equal(t, "Ongoing", fields["status"])
			assert.Equal(t, "/tasks/t1", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.Task{ID: "t1", Title: "One", Status: models.StatusOngoing})
		},
	}
	ctl := newTestController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	require.NoError(t, ctl.MoveTask(context.Background(), "t1"))

	assert.Equal(t, int32(1), patched.Load())
	assert.Empty(t, ctl.Bucket(models.StatusBacklog))
	assert.Len(t, ctl.Bucket(models.StatusOngoing), 1)
	assert.False(t, ctl.Moving("t1"))
}

func TestControllerMoveTaskRollsBackOnFailure(t *testing.T) {
	api := &fakeAPI{
		listTasks: serveTasks([]models.Task{
			{ID: "t1", Title: "One", Status: models.StatusBacklog},
			{ID: "t3", Title: "Three", Status: models.StatusBacklog},
			{ID: "t2", Title: "Two", Status: models.StatusOngoing},
		}),
		patchTask: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	}
	ctl := newTestController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	err := ctl.MoveTask(context.Background(), "t1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)

	// The card is back in its source bucket at its old position.
	backlog := ctl.Bucket(models.StatusBacklog)
	require.Len(t, backlog, 2)
	assert.Equal(t, "t1", backlog[0].ID)
	assert.Equal(t, "t3", backlog[1].ID)
	assert.Len(t, ctl.Bucket(models.StatusOngoing), 1)
	assert.False(t, ctl.Moving("t1"))
}

func TestControllerFailedMoveKeepsOtherCommittedMoves(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})

	api := &fakeAPI{
		listTasks: serveTasks([]models.Task{
			{ID: "t1", Title: "One", Status: models.StatusBacklog},
			{ID: "t2", Title: "Two", Status: models.StatusOngoing},
		}),
		patchTask: func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/tasks/t1":
				close(entered)
				<-release
				w.WriteHeader(http.StatusInternalServerError)
			case "/tasks/t2":
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(models.Task{ID: "t2", Title: "Two", Status: models.StatusCompleted})
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		},
	}
	ctl := newTestController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- ctl.MoveTask(context.Background(), "t1")
	}()

	// While t1's PATCH is parked, a move on another id resolves and commits.
	<-entered
	require.NoError(t, ctl.MoveTask(context.Background(), "t2"))
	require.Len(t, ctl.Bucket(models.StatusCompleted), 1)

	close(release)
	assert.ErrorIs(t, <-firstDone, ErrRequestFailed)

	// Only t1 is rolled back; t2's committed move survives.
	backlog := ctl.Bucket(models.StatusBacklog)
	require.Len(t, backlog, 1)
	assert.Equal(t, "t1", backlog[0].ID)
	completed := ctl.Bucket(models.StatusCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, "t2", completed[0].ID)
	assert.Empty(t, ctl.Bucket(models.StatusOngoing))
}

func TestControllerMoveTaskRejectsConcurrentMove(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})

	api := &fakeAPI{
		listTasks: serveTasks([]models.Task{
			{ID: "t1", Title: "One", Status: models.StatusBacklog},
		}),
		patchTask: func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.Task{ID: "t1", Title: "One", Status: models.StatusOngoing})
		},
	}
	ctl := newTestController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- ctl.MoveTask(context.Background(), "t1")
	}()

	// Wait until the first move is parked inside the PATCH handler.
	<-entered
	assert.True(t, ctl.Moving("t1"))

	err := ctl.MoveTask(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrMoveInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.False(t, ctl.Moving("t1"))
	assert.Len(t, ctl.Bucket(models.StatusOngoing), 1)
}

func TestControllerMoveTaskUnknownID(t *testing.T) {
	api := &fakeAPI{listTasks: serveTasks(nil)}
	ctl := newTestController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	err := ctl.MoveTask(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrTaskMissing)
}

func TestControllerMoveTaskWrapsAround(t *testing.T) {
	api := &fakeAPI{
		listTasks: serveTasks([]models.Task{
			{ID: "t1", Title: "Done", Status: models.StatusCompleted},
		}),
		patchTask: func(w http.ResponseWriter, r *http.Request) {
			var fields map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
			assert.Equal(t, "Backlog", fields["status"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.Task{ID: "t1", Title: "Done", Status: models.StatusBacklog})
		},
	}
	ctl := newTestController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	require.NoError(t, ctl.MoveTask(context.Background(), "t1"))
	assert.Len(t, ctl.Bucket(models.StatusBacklog), 1)
	assert.Empty(t, ctl.Bucket(models.StatusCompleted))
}
