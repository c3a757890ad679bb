package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/ayatsuji/taskboard/internal/models"
)

var (
	ErrMoveInFlight = errors.New("dashboard: a move for this task is already in flight")
	ErrTaskMissing  = errors.New("dashboard: task not present on the board")
)

// NextStatus is the cyclic transition the dashboard offers:
// Backlog → Ongoing → Completed → Backlog.
func NextStatus(current models.TaskStatus) models.TaskStatus {
	switch current {
	case models.StatusBacklog:
		return models.StatusOngoing
	case models.StatusOngoing:
		return models.StatusCompleted
	default:
		return models.StatusBacklog
	}
}

// Controller drives the optimistic-move contract over the board. A move
// updates the cache before the network confirms; success commits the
// optimistic state, failure puts that one card back where it was. At most one
// move per task id may be in flight, enforced here rather than by the store.
type Controller struct {
	api *Client

	mu       sync.Mutex
	board    *Board
	inFlight map[string]struct{}
}

// NewController creates a Controller with an empty board.
func NewController(api *Client) *Controller {
	return &Controller{
		api:      api,
		board:    NewBoard(),
		inFlight: make(map[string]struct{}),
	}
}

// Refresh rebuilds the board from a full list fetch.
func (ctl *Controller) Refresh(ctx context.Context) error {
	tasks, err := ctl.api.ListTasks(ctx)
	if err != nil {
		return err
	}

	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	ctl.board.Rebuild(tasks)
	return nil
}

// Bucket exposes one column of the board for rendering.
func (ctl *Controller) Bucket(status models.TaskStatus) []Card {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.board.Bucket(status)
}

// Moving reports whether a move for the given task id is in flight. The UI
// disables that task's control while this is true.
func (ctl *Controller) Moving(id string) bool {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	_, moving := ctl.inFlight[id]
	return moving
}

// MoveTask advances a task to its next status. The cache is spliced
// optimistically before the PATCH; on failure only the moved card is spliced
// back to where it came from, so moves on other ids that resolved in the
// meantime stay committed. A second call for the same id while the first is
// unresolved returns ErrMoveInFlight without touching the network.
func (ctl *Controller) MoveTask(ctx context.Context, id string) error {
	ctl.mu.Lock()
	if _, moving := ctl.inFlight[id]; moving {
		ctl.mu.Unlock()
		return ErrMoveInFlight
	}

	_, from, found := ctl.board.Find(id)
	if !found {
		ctl.mu.Unlock()
		return ErrTaskMissing
	}
	to := NextStatus(from)

	at, _ := ctl.board.Move(id, from, to)
	ctl.inFlight[id] = struct{}{}
	ctl.mu.Unlock()

	_, err := ctl.api.PatchTask(ctx, id, map[string]interface{}{
		"status": string(to),
	})

	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	delete(ctl.inFlight, id)

	if err != nil {
		if card, _, ok := ctl.board.Take(id); ok {
			ctl.board.Insert(card, from, at)
		}
		return err
	}
	return nil
}
