package orchestration

import (
	"context"
	"sync"
	"sync/atomic"

	events "github.com/chatwithcat/companion-core/core/events"
	"github.com/google/uuid"
)

type turnState string

const (
	turnStateIdle               turnState = "idle"
	turnStateRequestingReply    turnState = "requesting_reply"
	turnStateAwaitingToolResult turnState = "awaiting_tool_result"
	turnStateRequestingFollowup turnState = "requesting_followup_reply"
	turnStateRevealing          turnState = "revealing"
	turnStateCancelled          turnState = "cancelled"
)

// activeTurn is the ephemeral unit of work producing one assistant reply.
// Its context is the cancellation token carried by every operation issued on
// the turn's behalf.
type activeTurn struct {
	id     string
	prompt string

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	state turnState

	cancelled atomic.Bool

	emit eventEmitter
}

func newActiveTurn(ctx context.Context, prompt string, emit eventEmitter) *activeTurn {
	ctx, cancel := context.WithCancel(ctx)
	return &activeTurn{
		id:     uuid.NewString(),
		prompt: prompt,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		state:  turnStateIdle,
		emit:   emit,
	}
}

func (t *activeTurn) State() turnState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

func (t *activeTurn) setState(next turnState) {
	t.mu.Lock()
	from := t.state
	t.state = next
	t.mu.Unlock()

	if from != next {
		t.emit(events.NewTurnStateChanged(t.id, string(from), string(next)))
	}
}

// Cancel invalidates the turn's token exactly once. Resolutions of in-flight
// work tagged with it become discarded no-ops.
func (t *activeTurn) Cancel() bool {
	if !t.cancelled.CompareAndSwap(false, true) {
		return false
	}

	t.cancel()
	t.setState(turnStateCancelled)
	t.emit(events.NewTurnCancelled(t.id))
	return true
}

func (t *activeTurn) IsCancelled() bool {
	return t.cancelled.Load()
}
