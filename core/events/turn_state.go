package events

const (
	// KindTurnStarted identifies the start of a turn.
	KindTurnStarted Kind = "turn_state.started"
	// KindTurnStateChanged identifies a turn lifecycle transition.
	KindTurnStateChanged Kind = "turn_state.changed"
	// KindTurnCompleted identifies successful turn completion.
	KindTurnCompleted Kind = "turn_state.completed"
	// KindTurnFailed identifies turn failure.
	KindTurnFailed Kind = "turn_state.failed"
	// KindTurnCancelled identifies turn cancellation.
	KindTurnCancelled Kind = "turn_state.cancelled"
)

// TurnStarted marks the start of a turn for a user prompt.
type TurnStarted struct {
	Base
	TurnID string
	Prompt string
}

// NewTurnStarted creates a turn started event.
func NewTurnStarted(turnID, prompt string) TurnStarted {
	return TurnStarted{Base: NewBase(KindTurnStarted), TurnID: turnID, Prompt: prompt}
}

// TurnStateChanged marks a lifecycle transition within a turn.
type TurnStateChanged struct {
	Base
	TurnID string
	From   string
	To     string
}

// NewTurnStateChanged creates a turn state changed event.
func NewTurnStateChanged(turnID, from, to string) TurnStateChanged {
	return TurnStateChanged{Base: NewBase(KindTurnStateChanged), TurnID: turnID, From: from, To: to}
}

// TurnCompleted marks successful completion of a turn.
type TurnCompleted struct {
	Base
	TurnID   string
	Response string
}

// NewTurnCompleted creates a turn completed event.
func NewTurnCompleted(turnID, response string) TurnCompleted {
	return TurnCompleted{Base: NewBase(KindTurnCompleted), TurnID: turnID, Response: response}
}

// TurnFailed marks turn failure; Fallback is the text recorded in place of a
// model response.
type TurnFailed struct {
	Base
	TurnID   string
	Fallback string
	Error    string
}

// NewTurnFailed creates a turn failed event.
func NewTurnFailed(turnID, fallback, err string) TurnFailed {
	return TurnFailed{Base: NewBase(KindTurnFailed), TurnID: turnID, Fallback: fallback, Error: err}
}

// TurnCancelled marks cancellation of a turn before completion.
type TurnCancelled struct {
	Base
	TurnID string
}

// NewTurnCancelled creates a turn cancelled event.
func NewTurnCancelled(turnID string) TurnCancelled {
	return TurnCancelled{Base: NewBase(KindTurnCancelled), TurnID: turnID}
}
