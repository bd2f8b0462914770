package events

const (
	// KindResponseSegment identifies a revealed response text fragment.
	KindResponseSegment Kind = "assistant_response.segment"
	// KindResponseFinal identifies the full revealed response text.
	KindResponseFinal Kind = "assistant_response.final"
)

// ResponseSegment carries a revealed response fragment, emitted in reveal
// order.
type ResponseSegment struct {
	Base
	TurnID  string
	Segment string
}

func (e ResponseSegment) String() string { return e.Segment }

// NewResponseSegment creates a response segment event.
func NewResponseSegment(turnID, segment string) ResponseSegment {
	return ResponseSegment{Base: NewBase(KindResponseSegment), TurnID: turnID, Segment: segment}
}

// ResponseFinal carries the full response text once the reveal completed.
type ResponseFinal struct {
	Base
	TurnID   string
	Response string
}

func (e ResponseFinal) String() string { return e.Response }

// NewResponseFinal creates a response final event.
func NewResponseFinal(turnID, response string) ResponseFinal {
	return ResponseFinal{Base: NewBase(KindResponseFinal), TurnID: turnID, Response: response}
}
