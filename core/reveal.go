package orchestration

import "time"

const baseRevealStepDelay = 40 * time.Millisecond

// revealState tracks the progressive reveal of a finalized reply. The
// revealed prefix is monotonically non-decreasing and bounded by the full
// length.
type revealState struct {
	full     []rune
	revealed int
}

func newRevealState(fullText string) *revealState {
	return &revealState{full: []rune(fullText)}
}

// step advances the revealed prefix and returns the newly revealed chunk.
// Chunk size grows with the remaining length so long replies do not take
// multiple seconds to show.
func (r *revealState) step() string {
	remaining := len(r.full) - r.revealed
	if remaining <= 0 {
		return ""
	}

	size := 1 + remaining/24
	if size > remaining {
		size = remaining
	}
	chunk := string(r.full[r.revealed : r.revealed+size])
	r.revealed += size
	return chunk
}

func (r *revealState) done() bool {
	return r.revealed >= len(r.full)
}

// revealStepDelay derives the per-step delay from the speech-rate
// preference, inversely: a higher rate reveals faster.
func revealStepDelay(speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(float64(baseRevealStepDelay) / speed)
}
