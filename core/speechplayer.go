package orchestration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chatwithcat/companion-core/core/audio"
	events "github.com/chatwithcat/companion-core/core/events"
)

// playbackGraceDelay compensates for output buffering lag so the speaking
// state is only reported once audio is audibly producing sound.
const playbackGraceDelay = 150 * time.Millisecond

// speechPlayer owns the "current speech" handle over the shared audio sink.
// The sink is an exclusive singleton for synthesized speech; playing a new
// asset stops any prior one first.
type speechPlayer struct {
	mu          sync.Mutex
	sink        AudioSink
	stopCurrent context.CancelFunc

	busy    atomic.Bool
	playing atomic.Bool
}

func newSpeechPlayer() *speechPlayer {
	return &speechPlayer{}
}

func (p *speechPlayer) setSink(sink AudioSink) {
	if p == nil {
		return
	}

	p.mu.Lock()
	p.sink = sink
	p.mu.Unlock()
}

func (p *speechPlayer) isConfigured() bool {
	if p == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sink != nil
}

func (p *speechPlayer) encodingInfo() audio.EncodingInfo {
	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()

	if sink == nil {
		return audio.EncodingInfo{}
	}
	return sink.EncodingInfo()
}

// IsBusy reports whether a speech asset is queued or playing.
func (p *speechPlayer) IsBusy() bool {
	return p != nil && p.busy.Load()
}

// IsSpeaking reports audible playback, past the grace delay.
func (p *speechPlayer) IsSpeaking() bool {
	return p != nil && p.playing.Load()
}

// Play queues the asset and blocks until it has played out, was stopped, or
// ctx was cancelled. Any prior asset is stopped before the new one starts.
func (p *speechPlayer) Play(ctx context.Context, turnID string, asset []byte, emit eventEmitter) error {
	p.mu.Lock()
	sink := p.sink
	if sink == nil {
		p.mu.Unlock()
		return nil
	}
	if p.stopCurrent != nil {
		p.stopCurrent()
		sink.ClearBuffer()
	}
	playCtx, cancel := context.WithCancel(ctx)
	p.stopCurrent = cancel
	p.mu.Unlock()
	defer cancel()

	p.busy.Store(true)
	defer p.busy.Store(false)

	ended := make(chan struct{})
	var endOnce sync.Once

	if err := sink.SendAudio(asset); err != nil {
		return fmt.Errorf("failed to send audio to sink: %w", err)
	}
	if err := sink.Mark(turnID, func(string) {
		endOnce.Do(func() { close(ended) })
	}); err != nil {
		return fmt.Errorf("failed to mark end of audio: %w", err)
	}

	// No playback events before the grace delay elapses: a start was never
	// reported, so neither outcome is reported either.
	select {
	case <-playCtx.Done():
		sink.ClearBuffer()
		return nil
	case <-ended:
		return nil
	case <-time.After(playbackGraceDelay):
	}

	p.playing.Store(true)
	defer p.playing.Store(false)
	emit(events.NewPlaybackStarted(turnID))

	select {
	case <-ended:
		emit(events.NewPlaybackEnded(turnID, false))
	case <-playCtx.Done():
		sink.ClearBuffer()
		emit(events.NewPlaybackEnded(turnID, true))
	}
	return nil
}

// PlayCue queues a short sound cue. Cues are a lower-priority class and are
// dropped whenever speech audio is queued or playing.
func (p *speechPlayer) PlayCue(cue []byte) {
	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()

	if sink == nil || len(cue) == 0 || p.busy.Load() {
		return
	}
	if err := sink.SendAudio(cue); err != nil {
		logger.Warn("failed to play sound cue", "error", err)
	}
}

// Stop aborts the current asset, if any. Safe at any lifecycle stage.
func (p *speechPlayer) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopCurrent != nil {
		p.stopCurrent()
		p.stopCurrent = nil
	}
}
