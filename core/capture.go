package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chatwithcat/companion-core/core/audio"
)

// ErrNotRecording signals that stop was called with no open recording
// session. It is a non-fatal no-op signal, not a fault.
var ErrNotRecording = errors.New("not recording")

// captureController owns the recording-session lifecycle over an injected
// capture device. At most one session is open at a time; starting a new one
// releases the prior device handle first.
type captureController struct {
	mu        sync.Mutex
	client    CaptureDevice
	recording bool
	buf       []byte
}

func (c *captureController) set(client CaptureDevice) {
	if c != nil {
		c.client = client
	}
}

func (c *captureController) isConfigured() bool {
	return c != nil && c.client != nil
}

func (c *captureController) isRecording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.recording
}

func (c *captureController) encodingInfo() audio.EncodingInfo {
	if !c.isConfigured() {
		return audio.GetDefaultEncodingInfo()
	}
	return c.client.EncodingInfo()
}

// Start opens a recording session, releasing any prior one so two live
// device handles never coexist.
//
// StopCapture joins the device callback thread, so it must never be called
// while holding c.mu; the callback takes the same mutex.
func (c *captureController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.client == nil {
		c.mu.Unlock()
		return fmt.Errorf("no capture device configured")
	}
	wasRecording := c.recording
	c.recording = false
	client := c.client
	c.mu.Unlock()

	if wasRecording {
		if err := client.StopCapture(); err != nil {
			logger.Warn("failed to release prior recording session", "error", err)
		}
	}

	c.mu.Lock()
	c.buf = nil
	c.recording = true
	c.mu.Unlock()

	if err := client.StartCapture(ctx, c.appendAudio); err != nil {
		c.mu.Lock()
		c.recording = false
		c.mu.Unlock()
		return fmt.Errorf("failed to start capture: %w", err)
	}
	return nil
}

func (c *captureController) appendAudio(chunk []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recording {
		c.buf = append(c.buf, chunk...)
	}
}

// Stop finalizes the buffered chunks into one recording and releases the
// device. Calling it while idle returns ErrNotRecording.
func (c *captureController) Stop() ([]byte, error) {
	c.mu.Lock()
	if !c.recording {
		c.mu.Unlock()
		return nil, ErrNotRecording
	}
	c.recording = false
	recording := c.buf
	c.buf = nil
	client := c.client
	c.mu.Unlock()

	if err := client.StopCapture(); err != nil {
		return recording, fmt.Errorf("failed to stop capture: %w", err)
	}
	return recording, nil
}
