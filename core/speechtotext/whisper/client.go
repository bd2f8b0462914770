// Package whisper implements one-shot transcription against the OpenAI audio
// transcriptions endpoint.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/chatwithcat/companion-core/core/audio"
	"github.com/chatwithcat/companion-core/core/speechtotext"
)

const DefaultModel = "whisper-1"

type Client struct {
	client *openai.Client
	model  string
}

type ClientOption func(*Client)

// WithModel overrides the default transcription model.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	client := &Client{
		client: openai.NewClientWithConfig(config),
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Transcribe uploads the captured recording as a single file and returns the
// terminal transcript.
func (c *Client) Transcribe(ctx context.Context, recording []byte, opts ...speechtotext.TranscriptionOption) (string, error) {
	options := speechtotext.TranscriptionOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(&options)
	}

	ctx, span := tracer.Start(ctx, "transcribe recording")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.model", c.model),
		attribute.String("request.language", options.Language),
		attribute.Int("request.recording_bytes", len(recording)),
	)

	wav, err := audio.EncodeWAV(recording, options.EncodingInfo)
	if err != nil {
		err = fmt.Errorf("failed to encode recording: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: "recording.wav",
		Reader:   bytes.NewReader(wav),
		Language: options.Language,
	})
	if err != nil {
		err = fmt.Errorf("failed to request transcription: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}
