// Package deepgram implements one-shot transcription against Deepgram's
// prerecorded listen endpoint, as an alternative to the whisper client.
package deepgram

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	listenv1rest "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/rest"
	clientinterfaces "github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces"
	listen "github.com/deepgram/deepgram-go-sdk/pkg/client/listen"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/chatwithcat/companion-core/core/audio"
	"github.com/chatwithcat/companion-core/core/speechtotext"
)

const defaultModel = "nova-3"

type Client struct {
	client *listenv1rest.Client
	model  string
}

type ClientOption func(*Client)

// WithModel overrides the default transcription model.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// NewClient creates a prerecorded transcription client. An empty apiKey falls
// back to the DEEPGRAM_API_KEY environment variable.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	restClient := listen.NewREST(apiKey, &clientinterfaces.ClientOptions{})

	client := &Client{
		client: listenv1rest.New(restClient),
		model:  defaultModel,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Transcribe uploads the captured recording as a single prerecorded stream
// and returns the terminal transcript.
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

	resp, err := c.client.FromStream(ctx, bytes.NewReader(wav), &clientinterfaces.PreRecordedTranscriptionOptions{
		Model:       c.model,
		Language:    options.Language,
		SmartFormat: true,
	})
	if err != nil {
		err = fmt.Errorf("failed to request transcription: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if resp == nil || len(resp.Results.Channels) == 0 || len(resp.Results.Channels[0].Alternatives) == 0 {
		err := fmt.Errorf("transcription returned no alternatives")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Results.Channels[0].Alternatives[0].Transcript), nil
}
