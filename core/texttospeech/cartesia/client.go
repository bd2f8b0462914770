// Package cartesia implements speech synthesis against the Cartesia websocket
// API. Synthesis is treated as an atomic exchange: the full transcript is sent
// in one request and the streamed chunks are collected into a single asset
// before it is handed back.
package cartesia

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/chatwithcat/companion-core/core/audio"
	"github.com/chatwithcat/companion-core/core/texttospeech"
)

const (
	apiVersion = "2024-06-10"

	DefaultModel = "sonic-english"
	DefaultVoice = "a0e99841-438c-4a64-b679-ae501e7d6091"
)

type Client struct {
	apiKey  string
	model   string
	voiceID string
}

type ClientOption func(*Client)

// WithModel overrides the default synthesis model.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithVoice overrides the default voice.
func WithVoice(voiceID string) ClientOption {
	return func(c *Client) { c.voiceID = voiceID }
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := &Client{
		apiKey:  apiKey,
		model:   DefaultModel,
		voiceID: DefaultVoice,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type synthesisRequest struct {
	ContextID    string       `json:"context_id"`
	ModelID      string       `json:"model_id"`
	Transcript   string       `json:"transcript"`
	Voice        voiceSpec    `json:"voice"`
	Language     string       `json:"language,omitempty"`
	OutputFormat outputFormat `json:"output_format"`
	Continue     bool         `json:"continue"`
}

type voiceSpec struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

type outputFormat struct {
	Container  string `json:"container"`
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sample_rate"`
}

type synthesisMessage struct {
	Type      string `json:"type"`
	ContextID string `json:"context_id"`
	Data      string `json:"data"`
	Done      bool   `json:"done"`
	Error     string `json:"error"`
}

// Synthesize converts the text into one complete audio asset. The context
// cancels the exchange midway, in which case the partial asset is discarded.
func (c *Client) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error) {
	options := texttospeech.SynthesisOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(&options)
	}

	ctx, span := tracer.Start(ctx, "synthesize speech")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.model", c.model),
		attribute.Int("request.text_length", len(text)),
	)

	conn, err := c.connectWebsocket(ctx)
	if err != nil {
		err = fmt.Errorf("failed to open websocket: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer conn.Close()

	// Unblocks the read loop when the caller cancels midway.
	readCtx, cancelRead := context.WithCancel(ctx)
	defer cancelRead()
	go func() {
		<-readCtx.Done()
		_ = conn.Close()
	}()

	request := synthesisRequest{
		ContextID:  uuid.NewString(),
		ModelID:    c.model,
		Transcript: text,
		Voice:      voiceSpec{Mode: "id", ID: c.voiceID},
		Language:   options.Language,
		OutputFormat: outputFormat{
			Container:  "raw",
			Encoding:   "pcm_s16le",
			SampleRate: options.EncodingInfo.SampleRate,
		},
	}
	if err := conn.WriteJSON(request); err != nil {
		err = fmt.Errorf("failed to send synthesis request: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	asset, err := collectChunks(conn, request.ContextID)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("synthesis cancelled: %w", ctx.Err())
		} else {
			err = fmt.Errorf("failed to collect synthesized audio: %w", err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("response.audio_bytes", len(asset)))
	return asset, nil
}

func (c *Client) connectWebsocket(ctx context.Context) (*websocket.Conn, error) {
	urlValues := url.Values{}
	urlValues.Set("api_key", c.apiKey)
	urlValues.Set("cartesia_version", apiVersion)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx,
		(&url.URL{
			Scheme: "wss",
			Host:   "api.cartesia.ai", Path: "/tts/websocket",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to cartesia: %w", err)
	}

	return conn, nil
}

func collectChunks(conn *websocket.Conn, contextID string) ([]byte, error) {
	var asset []byte
	for {
		var message synthesisMessage
		if err := conn.ReadJSON(&message); err != nil {
			return nil, fmt.Errorf("failed to read websocket message: %w", err)
		}

		if message.ContextID != "" && message.ContextID != contextID {
			continue
		}

		switch message.Type {
		case "chunk":
			chunk, err := base64.StdEncoding.DecodeString(message.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode audio chunk: %w", err)
			}
			asset = append(asset, chunk...)
		case "error":
			return nil, fmt.Errorf("synthesis failed: %s", message.Error)
		case "done":
			return asset, nil
		}

		if message.Done {
			return asset, nil
		}
	}
}
