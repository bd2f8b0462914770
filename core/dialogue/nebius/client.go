// Package nebius implements the dialogue contract on top of the Nebius AI
// Studio chat-completions API, which is OpenAI compatible.
package nebius

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jinzhu/copier"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/chatwithcat/companion-core/core/dialogue"
)

const (
	DefaultBaseURL = "https://api.studio.nebius.com/v1/"
	DefaultModel   = "meta-llama/Meta-Llama-3.1-70B-Instruct-fast"

	defaultMaxTokens   = 512
	defaultTemperature = 0.6
	defaultTopP        = 0.9
)

type Client struct {
	client *openai.Client
	model  string
}

type ClientOption func(*clientOptions)

type clientOptions struct {
	baseURL string
	model   string
}

// WithBaseURL points the client at a different OpenAI compatible endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) { o.baseURL = baseURL }
}

// WithModel overrides the default model.
func WithModel(model string) ClientOption {
	return func(o *clientOptions) { o.model = model }
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	options := clientOptions{baseURL: DefaultBaseURL, model: DefaultModel}
	for _, opt := range opts {
		opt(&options)
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = options.baseURL
	config.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  options.model,
	}
}

// Converse sends the assembled history to the provider and returns its reply,
// which is prose, a tool invocation, or both. Each call is a single atomic
// request/response exchange.
func (c *Client) Converse(ctx context.Context, request dialogue.Request) (*dialogue.Reply, error) {
	ctx, span := tracer.Start(ctx, "prompt dialogue model")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.model", c.model),
		attribute.Int("request.messages", len(request.Messages)),
	)

	maxTokens := request.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toWireMessages(request.Messages),
		Tools:       toWireTools(request.Tools),
		MaxTokens:   maxTokens,
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
	})
	if err != nil {
		err = fmt.Errorf("failed to request chat completion: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("chat completion returned no choices")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	message := resp.Choices[0].Message
	reply := dialogue.Reply{Content: message.Content}
	for _, toolCall := range message.ToolCalls {
		invocation := dialogue.ToolInvocation{ID: toolCall.ID}
		_ = copier.Copy(&invocation, toolCall.Function)
		reply.ToolCalls = append(reply.ToolCalls, invocation)
	}

	span.SetAttributes(attribute.Int("response.tool_calls", len(reply.ToolCalls)))
	return &reply, nil
}

func toWireMessages(messages []dialogue.Message) []openai.ChatCompletionMessage {
	wire := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		wireMessage := openai.ChatCompletionMessage{
			Role:       string(message.Role),
			Content:    message.Content,
			ToolCallID: message.ToolCallID,
			Name:       message.Name,
		}
		for _, invocation := range message.ToolCalls {
			function := openai.FunctionCall{}
			_ = copier.Copy(&function, invocation)
			wireMessage.ToolCalls = append(wireMessage.ToolCalls, openai.ToolCall{
				ID:       invocation.ID,
				Type:     openai.ToolTypeFunction,
				Function: function,
			})
		}
		wire = append(wire, wireMessage)
	}
	return wire
}

func toWireTools(tools []dialogue.Tool) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}

	wire := make([]openai.Tool, 0, len(tools))
	for _, tool := range tools {
		wire = append(wire, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	return wire
}
