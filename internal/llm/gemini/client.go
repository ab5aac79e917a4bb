package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"

	"docqa/internal/llm"
)

const DefaultModel = "gemini-1.5-flash-latest"

var tracer = otel.Tracer("docqa/internal/llm/gemini")

// generator is the part of *genai.GenerativeModel used here.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client is a llm.Completer backed by the Gemini API.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	client    *genai.Client
	model     generator
	modelName string
}

var _ llm.Completer = (*Client)(nil)

// New creates a Gemini client for a fixed model. Extra options are appended after the API key.
func New(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	cli, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{
		client:    cli,
		model:     cli.GenerativeModel(modelName),
		modelName: modelName,
	}, nil
}

// Model returns the model identifier every request is sent to.
func (c *Client) Model() string { return c.modelName }

// Complete sends prompt as a single text part and waits for the whole response.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "gemini.GenerateContent", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("gen_ai.request.model", c.modelName),
		attribute.Int("gen_ai.prompt.chars", len(prompt)),
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content")
		return "", fmt.Errorf("generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return text, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", llm.ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", llm.ErrEmptyResponse
	}

	var b strings.Builder
	found := false
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
			found = true
		}
	}
	if !found {
		return "", llm.ErrEmptyResponse
	}
	return b.String(), nil
}
