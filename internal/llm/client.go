// Package llm talks to the Gemini text-generation API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var ErrNoCredential = errors.New("llm: API key is not configured")

// Generator produces text for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Conversation keeps prior turns so replies stay in context.
type Conversation interface {
	Send(ctx context.Context, message string) (string, error)
}

type ConversationStarter interface {
	StartConversation(ctx context.Context, systemInstruction string) (Conversation, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Client struct {
	client *genai.Client
	model  string
	tracer trace.Tracer
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoCredential
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{client: client, model: model, tracer: otel.Tracer("atelier/llm")}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "llm.Generate", trace.WithAttributes(attribute.String("llm.model", c.model)))
	defer span.End()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content")
		return "", fmt.Errorf("generating content: %w", err)
	}

	return resp.Text(), nil
}

func (c *Client) StartConversation(ctx context.Context, systemInstruction string) (Conversation, error) {
	var cfg *genai.GenerateContentConfig
	if systemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		}
	}

	chat, err := c.client.Chats.Create(ctx, c.model, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("creating chat session: %w", err)
	}

	slog.Debug("Chat session started", slog.String("model", c.model))

	return &conversation{chat: chat, tracer: c.tracer, model: c.model}, nil
}

type conversation struct {
	chat   *genai.Chat
	tracer trace.Tracer
	model  string
}

func (c *conversation) Send(ctx context.Context, message string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "llm.Conversation.Send", trace.WithAttributes(attribute.String("llm.model", c.model)))
	defer span.End()

	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send message")
		return "", fmt.Errorf("sending chat message: %w", err)
	}

	return resp.Text(), nil
}

// Unavailable stands in for the client when no API key is configured. Every
// call fails, so callers serve their fallback text.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, string) (string, error) {
	return "", ErrNoCredential
}

func (Unavailable) StartConversation(context.Context, string) (Conversation, error) {
	return Unavailable{}, nil
}

func (Unavailable) Send(context.Context, string) (string, error) {
	return "", ErrNoCredential
}
