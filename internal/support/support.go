// Package support generates the free-form empathetic replies for the
// "healing corner" conversation mode.
package support

import (
	"context"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Responder turns a user's free-text message into a reply. Implementations
// must respect ctx; latency is bounded by the caller's request deadline.
type Responder interface {
	Reply(ctx context.Context, text string) (string, error)
}

const systemPrompt = `You are a warm, non-judgmental listener inside a ` +
	`wellness chat bot for students. Reply in 2-4 short sentences. ` +
	`Acknowledge the feeling, never diagnose, never lecture. If the message ` +
	`suggests the person may be in danger, gently mention the 1323 hotline.`

// LLM answers through an OpenAI-compatible model.
type LLM struct {
	model   llms.Model
	timeout time.Duration
}

func NewLLM(apiKey, model string) (*LLM, error) {
	m, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return &LLM{model: m, timeout: 20 * time.Second}, nil
}

func (l *LLM) Reply(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	out, err := llms.GenerateFromSinglePrompt(ctx, l.model,
		systemPrompt+"\n\nUser: "+text,
		llms.WithMaxTokens(256),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Static is the fallback when no model is configured.
type Static struct{}

func (Static) Reply(_ context.Context, _ string) (string, error) {
	return "I hear you 🤍 Thank you for telling me.\n" +
		"Whatever you're carrying right now, you don't have to carry it alone.\n" +
		"If it ever feels unsafe, you can call 1323 any time.", nil
}

// FromConfig picks the LLM responder when a key is configured, otherwise the
// static one.
func FromConfig(apiKey, model string) (Responder, error) {
	if apiKey == "" {
		return Static{}, nil
	}
	return NewLLM(apiKey, model)
}
