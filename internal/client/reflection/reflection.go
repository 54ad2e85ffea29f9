// Package reflection asks a language model for a short reflection or follow-up
// prompt about a journal entry. Two providers are supported: any
// OpenAI-compatible chat completions endpoint (llama.cpp, vLLM, ...) and the
// Anthropic Messages API.
package reflection

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Reflector turns entry text into one suggestion string.
type Reflector interface {
	Reflect(ctx context.Context, entryText string) (string, error)
}

const (
	ProviderChatCompletions = "openai"
	ProviderAnthropic       = "anthropic"
)

var ErrEmptyEntry = errors.New("entry has no text to reflect on")

const systemPrompt = "You are a gentle journaling companion. Read the user's diary entry and reply " +
	"with one short reflection or follow-up question (at most three sentences). " +
	"Do not summarize the entry."

// New returns the Reflector for provider.
func New(provider, baseURL, apiKey, model string) (Reflector, error) {
	switch strings.ToLower(provider) {
	case "", ProviderChatCompletions:
		return NewChatClient(baseURL, apiKey, model), nil
	case ProviderAnthropic:
		return NewAnthropicClient(baseURL, apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown reflection provider %q", provider)
	}
}

func prepare(entryText string) (string, error) {
	text := strings.TrimSpace(entryText)
	if text == "" {
		return "", ErrEmptyEntry
	}
	return text, nil
}
