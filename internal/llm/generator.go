// Package llm talks to a language model to generate follow-up questions,
// score answers and suggest recommendations.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

var ErrUnknownProvider = errors.New("unknown llm provider")

// Generator returns the text completion for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	Provider  string
	APIKey    string
	Model     string
	OllamaURL string
	Timeout   time.Duration
}

// NewGenerator builds the generator for opts.Provider. It returns nil, nil
// when the provider is empty or "none".
func NewGenerator(ctx context.Context, opts Options) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderGemini:
		return NewGeminiGenerator(ctx, opts.APIKey, opts.Model)
	case ProviderOllama:
		return NewOllamaGenerator(opts.OllamaURL, opts.Model, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, opts.Provider)
	}
}
