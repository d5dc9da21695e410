package llm

import (
	"context"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// FileRef points the model at a previously uploaded file.
type FileRef struct {
	URL      string
	MimeType string
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Generate sends a single prompt to the model and returns the response
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateFromFiles sends a prompt together with file references,
	// e.g. for text extraction from an uploaded document
	GenerateFromFiles(ctx context.Context, prompt string, files []FileRef, options ...Option) (string, error)
}
