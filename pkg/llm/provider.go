package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
	Images  []Image
}

// Image is raw image bytes attached to a message. Providers encode it as base64 on the wire.
type Image struct {
	Data     []byte
	MimeType string
}

// Tier selects the model class: fast for chat turns, pro for analysis.
type Tier string

const (
	TierFast Tier = "fast"
	TierPro  Tier = "pro"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override the tier's model
	Tier        Tier
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

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithTier(tier Tier) Option {
	return func(o *Options) {
		o.Tier = tier
	}
}

// NewOptions applies opts over the defaults (fast tier, provider default temperature).
func NewOptions(opts ...Option) *Options {
	options := &Options{Tier: TierFast}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Models maps tiers to concrete model names for one provider.
type Models struct {
	Fast string
	Pro  string
}

// Resolve returns the explicit model override, else the model for the requested tier.
func (m Models) Resolve(o *Options) string {
	if o.Model != "" {
		return o.Model
	}
	if o.Tier == TierPro && m.Pro != "" {
		return m.Pro
	}
	return m.Fast
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateWithImage sends one image plus an instruction as a single user turn
	GenerateWithImage(ctx context.Context, image Image, instruction string, options ...Option) (string, error)

	Name() string
}
