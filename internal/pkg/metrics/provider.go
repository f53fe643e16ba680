package metrics

import (
	"context"
	"time"

	"ai-workspace-be/pkg/llm"
)

// InstrumentedProvider counts and times every call made through the wrapped provider.
type InstrumentedProvider struct {
	next llm.LLMProvider
}

var _ llm.LLMProvider = (*InstrumentedProvider)(nil)

func InstrumentProvider(next llm.LLMProvider) *InstrumentedProvider {
	return &InstrumentedProvider{next: next}
}

func (p *InstrumentedProvider) observe(tier llm.Tier, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	llmCallsTotal.WithLabelValues(p.next.Name(), string(tier), result).Inc()
	llmCallDuration.WithLabelValues(p.next.Name(), string(tier)).Observe(time.Since(start).Seconds())
}

func (p *InstrumentedProvider) Name() string { return p.next.Name() }

func (p *InstrumentedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	start := time.Now()
	text, err := p.next.Chat(ctx, history, opts...)
	p.observe(llm.NewOptions(opts...).Tier, start, err)
	return text, err
}

func (p *InstrumentedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	start := time.Now()
	text, err := p.next.Generate(ctx, prompt, opts...)
	p.observe(llm.NewOptions(opts...).Tier, start, err)
	return text, err
}

func (p *InstrumentedProvider) GenerateWithImage(ctx context.Context, image llm.Image, instruction string, opts ...llm.Option) (string, error) {
	start := time.Now()
	text, err := p.next.GenerateWithImage(ctx, image, instruction, opts...)
	p.observe(llm.NewOptions(opts...).Tier, start, err)
	return text, err
}
