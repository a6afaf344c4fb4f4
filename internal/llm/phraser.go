package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/modassist/internal/cache"
	"github.com/ppiankov/modassist/internal/model"
)

// RateWaiter throttles outbound generation calls. Implemented by
// worker.Limiter; nil disables throttling.
type RateWaiter interface {
	Wait(ctx context.Context, key string) error
}

// Phraser asks the text-generation collaborator to phrase the next
// follow-up question. The collaborator is optional and treated as an
// opaque black box that may be slow or down: every call is bounded by
// the configured timeout and falls back to a deterministic local
// question, so the caller always gets a response and never loses state.
type Phraser struct {
	provider Provider
	cache    cache.Cache // phrasing cache keyed by prompt hash (optional)
	limiter  RateWaiter  // optional
	config   Config
}

// NewPhraser creates a phraser. An empty provider name yields a phraser
// that always answers locally.
func NewPhraser(config Config, store cache.Cache, limiter RateWaiter) (*Phraser, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Phraser{
		provider: provider,
		cache:    store,
		limiter:  limiter,
		config:   config,
	}, nil
}

// IsEnabled returns true if a provider is configured
func (p *Phraser) IsEnabled() bool {
	return p.provider != nil
}

// ProviderName returns the active provider name, or "" when disabled
func (p *Phraser) ProviderName() string {
	if p.provider == nil {
		return ""
	}
	return p.provider.Name()
}

// FollowUpRequest describes the question the system needs answered
type FollowUpRequest struct {
	Field      model.Field
	Attributes model.ScenarioAttributes
}

// FollowUp returns the phrasing for the next question. It never fails
// and never returns empty text: on provider absence, error, or timeout
// the deterministic local phrasing is used instead.
func (p *Phraser) FollowUp(ctx context.Context, req FollowUpRequest) string {
	fallback := FallbackQuestion(req.Field, req.Attributes)
	if p.provider == nil || req.Field == model.FieldNone {
		return fallback
	}

	prompt := buildFollowUpPrompt(req)

	key := cache.CacheKey(prompt)
	if p.cache != nil {
		if cached, found := p.cache.Get(key); found {
			return string(cached)
		}
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, p.provider.Name()); err != nil {
			return fallback
		}
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.provider.Generate(genCtx, GenerateRequest{Prompt: prompt})
	if err != nil || resp == nil || resp.Text == "" {
		return fallback
	}

	if p.cache != nil {
		_ = p.cache.Set(key, []byte(resp.Text), 0) // default TTL
	}
	return resp.Text
}

// buildFollowUpPrompt gives the collaborator just enough scenario context
// to phrase one question about the awaited field.
func buildFollowUpPrompt(req FollowUpRequest) string {
	a := req.Attributes
	known := ""
	if a.EquipmentType != "" {
		known += fmt.Sprintf("- Equipment: %s\n", a.EquipmentType)
	}
	if a.OriginalManufacturer != "" {
		known += fmt.Sprintf("- Original manufacturer: %s\n", a.OriginalManufacturer)
	}
	if a.ReplacementManufacturer != "" {
		known += fmt.Sprintf("- Replacement manufacturer: %s\n", a.ReplacementManufacturer)
	}
	if known == "" {
		known = "(nothing yet)\n"
	}

	return fmt.Sprintf(`An engineer is describing a proposed facility change. Known so far:
%s
Phrase ONE short question asking for: %s.
Ask only the question, no preamble.`, known, fieldDescription(req.Field))
}

// FallbackQuestion is the deterministic local phrasing used when the
// collaborator is disabled, slow, or failing.
func FallbackQuestion(field model.Field, attrs model.ScenarioAttributes) string {
	equipment := attrs.EquipmentType
	if equipment == "" {
		equipment = "equipment"
	}
	switch field {
	case model.FieldEquipmentType:
		return "What equipment does this change involve?"
	case model.FieldOriginalManufacturer:
		return fmt.Sprintf("Who manufactured the existing %s?", equipment)
	case model.FieldReplacementManufacturer:
		return fmt.Sprintf("Who manufactures the proposed replacement %s?", equipment)
	case model.FieldSpecsEqual:
		return "Are the replacement's specifications identical to the original's?"
	case model.FieldEquivalencyDocs:
		return "Is equivalency documentation available for the replacement?"
	default:
		return "Anything else to add about this change?"
	}
}

func fieldDescription(field model.Field) string {
	switch field {
	case model.FieldEquipmentType:
		return "the type of equipment being changed"
	case model.FieldOriginalManufacturer:
		return "the manufacturer of the existing equipment"
	case model.FieldReplacementManufacturer:
		return "the manufacturer of the proposed replacement"
	case model.FieldSpecsEqual:
		return "whether the replacement's specifications are identical to the original's"
	case model.FieldEquivalencyDocs:
		return "whether equivalency documentation exists for the replacement"
	default:
		return "any remaining details of the change"
	}
}
