// Package pipeline wires the extractor, conversation state machine,
// decision engine, and aggregator into the single processMessage entry
// point the calling layer consumes.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/modassist/internal/cache"
	"github.com/ppiankov/modassist/internal/classify"
	"github.com/ppiankov/modassist/internal/conversation"
	"github.com/ppiankov/modassist/internal/extract"
	"github.com/ppiankov/modassist/internal/llm"
	"github.com/ppiankov/modassist/internal/model"
	"github.com/ppiankov/modassist/internal/score"
	"github.com/ppiankov/modassist/internal/worker"
)

// Engine orchestrates one message through the full screening flow
type Engine struct {
	extractor  *extract.Extractor
	classifier *classify.Engine
	aggregator *score.Aggregator
	sessions   *conversation.Manager
	phraser    *llm.Phraser
	renderer   *Renderer
	config     *model.Config
}

// NewEngine creates an engine with the given configuration
func NewEngine(cfg *model.Config) *Engine {
	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	var limiter llm.RateWaiter
	if cfg.Concurrency.LLMRequestsPerSec > 0 {
		limiter = worker.NewLimiter(cfg.Concurrency.LLMRequestsPerSec, cfg.Concurrency.LLMBurst)
	}

	phraser, err := llm.NewPhraser(llm.ConfigFromModel(cfg.LLM), store, limiter)
	if err != nil {
		// The collaborator is optional: fall back to local phrasing only.
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		phraser, _ = llm.NewPhraser(llm.Config{}, store, nil)
	}

	return &Engine{
		extractor:  extract.NewExtractor(),
		classifier: classify.NewEngine(),
		aggregator: score.NewAggregator(),
		sessions:   conversation.NewManager(cfg.Session),
		phraser:    phraser,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}
}

// ProcessMessage runs one inbound message to completion. Every input,
// however incomplete or contradictory, yields a structured result: the
// only possible error is a cancelled context.
func (e *Engine) ProcessMessage(ctx context.Context, sessionID, text string) (*model.TurnResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := e.sessions.Session(sessionID)
	signals := e.extractor.ExtractWithContext(text, s.Prior())

	reset := s.Context.IsResettable(text, signals)
	if reset {
		s.Reset(e.classifier)
	}

	ready := s.Context.Apply(text, signals)

	result := &model.TurnResult{
		SessionID:      s.ID,
		ScenarioNumber: s.Context.ScenarioNumber,
		Stage:          s.Context.Stage,
		AwaitingField:  s.Context.NextQuestion(),
		Attributes:     s.Context.Attributes,
		Signals:        signals,
		History:        s.History,
		Reset:          reset,
	}

	if ready {
		classification := e.classifier.Classify(s.Context.Attributes)
		assessment := e.aggregator.Aggregate(classification, s.Context.Attributes)
		result.Classification = &classification
		result.Assessment = &assessment
		result.ResponseText = verdictText(classification, assessment)
	} else {
		result.ResponseText = e.phraser.FollowUp(ctx, llm.FollowUpRequest{
			Field:      s.Context.NextQuestion(),
			Attributes: s.Context.Attributes,
		})
	}

	s.Remember(model.Message{Text: text, Sender: "user", Timestamp: time.Now().UTC()})
	s.Remember(model.Message{Text: result.ResponseText, Sender: "assistant", Timestamp: time.Now().UTC()})

	return result, nil
}

// ResetSession archives the live scenario and starts a fresh one.
// Equivalent to a reset trigger firing; classification outputs are
// derived values, so nothing needs rolling back.
func (e *Engine) ResetSession(sessionID string) {
	s := e.sessions.Session(sessionID)
	s.Reset(e.classifier)
}

// Finalize confirms the session is finished: the live scenario is
// archived and the complete report returned.
func (e *Engine) Finalize(sessionID string, final *model.TurnResult, turns int) *model.SessionReport {
	s := e.sessions.Session(sessionID)
	if s.Context.Stage != model.StageArchived {
		s.Finalize(e.classifier)
	}
	return &model.SessionReport{
		SessionID:   s.ID,
		GeneratedAt: time.Now().UTC(),
		Turns:       turns,
		Final:       final,
		History:     s.History,
	}
}

// RenderReport renders the report to the specified outputs
func (e *Engine) RenderReport(report *model.SessionReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := e.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := e.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	return nil
}

// verdictText composes the deterministic verdict line handed back once a
// scenario is classifiable.
func verdictText(c model.ClassificationResult, a model.Assessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design Type %s", c.DesignType)

	switch c.MTRequirement {
	case model.MTRequired:
		b.WriteString("; a Modification Traveler is required")
	case model.MTMinimal:
		b.WriteString("; minimal MT documentation applies")
	case model.MTNotRequired:
		b.WriteString("; no Modification Traveler is required")
	}

	fmt.Fprintf(&b, ". %s.", capitalize(c.Reason))
	fmt.Fprintf(&b, " Confidence %.2f (%s).", a.Combined, bandLabel(a.Band))

	return b.String()
}

func bandLabel(band model.RiskBand) string {
	switch band {
	case model.BandNeedsReview:
		return "low confidence, needs review"
	case model.BandHigh:
		return "high confidence"
	default:
		return "moderate confidence"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
