package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/modassist/internal/cache"
	"github.com/ppiankov/modassist/internal/model"
)

// mockProvider is a controllable provider for phraser tests
type mockProvider struct {
	text  string
	err   error
	calls int
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &GenerateResponse{Text: m.text, Model: "mock-model"}, nil
}

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return true }

func TestPhraser_DisabledUsesFallback(t *testing.T) {
	phraser, err := NewPhraser(Config{Provider: ""}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if phraser.IsEnabled() {
		t.Fatal("empty provider name should disable the phraser")
	}

	got := phraser.FollowUp(context.Background(), FollowUpRequest{
		Field:      model.FieldOriginalManufacturer,
		Attributes: model.ScenarioAttributes{EquipmentType: "pump"},
	})
	if got != "Who manufactured the existing pump?" {
		t.Errorf("unexpected fallback phrasing: %q", got)
	}
}

func TestPhraser_UnknownProviderErrors(t *testing.T) {
	if _, err := NewPhraser(Config{Provider: "frontier9000"}, nil, nil); err == nil {
		t.Fatal("expected an error for an unknown provider name")
	}
}

func TestPhraser_ProviderTextUsed(t *testing.T) {
	phraser := &Phraser{
		provider: &mockProvider{text: "Which company built the pump that is installed today?"},
		config:   Config{Timeout: 1},
	}

	got := phraser.FollowUp(context.Background(), FollowUpRequest{
		Field:      model.FieldOriginalManufacturer,
		Attributes: model.ScenarioAttributes{EquipmentType: "pump"},
	})
	if !strings.Contains(got, "Which company built") {
		t.Errorf("expected the provider phrasing, got %q", got)
	}
}

func TestPhraser_ProviderErrorFallsBack(t *testing.T) {
	phraser := &Phraser{
		provider: &mockProvider{err: errors.New("connection refused")},
		config:   Config{Timeout: 1},
	}

	got := phraser.FollowUp(context.Background(), FollowUpRequest{Field: model.FieldSpecsEqual})
	if got != "Are the replacement's specifications identical to the original's?" {
		t.Errorf("expected fallback phrasing, got %q", got)
	}
}

func TestPhraser_EmptyProviderTextFallsBack(t *testing.T) {
	phraser := &Phraser{
		provider: &mockProvider{text: ""},
		config:   Config{Timeout: 1},
	}

	got := phraser.FollowUp(context.Background(), FollowUpRequest{Field: model.FieldEquipmentType})
	if got == "" {
		t.Fatal("FollowUp must never return empty text")
	}
	if got != "What equipment does this change involve?" {
		t.Errorf("expected fallback phrasing, got %q", got)
	}
}

func TestPhraser_CachesPhrasing(t *testing.T) {
	provider := &mockProvider{text: "What pump is in place now?"}
	phraser := &Phraser{
		provider: provider,
		cache:    cache.NewMemoryCache(time.Minute, time.Minute),
		config:   Config{Timeout: 1},
	}

	req := FollowUpRequest{
		Field:      model.FieldOriginalManufacturer,
		Attributes: model.ScenarioAttributes{EquipmentType: "pump"},
	}

	first := phraser.FollowUp(context.Background(), req)
	second := phraser.FollowUp(context.Background(), req)

	if first != second {
		t.Errorf("cached phrasing differs: %q vs %q", first, second)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestPhraser_FieldNoneSkipsProvider(t *testing.T) {
	provider := &mockProvider{text: "should not be used"}
	phraser := &Phraser{provider: provider, config: Config{Timeout: 1}}

	got := phraser.FollowUp(context.Background(), FollowUpRequest{Field: model.FieldNone})
	if got != "Anything else to add about this change?" {
		t.Errorf("unexpected phrasing %q", got)
	}
	if provider.calls != 0 {
		t.Errorf("provider must not be called for FieldNone, got %d calls", provider.calls)
	}
}

type blockedWaiter struct{}

func (blockedWaiter) Wait(ctx context.Context, key string) error {
	return errors.New("rate limit exhausted")
}

func TestPhraser_LimiterErrorFallsBack(t *testing.T) {
	provider := &mockProvider{text: "should not be used"}
	phraser := &Phraser{
		provider: provider,
		limiter:  blockedWaiter{},
		config:   Config{Timeout: 1},
	}

	got := phraser.FollowUp(context.Background(), FollowUpRequest{Field: model.FieldEquivalencyDocs})
	if got != "Is equivalency documentation available for the replacement?" {
		t.Errorf("expected fallback phrasing, got %q", got)
	}
	if provider.calls != 0 {
		t.Errorf("provider must not be called when the limiter refuses, got %d calls", provider.calls)
	}
}

func TestFallbackQuestion_NeverEmpty(t *testing.T) {
	fields := []model.Field{
		model.FieldNone,
		model.FieldEquipmentType,
		model.FieldOriginalManufacturer,
		model.FieldReplacementManufacturer,
		model.FieldSpecsEqual,
		model.FieldEquivalencyDocs,
	}
	for _, field := range fields {
		if FallbackQuestion(field, model.ScenarioAttributes{}) == "" {
			t.Errorf("empty fallback for field %q", field)
		}
	}
}
