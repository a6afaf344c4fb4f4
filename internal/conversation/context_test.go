package conversation

import (
	"testing"

	"github.com/ppiankov/modassist/internal/classify"
	"github.com/ppiankov/modassist/internal/extract"
	"github.com/ppiankov/modassist/internal/model"
)

func TestContext_ProgressiveFill(t *testing.T) {
	extractor := extract.NewExtractor()
	ctx := NewContext(1)

	ready := ctx.Apply("I need to replace a pump", extractor.Extract("I need to replace a pump"))
	if ready {
		t.Fatal("one equipment noun must not be classifiable")
	}
	if ctx.Attributes.EquipmentType != "pump" {
		t.Errorf("expected equipment pump, got %q", ctx.Attributes.EquipmentType)
	}
	if ctx.Stage != model.StageCollectingOriginalMfg {
		t.Errorf("expected stage %s, got %s", model.StageCollectingOriginalMfg, ctx.Stage)
	}

	msg := "the existing pump is a goulds"
	ctx.Apply(msg, extractor.Extract(msg))
	if ctx.Attributes.OriginalManufacturer != "goulds" {
		t.Errorf("expected original goulds, got %q", ctx.Attributes.OriginalManufacturer)
	}
	if ctx.Stage != model.StageCollectingReplacementMfg {
		t.Errorf("expected stage %s, got %s", model.StageCollectingReplacementMfg, ctx.Stage)
	}

	msg = "we want to replace it with a grundfos"
	ctx.Apply(msg, extractor.Extract(msg))
	if ctx.Attributes.ReplacementManufacturer != "grundfos" {
		t.Errorf("expected replacement grundfos, got %q", ctx.Attributes.ReplacementManufacturer)
	}
	if ctx.Stage != model.StageCollectingEquivalence {
		t.Errorf("expected stage %s, got %s", model.StageCollectingEquivalence, ctx.Stage)
	}
	if ctx.NextQuestion() != model.FieldSpecsEqual {
		t.Errorf("expected to await the specs answer, got %q", ctx.NextQuestion())
	}

	msg = "the specifications differ"
	ready = ctx.Apply(msg, extractor.Extract(msg))
	if !ready {
		t.Fatal("manufacturer change plus an equivalence answer should be classifiable")
	}
	if ctx.Stage != model.StageReadyToClassify {
		t.Errorf("expected stage %s, got %s", model.StageReadyToClassify, ctx.Stage)
	}
	if ctx.Attributes.SpecsClaimedEqual == nil || *ctx.Attributes.SpecsClaimedEqual {
		t.Error("expected specs claimed unequal")
	}
}

func TestContext_StageSkipping(t *testing.T) {
	extractor := extract.NewExtractor()
	ctx := NewContext(1)

	msg := "replacing the fisher valve with a fisher valve, identical specifications"
	ready := ctx.Apply(msg, extractor.Extract(msg))

	if !ready {
		t.Fatal("a message supplying every field should classify in one turn")
	}
	if !ctx.Attributes.ManufacturerUnchanged() {
		t.Errorf("expected unchanged manufacturer, got %q / %q",
			ctx.Attributes.OriginalManufacturer, ctx.Attributes.ReplacementManufacturer)
	}
}

func TestContext_YesNoAnswer(t *testing.T) {
	ctx := NewContext(1)
	ctx.Attributes.EquipmentType = "valve"
	ctx.Attributes.OriginalManufacturer = "fisher"
	ctx.Attributes.ReplacementManufacturer = "fisher"
	ctx.AwaitingField = model.FieldSpecsEqual

	ready := ctx.Apply("yes", nil)

	if ctx.Attributes.SpecsClaimedEqual == nil || !*ctx.Attributes.SpecsClaimedEqual {
		t.Fatal("expected a bare 'yes' to answer the awaited specs question")
	}
	if !ready {
		t.Error("identical-replacement shortcut should now be satisfiable")
	}
}

func TestContext_MonotonicFill(t *testing.T) {
	ctx := NewContext(1)

	signals := []model.Signal{{Kind: model.KindEquipment, Value: "valve"}}
	ctx.Apply("a valve", signals)
	ctx.Apply("a valve again", signals)

	if ctx.Attributes.EquipmentType != "valve" {
		t.Errorf("expected valve, got %q", ctx.Attributes.EquipmentType)
	}
	if len(ctx.Attributes.Ambiguous) != 0 {
		t.Errorf("restating the same value must not flag ambiguity: %v", ctx.Attributes.Ambiguous)
	}
}

func TestContext_ContradictionFlagsAmbiguity(t *testing.T) {
	ctx := NewContext(1)

	ctx.Apply("", []model.Signal{{Kind: model.KindSafety, Value: string(model.SafetyGeneral)}})
	ctx.Apply("", []model.Signal{{Kind: model.KindSafety, Value: string(model.SafetyClassRelated)}})

	if ctx.Attributes.SafetyMarker != model.SafetyClassRelated {
		t.Errorf("most recent statement should win, got %s", ctx.Attributes.SafetyMarker)
	}
	found := false
	for _, f := range ctx.Attributes.Ambiguous {
		if f == "safety_marker" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected safety_marker flagged ambiguous, got %v", ctx.Attributes.Ambiguous)
	}
}

func TestContext_SameManufacturerIdentity(t *testing.T) {
	ctx := NewContext(1)
	ctx.Attributes.EquipmentType = "relay"
	ctx.Attributes.OriginalManufacturer = "abb"

	ctx.Apply("", []model.Signal{{Kind: model.KindIdentity, Value: "same_manufacturer"}})

	if ctx.Attributes.ReplacementManufacturer != "abb" {
		t.Errorf("'same manufacturer' should copy the original, got %q", ctx.Attributes.ReplacementManufacturer)
	}
	if !ctx.Attributes.IdentityClaimed {
		t.Error("expected the identity claim to be recorded")
	}
}

func TestContext_UnspecifiedManufacturersFillAwaitedFieldFirst(t *testing.T) {
	ctx := NewContext(1)
	ctx.Attributes.EquipmentType = "motor"
	ctx.Attributes.OriginalManufacturer = "westinghouse"
	ctx.AwaitingField = model.FieldReplacementManufacturer

	ctx.Apply("", []model.Signal{{Kind: model.KindManufacturer, Value: "abb"}})

	if ctx.Attributes.ReplacementManufacturer != "abb" {
		t.Errorf("awaited field should absorb the roleless manufacturer, got %q",
			ctx.Attributes.ReplacementManufacturer)
	}
}

func TestContext_IsResettable(t *testing.T) {
	extractor := extract.NewExtractor()

	ctx := NewContext(1)
	msg := "replacing the pump"
	ctx.Apply(msg, extractor.Extract(msg))

	tests := []struct {
		message string
		want    bool
	}{
		{"clear", true},
		{"reset", true},
		{"ok, different question: what about a breaker", true},
		{"what about the valve", true},
		{"the valve feeding the pump also leaks", false}, // mentions current equipment
		{"who manufactured it?", false},
	}

	for _, tc := range tests {
		got := ctx.IsResettable(tc.message, extractor.Extract(tc.message))
		if got != tc.want {
			t.Errorf("IsResettable(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}

func TestContext_NotResettableBeforeEquipmentKnown(t *testing.T) {
	extractor := extract.NewExtractor()
	ctx := NewContext(1)

	msg := "I want to replace a valve"
	if ctx.IsResettable(msg, extractor.Extract(msg)) {
		t.Error("first equipment mention must start the scenario, not reset it")
	}
}

func TestContext_ArchiveIsTerminal(t *testing.T) {
	engine := classify.NewEngine()
	ctx := NewContext(3)
	ctx.Attributes.EquipmentType = "pump"
	ctx.Attributes.OriginalManufacturer = "goulds"
	ctx.Attributes.ReplacementManufacturer = "grundfos"

	record := ctx.Archive(engine)

	if record.ID == "" {
		t.Error("expected a generated archive ID")
	}
	if record.ScenarioNumber != 3 {
		t.Errorf("expected scenario number 3, got %d", record.ScenarioNumber)
	}
	if record.TitleSummary != "pump: goulds to grundfos" {
		t.Errorf("unexpected title summary %q", record.TitleSummary)
	}
	if record.Classification.DesignType != model.DesignTypeIII {
		t.Errorf("expected best-available Type III, got %s", record.Classification.DesignType)
	}
	if ctx.Stage != model.StageArchived {
		t.Errorf("expected archived stage, got %s", ctx.Stage)
	}
	if ctx.Apply("more text", []model.Signal{{Kind: model.KindEquipment, Value: "fan"}}) {
		t.Error("an archived context must ignore further messages")
	}
	if ctx.Attributes.EquipmentType != "pump" {
		t.Error("an archived context must not mutate")
	}
}

func TestContext_IdempotentReplayAtReady(t *testing.T) {
	extractor := extract.NewExtractor()
	ctx := NewContext(1)

	msg := "replacing the fisher valve with a fisher valve, identical specifications"
	ctx.Apply(msg, extractor.Extract(msg))
	before := ctx.Attributes

	ctx.Apply(msg, extractor.Extract(msg))

	if ctx.Stage != model.StageReadyToClassify {
		t.Errorf("expected stage to stay ready, got %s", ctx.Stage)
	}
	if ctx.Attributes.EquipmentType != before.EquipmentType ||
		ctx.Attributes.OriginalManufacturer != before.OriginalManufacturer ||
		ctx.Attributes.ReplacementManufacturer != before.ReplacementManufacturer {
		t.Error("replaying the same message must not change the record")
	}
	if len(ctx.Attributes.Ambiguous) != 0 {
		t.Errorf("replay must not flag ambiguity: %v", ctx.Attributes.Ambiguous)
	}
}
