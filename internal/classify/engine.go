// Package classify maps a scenario's attributes to a Modification
// Traveler verdict and a design-complexity tier.
//
// The engine is a pure function: total, deterministic, and incapable of
// failing. Rules live in an ordered table and are evaluated top to
// bottom, first match wins; a terminal catch-all guarantees that every
// attribute combination, including all-unknown, yields a result.
package classify

import (
	"fmt"

	"github.com/ppiankov/modassist/internal/model"
)

// rule is one row of the decision table
type rule struct {
	name  string
	when  func(a model.ScenarioAttributes) bool
	build func(a model.ScenarioAttributes) model.ClassificationResult
}

// Engine evaluates the decision table
type Engine struct {
	rules []rule
}

// NewEngine creates the engine with the standard rule table
func NewEngine() *Engine {
	return &Engine{rules: []rule{
		{name: "not_yet_classifiable", when: notYetClassifiable, build: buildNotYetClassifiable},
		{name: "identical_replacement", when: identicalReplacement, build: buildIdenticalReplacement},
		{name: "temporary_change", when: temporaryChange, build: buildTemporaryChange},
		{name: "manufacturer_change", when: manufacturerChange, build: buildManufacturerChange},
		{name: "new_capability", when: newCapability, build: buildNewCapability},
		{name: "generic_modification", when: always, build: buildGenericModification},
	}}
}

// Classify returns the verdict for the given attributes. It never fails:
// unrecognized combinations fall through to the neutral default.
func (e *Engine) Classify(attrs model.ScenarioAttributes) model.ClassificationResult {
	for _, r := range e.rules {
		if !r.when(attrs) {
			continue
		}
		result := r.build(attrs)
		result.RuleName = r.name
		result.Confidence = clamp01(result.Confidence)

		// Safety-marker elevation is independent of the tier: it never
		// changes the design type, only surfaces in the reason.
		if attrs.SafetyMarker.IsElevated() {
			result.Reason += fmt.Sprintf("; %s equipment requires enhanced engineering review regardless of design type",
				attrs.SafetyMarker)
		}
		return result
	}

	// Unreachable: the table ends in a catch-all.
	return buildGenericModification(attrs)
}

// --- Rule predicates ---

func notYetClassifiable(a model.ScenarioAttributes) bool {
	return a.EquipmentType == "" && !a.ActionSeen
}

func identicalReplacement(a model.ScenarioAttributes) bool {
	if a.SpecsClaimedEqual != nil && !*a.SpecsClaimedEqual {
		return false
	}
	if a.ManufacturerUnchanged() {
		return true
	}
	// A permanent change claimed identical, with no manufacturer change on
	// record, is treated as a like-for-like replacement.
	return a.IsTemporary != nil && !*a.IsTemporary && a.IdentityClaimed && !a.ManufacturerChanged()
}

func temporaryChange(a model.ScenarioAttributes) bool {
	return a.IsTemporary != nil && *a.IsTemporary && a.HasRestorationPlan
}

func manufacturerChange(a model.ScenarioAttributes) bool {
	return a.ManufacturerChanged()
}

func newCapability(a model.ScenarioAttributes) bool {
	return a.NewCapability
}

func always(model.ScenarioAttributes) bool { return true }

// --- Result builders ---

func buildNotYetClassifiable(model.ScenarioAttributes) model.ClassificationResult {
	return model.ClassificationResult{
		MTRequirement: model.MTUndecided,
		DesignType:    model.DesignUnknown,
		Reason:        "no equipment or change action identified yet",
		Confidence:    0,
	}
}

func buildIdenticalReplacement(a model.ScenarioAttributes) model.ClassificationResult {
	corroborating := 0
	if a.ManufacturerUnchanged() {
		corroborating++
	}
	if a.SpecsClaimedEqual != nil && *a.SpecsClaimedEqual {
		corroborating++
	}
	if a.SamePartNumber {
		corroborating++
	}

	confidence := 0.5 + 0.15*float64(corroborating)
	if confidence > 0.95 {
		confidence = 0.95
	}

	return model.ClassificationResult{
		MTRequirement: model.MTMinimal,
		DesignType:    model.DesignTypeV,
		Reason: fmt.Sprintf("identical replacement: %d of 3 identity markers corroborated (manufacturer, specifications, part number)",
			corroborating),
		Confidence: confidence,
	}
}

func buildTemporaryChange(a model.ScenarioAttributes) model.ClassificationResult {
	confidence := 0.5
	reason := "temporary change with a restoration plan: handled under the temporary-change process, not an MT"
	if a.DurationStated {
		confidence = 0.7
		reason += " (duration stated)"
	}
	return model.ClassificationResult{
		MTRequirement: model.MTNotRequired,
		DesignType:    model.DesignTypeIV,
		Reason:        reason,
		Confidence:    confidence,
	}
}

func buildManufacturerChange(a model.ScenarioAttributes) model.ClassificationResult {
	confidence := 0.4
	reason := fmt.Sprintf("replacement manufacturer %q differs from original %q",
		a.ReplacementManufacturer, a.OriginalManufacturer)

	hasDocs := a.HasEquivalencyDocs != nil && *a.HasEquivalencyDocs
	if hasDocs {
		confidence += 0.3
		reason += "; equivalency documentation available"
	} else if a.SafetyMarker.IsElevated() {
		confidence -= 0.1
		reason += "; no equivalency documentation for safety-significant equipment"
	}

	return model.ClassificationResult{
		MTRequirement: model.MTRequired,
		DesignType:    model.DesignTypeIII,
		Reason:        reason,
		Confidence:    confidence,
	}
}

func buildNewCapability(model.ScenarioAttributes) model.ClassificationResult {
	// Highest-scrutiny category: never auto-resolves above 0.6 without
	// explicit documentation attributes.
	return model.ClassificationResult{
		MTRequirement: model.MTRequired,
		DesignType:    model.DesignTypeI,
		Reason:        "new capability or digital functionality introduced",
		Confidence:    0.6,
	}
}

func buildGenericModification(model.ScenarioAttributes) model.ClassificationResult {
	// Deliberate neutral default rather than a guess.
	return model.ClassificationResult{
		MTRequirement: model.MTRequired,
		DesignType:    model.DesignTypeII,
		Reason:        "generic modification with no replacement-identity claim; needs review",
		Confidence:    0.5,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
