// Package conversation owns the per-session scenario lifecycle: it merges
// extracted signals into the accumulating attribute record, decides which
// field to ask about next, detects when a new scenario has begun, and
// archives finished scenarios into the session history.
package conversation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ppiankov/modassist/internal/classify"
	"github.com/ppiankov/modassist/internal/model"
)

// Context tracks one scenario across conversational turns. It is mutable
// state exclusively owned by one session; messages are processed to
// completion one at a time, so no locking is needed.
type Context struct {
	Attributes     model.ScenarioAttributes
	Stage          model.Stage
	ScenarioNumber int
	AwaitingField  model.Field
}

// NewContext creates a fresh scenario context
func NewContext(number int) *Context {
	return &Context{
		Stage:          model.StageCollectingEquipment,
		ScenarioNumber: number,
		AwaitingField:  model.FieldEquipmentType,
	}
}

// Apply merges a message's signals into the attribute record and advances
// the stage. Fields fill monotonically: a set field is only overwritten by
// an explicit contradicting signal, never silently cleared. Apply returns
// true when the scenario became classifiable on this turn.
func (c *Context) Apply(message string, signals []model.Signal) bool {
	if c.Stage == model.StageArchived {
		return false
	}

	c.applyAnswer(message)
	c.applySignals(signals)
	c.advance()
	return c.Stage == model.StageReadyToClassify
}

// applyAnswer interprets a bare yes/no reply to the field the machine is
// currently awaiting. Richer phrasings are handled by the extractor's
// equivalence vocabulary instead.
func (c *Context) applyAnswer(message string) {
	answer, ok := parseYesNo(message)
	if !ok {
		return
	}
	switch c.AwaitingField {
	case model.FieldSpecsEqual:
		c.Attributes.SpecsClaimedEqual = &answer
	case model.FieldEquivalencyDocs:
		c.Attributes.HasEquivalencyDocs = &answer
	}
}

func (c *Context) applySignals(signals []model.Signal) {
	var unspecifiedMfgs []string
	for _, sig := range signals {
		switch sig.Kind {
		case model.KindEquipment:
			c.setEquipment(sig.Value)
		case model.KindManufacturer:
			switch sig.Role {
			case model.RoleOriginal:
				c.setManufacturer(&c.Attributes.OriginalManufacturer, sig.Value, "original_manufacturer")
			case model.RoleReplacement:
				c.setManufacturer(&c.Attributes.ReplacementManufacturer, sig.Value, "replacement_manufacturer")
			default:
				unspecifiedMfgs = append(unspecifiedMfgs, sig.Value)
			}
		case model.KindSafety:
			c.setSafety(model.SafetyClass(sig.Value))
		case model.KindIdentity:
			c.Attributes.IdentityClaimed = true
			if sig.Value == model.ValueSamePartNumber {
				c.Attributes.SamePartNumber = true
			}
			if sig.Value == "same_manufacturer" && c.Attributes.OriginalManufacturer != "" &&
				c.Attributes.ReplacementManufacturer == "" {
				c.Attributes.ReplacementManufacturer = c.Attributes.OriginalManufacturer
			}
		case model.KindDuration:
			c.applyDuration(sig.Value)
		case model.KindEquivalence:
			c.applyEquivalence(sig.Value)
		case model.KindCapability:
			c.Attributes.NewCapability = true
		case model.KindAction:
			c.Attributes.ActionSeen = true
		}
	}
	c.assignUnspecifiedManufacturers(unspecifiedMfgs)
}

func (c *Context) setEquipment(value string) {
	switch {
	case c.Attributes.EquipmentType == "":
		c.Attributes.EquipmentType = value
	case c.Attributes.EquipmentType != value:
		// Contradiction within the same scenario (reset detection has
		// already declined to fire). Most recent explicit statement wins.
		c.Attributes.EquipmentType = value
		c.markAmbiguous("equipment_type")
	}
}

func (c *Context) setManufacturer(field *string, value, name string) {
	switch {
	case *field == "":
		*field = value
	case *field != value:
		*field = value
		c.markAmbiguous(name)
	}
}

func (c *Context) setSafety(class model.SafetyClass) {
	switch {
	case c.Attributes.SafetyMarker == model.SafetyUnknown:
		c.Attributes.SafetyMarker = class
	case c.Attributes.SafetyMarker != class:
		c.Attributes.SafetyMarker = class
		c.markAmbiguous("safety_marker")
	}
}

func (c *Context) applyDuration(value string) {
	switch value {
	case model.ValueTemporary:
		c.setBool(&c.Attributes.IsTemporary, true, "is_temporary")
	case model.ValuePermanent:
		c.setBool(&c.Attributes.IsTemporary, false, "is_temporary")
	case model.ValueRestorationPlan:
		c.Attributes.HasRestorationPlan = true
	case model.ValueDurationStated:
		c.Attributes.DurationStated = true
	}
}

func (c *Context) applyEquivalence(value string) {
	switch value {
	case model.ValueSpecsEqual:
		c.setBool(&c.Attributes.SpecsClaimedEqual, true, "specs_claimed_equal")
	case model.ValueSpecsNotEqual:
		c.setBool(&c.Attributes.SpecsClaimedEqual, false, "specs_claimed_equal")
	case model.ValueHasEquivDocs:
		c.setBool(&c.Attributes.HasEquivalencyDocs, true, "has_equivalency_docs")
	case model.ValueNoEquivDocs:
		c.setBool(&c.Attributes.HasEquivalencyDocs, false, "has_equivalency_docs")
	}
}

func (c *Context) setBool(field **bool, value bool, name string) {
	switch {
	case *field == nil:
		*field = &value
	case **field != value:
		*field = &value
		c.markAmbiguous(name)
	}
}

// assignUnspecifiedManufacturers places manufacturer signals that carried
// no role cue: the awaited field first, then original before replacement.
func (c *Context) assignUnspecifiedManufacturers(names []string) {
	for _, name := range names {
		switch {
		case c.AwaitingField == model.FieldOriginalManufacturer && c.Attributes.OriginalManufacturer == "":
			c.Attributes.OriginalManufacturer = name
		case c.AwaitingField == model.FieldReplacementManufacturer && c.Attributes.ReplacementManufacturer == "":
			c.Attributes.ReplacementManufacturer = name
		case c.Attributes.OriginalManufacturer == "":
			c.Attributes.OriginalManufacturer = name
		case c.Attributes.ReplacementManufacturer == "" && name != c.Attributes.OriginalManufacturer:
			c.Attributes.ReplacementManufacturer = name
		}
	}
}

func (c *Context) markAmbiguous(field string) {
	for _, f := range c.Attributes.Ambiguous {
		if f == field {
			return
		}
	}
	c.Attributes.Ambiguous = append(c.Attributes.Ambiguous, field)
}

// advance moves the stage to the most specific still-unknown field. A
// message that supplied several fields at once skips stages naturally.
func (c *Context) advance() {
	a := c.Attributes
	switch {
	case c.readyToClassify():
		c.Stage = model.StageReadyToClassify
		c.AwaitingField = model.FieldNone
	case a.EquipmentType == "":
		c.Stage = model.StageCollectingEquipment
		c.AwaitingField = model.FieldEquipmentType
	case a.OriginalManufacturer == "":
		c.Stage = model.StageCollectingOriginalMfg
		c.AwaitingField = model.FieldOriginalManufacturer
	case a.ReplacementManufacturer == "":
		c.Stage = model.StageCollectingReplacementMfg
		c.AwaitingField = model.FieldReplacementManufacturer
	case a.SpecsClaimedEqual == nil:
		c.Stage = model.StageCollectingEquivalence
		c.AwaitingField = model.FieldSpecsEqual
	default:
		c.Stage = model.StageCollectingEquivalence
		c.AwaitingField = model.FieldEquivalencyDocs
	}
}

// readyToClassify is true once a shortcut tier is already satisfiable or
// the manufacturer-difference path has an equivalence answer.
func (c *Context) readyToClassify() bool {
	a := c.Attributes
	// Identical-replacement shortcut (Type V).
	if a.ManufacturerUnchanged() && a.SpecsClaimedEqual != nil {
		return true
	}
	// Temporary-change shortcut (Type IV).
	if a.IsTemporary != nil && *a.IsTemporary && a.HasRestorationPlan {
		return true
	}
	// New-capability introduction needs no further fields (Type I).
	if a.NewCapability && a.EquipmentType != "" {
		return true
	}
	// Manufacturer difference plus an equivalence answer.
	if a.ManufacturerChanged() && (a.SpecsClaimedEqual != nil || a.HasEquivalencyDocs != nil) {
		return true
	}
	return false
}

// NextQuestion returns the field the system should prompt the user for,
// or FieldNone when nothing further is needed.
func (c *Context) NextQuestion() model.Field {
	return c.AwaitingField
}

// IsResettable reports whether the message describes a clearly different
// scenario than the current context: an explicit new-scenario phrase, a
// clear/reset command, or a different equipment type with no carryover
// reference to the current one.
func (c *Context) IsResettable(message string, signals []model.Signal) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "clear" || lower == "reset" {
		return true
	}
	for _, sig := range signals {
		if sig.Kind == model.KindNewScenario {
			return true
		}
	}
	if c.Attributes.EquipmentType == "" {
		return false
	}
	for _, sig := range signals {
		if sig.Kind == model.KindEquipment && sig.Value != c.Attributes.EquipmentType {
			// Mentioning the current equipment alongside the new one is
			// refinement, not a new scenario.
			if !strings.Contains(lower, c.Attributes.EquipmentType) {
				return true
			}
		}
	}
	return false
}

// Archive freezes the context into a history record with its
// best-available classification, even if incomplete.
func (c *Context) Archive(engine *classify.Engine) model.ScenarioRecord {
	c.Stage = model.StageArchived
	c.AwaitingField = model.FieldNone
	return model.ScenarioRecord{
		ID:             uuid.NewString(),
		ScenarioNumber: c.ScenarioNumber,
		TitleSummary:   c.titleSummary(),
		Classification: engine.Classify(c.Attributes),
	}
}

func (c *Context) titleSummary() string {
	a := c.Attributes
	equipment := a.EquipmentType
	if equipment == "" {
		equipment = "unspecified equipment"
	}
	if a.OriginalManufacturer != "" && a.ReplacementManufacturer != "" &&
		a.OriginalManufacturer != a.ReplacementManufacturer {
		return fmt.Sprintf("%s: %s to %s", equipment, a.OriginalManufacturer, a.ReplacementManufacturer)
	}
	if a.OriginalManufacturer != "" {
		return fmt.Sprintf("%s (%s)", equipment, a.OriginalManufacturer)
	}
	return equipment
}

// parseYesNo interprets a short affirmative or negative reply
func parseYesNo(message string) (bool, bool) {
	lower := strings.ToLower(strings.TrimSpace(message))
	lower = strings.Trim(lower, ".,!")
	switch lower {
	case "yes", "yeah", "yep", "correct", "that's right", "they are", "it is":
		return true, true
	case "no", "nope", "they are not", "it is not", "not really":
		return false, true
	}
	return false, false
}
