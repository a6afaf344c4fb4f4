package model

// ScenarioAttributes is the accumulating record of everything known about
// one change scenario. Every field starts unset and is filled monotonically:
// once set, a field is only overwritten by an explicit contradicting signal,
// never silently cleared except on scenario reset.
type ScenarioAttributes struct {
	EquipmentType           string      `json:"equipment_type,omitempty"`
	OriginalManufacturer    string      `json:"original_manufacturer,omitempty"`
	ReplacementManufacturer string      `json:"replacement_manufacturer,omitempty"`
	SpecsClaimedEqual       *bool       `json:"specs_claimed_equal,omitempty"`
	HasEquivalencyDocs      *bool       `json:"has_equivalency_docs,omitempty"`
	IsTemporary             *bool       `json:"is_temporary,omitempty"`
	SafetyMarker            SafetyClass `json:"safety_marker,omitempty"`

	// Secondary markers that corroborate or refine the primary fields.
	IdentityClaimed    bool `json:"identity_claimed,omitempty"`
	SamePartNumber     bool `json:"same_part_number,omitempty"`
	HasRestorationPlan bool `json:"has_restoration_plan,omitempty"`
	DurationStated     bool `json:"duration_stated,omitempty"`
	NewCapability      bool `json:"new_capability,omitempty"`
	ActionSeen         bool `json:"action_seen,omitempty"`

	// Ambiguous marks fields that received conflicting signals within one
	// message; most-recent explicit statement won (never an error).
	Ambiguous []string `json:"ambiguous,omitempty"`
}

// trackedFields is the number of primary fields counted toward the
// extraction-completeness ratio.
const trackedFields = 7

// KnownFieldCount returns how many of the primary tracked fields are set
func (a ScenarioAttributes) KnownFieldCount() int {
	n := 0
	if a.EquipmentType != "" {
		n++
	}
	if a.OriginalManufacturer != "" {
		n++
	}
	if a.ReplacementManufacturer != "" {
		n++
	}
	if a.SpecsClaimedEqual != nil {
		n++
	}
	if a.HasEquivalencyDocs != nil {
		n++
	}
	if a.IsTemporary != nil {
		n++
	}
	if a.SafetyMarker != SafetyUnknown {
		n++
	}
	return n
}

// Completeness returns the known-to-tracked field ratio in [0,1]
func (a ScenarioAttributes) Completeness() float64 {
	return float64(a.KnownFieldCount()) / float64(trackedFields)
}

// ManufacturerUnchanged reports whether the replacement manufacturer is
// known to match the original (both set and equal)
func (a ScenarioAttributes) ManufacturerUnchanged() bool {
	return a.OriginalManufacturer != "" && a.OriginalManufacturer == a.ReplacementManufacturer
}

// ManufacturerChanged reports whether both manufacturers are known and differ
func (a ScenarioAttributes) ManufacturerChanged() bool {
	return a.OriginalManufacturer != "" && a.ReplacementManufacturer != "" &&
		a.OriginalManufacturer != a.ReplacementManufacturer
}

// Stage is a discrete phase in a scenario's conversational lifecycle.
// Stages normally advance in order, but a message that supplies several
// fields at once may skip stages.
type Stage string

const (
	StageCollectingEquipment      Stage = "collecting_equipment"
	StageCollectingOriginalMfg    Stage = "collecting_original_mfg"
	StageCollectingReplacementMfg Stage = "collecting_replacement_mfg"
	StageCollectingEquivalence    Stage = "collecting_equivalence"
	StageReadyToClassify          Stage = "ready_to_classify"
	StageArchived                 Stage = "archived"
)

// Field identifies a single scenario attribute the system can prompt for
type Field string

const (
	FieldNone                    Field = ""
	FieldEquipmentType           Field = "equipment_type"
	FieldOriginalManufacturer    Field = "original_manufacturer"
	FieldReplacementManufacturer Field = "replacement_manufacturer"
	FieldSpecsEqual              Field = "specs_equal"
	FieldEquivalencyDocs         Field = "equivalency_docs"
)

// ScenarioRecord is one archived scenario in a session's history.
// Records are append-only; a record is never modified after archival.
type ScenarioRecord struct {
	ID             string               `json:"id"`              // Stable archive identifier
	ScenarioNumber int                  `json:"scenario_number"` // 1-based position within the session
	TitleSummary   string               `json:"title_summary"`   // Short human-readable label
	Classification ClassificationResult `json:"classification"`  // Best-available result at archival time
}

// ScenarioHistory is the ordered, append-only list of archived scenarios
type ScenarioHistory []ScenarioRecord
