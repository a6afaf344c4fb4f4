package model

// Signal represents a typed domain term detected in a message
type Signal struct {
	Kind    SignalKind `json:"kind"`              // What category of term matched
	Value   string     `json:"value"`             // Normalized value (e.g., "valve", "fisher", "SC")
	Role    SignalRole `json:"role,omitempty"`    // Original/replacement disambiguation for manufacturers
	Trigger string     `json:"trigger,omitempty"` // Which vocabulary phrase matched (e.g., "keyword:same manufacturer")
	Start   int        `json:"start"`             // Byte offset of the match in the message
	End     int        `json:"end"`               // Byte offset one past the match
}

// SignalKind categorizes the nature of the detected term
type SignalKind string

const (
	KindEquipment    SignalKind = "equipment"    // Equipment noun (pump, valve, motor...)
	KindManufacturer SignalKind = "manufacturer" // Known manufacturer token
	KindSafety       SignalKind = "safety"       // Safety-significance marker (SC/SS/GS)
	KindIdentity     SignalKind = "identity"     // Replacement-identity language ("same manufacturer")
	KindDuration     SignalKind = "duration"     // Temporary/permanent language
	KindEquivalence  SignalKind = "equivalence"  // Specification equivalence or equivalency-doc language
	KindCapability   SignalKind = "capability"   // New-capability/digital markers (PLC, software)
	KindAction       SignalKind = "action"       // Change-action verbs (replace, install, modify)
	KindNewScenario  SignalKind = "new_scenario" // Explicit new-scenario phrase ("different question")
)

// SignalRole disambiguates which side of a replacement a manufacturer
// signal refers to, when the phrasing makes it clear.
type SignalRole string

const (
	RoleUnspecified SignalRole = ""
	RoleOriginal    SignalRole = "original"
	RoleReplacement SignalRole = "replacement"
)

// Well-known signal values shared between the extractor and the
// conversation layer. Extractors normalize matched phrases to these.
const (
	ValueTemporary = "temporary"
	ValuePermanent = "permanent"

	ValueSpecsEqual    = "specs_equal"
	ValueSpecsNotEqual = "specs_not_equal"
	ValueHasEquivDocs  = "has_equivalency_docs"
	ValueNoEquivDocs   = "no_equivalency_docs"

	ValueSamePartNumber  = "same_part_number"
	ValueRestorationPlan = "restoration_plan"
	ValueDurationStated  = "duration_stated"
)

// SafetyClass is the safety-significance classification extracted from text
type SafetyClass string

const (
	SafetyUnknown      SafetyClass = ""
	SafetyClassRelated SafetyClass = "SC" // Safety-Class
	SafetySignificant  SafetyClass = "SS" // Safety-Significant
	SafetyGeneral      SafetyClass = "GS" // General-Service
)

// IsElevated reports whether the class requires enhanced engineering review
func (c SafetyClass) IsElevated() bool {
	return c == SafetyClassRelated || c == SafetySignificant
}

func (c SafetyClass) String() string {
	switch c {
	case SafetyClassRelated:
		return "safety-class"
	case SafetySignificant:
		return "safety-significant"
	case SafetyGeneral:
		return "general-service"
	default:
		return "unknown"
	}
}
