package model

// DesignType is the five-tier design-complexity classification, from an
// entirely new design (I) down to a confirmed identical replacement (V).
type DesignType int

const (
	DesignUnknown DesignType = 0
	DesignTypeI   DesignType = 1 // New design / new capability
	DesignTypeII  DesignType = 2 // Generic modification
	DesignTypeIII DesignType = 3 // Non-identical replacement
	DesignTypeIV  DesignType = 4 // Temporary change with restoration plan
	DesignTypeV   DesignType = 5 // Identical replacement
)

func (t DesignType) String() string {
	switch t {
	case DesignTypeI:
		return "I"
	case DesignTypeII:
		return "II"
	case DesignTypeIII:
		return "III"
	case DesignTypeIV:
		return "IV"
	case DesignTypeV:
		return "V"
	default:
		return "unknown"
	}
}

// MTRequirement states whether a Modification Traveler must be prepared.
// Identical replacements need only minimal documentation, so this is
// three-valued rather than a plain bool.
type MTRequirement string

const (
	MTRequired    MTRequirement = "required"
	MTMinimal     MTRequirement = "minimal"
	MTNotRequired MTRequirement = "not_required"
	MTUndecided   MTRequirement = "undecided"
)

// Required reports whether a full MT package is needed
func (r MTRequirement) Required() bool {
	return r == MTRequired
}

// ClassificationResult is the decision engine's verdict for one attribute
// set. Results are derived values and never mutated: a message that changes
// attributes produces a new result, it does not patch the old one.
type ClassificationResult struct {
	MTRequirement MTRequirement `json:"mt_requirement"`
	DesignType    DesignType    `json:"design_type"`
	Reason        string        `json:"reason"`
	Confidence    float64       `json:"confidence"`     // Always within [0,1]
	RuleName      string        `json:"rule,omitempty"` // Which decision rule fired (transparency)
}

// Classifiable reports whether the engine had enough to assign a tier
func (r ClassificationResult) Classifiable() bool {
	return r.DesignType != DesignUnknown
}
