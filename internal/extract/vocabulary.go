package extract

import "github.com/ppiankov/modassist/internal/model"

// The extractor matches against closed vocabularies. Each entry maps a
// phrase to a typed signal; overlapping entries are resolved by
// longest-match-wins at scan time, so more specific phrases can safely
// contain shorter ones ("programmable logic controller" vs "controller",
// "no equivalency documentation" vs "equivalency documentation").
type vocabEntry struct {
	phrase string
	kind   model.SignalKind
	value  string
	role   model.SignalRole
}

// equipmentTerms are the recognized equipment nouns. The matched term
// itself becomes the signal value.
var equipmentTerms = []string{
	"pump", "valve", "motor", "breaker", "transformer", "relay",
	"switchgear", "compressor", "fan", "heat exchanger", "tank",
	"sensor", "transmitter", "controller", "actuator", "battery",
	"charger", "inverter", "damper", "strainer", "governor",
	"penetration seal", "snubber", "instrument rack",
}

// manufacturerTerms are known manufacturer tokens. The matched term
// becomes the signal value; role is inferred from surrounding cues.
var manufacturerTerms = []string{
	"fisher", "westinghouse", "abb", "siemens", "general electric", "ge",
	"rosemount", "foxboro", "crane", "flowserve", "goulds", "grundfos",
	"allen-bradley", "square d", "cutler-hammer", "schneider", "eaton",
	"emerson", "honeywell", "yokogawa", "limitorque", "velan",
	"anchor darling", "byron jackson", "masoneilan", "copes-vulcan",
}

// fixedEntries covers every vocabulary whose phrases map to normalized
// values rather than to the matched text itself.
var fixedEntries = []vocabEntry{
	// Safety-significance markers
	{"safety-related", model.KindSafety, string(model.SafetyClassRelated), model.RoleUnspecified},
	{"safety related", model.KindSafety, string(model.SafetyClassRelated), model.RoleUnspecified},
	{"safety-class", model.KindSafety, string(model.SafetyClassRelated), model.RoleUnspecified},
	{"safety class", model.KindSafety, string(model.SafetyClassRelated), model.RoleUnspecified},
	{"class 1e", model.KindSafety, string(model.SafetyClassRelated), model.RoleUnspecified},
	{"safety-significant", model.KindSafety, string(model.SafetySignificant), model.RoleUnspecified},
	{"safety significant", model.KindSafety, string(model.SafetySignificant), model.RoleUnspecified},
	{"augmented quality", model.KindSafety, string(model.SafetySignificant), model.RoleUnspecified},
	{"general service", model.KindSafety, string(model.SafetyGeneral), model.RoleUnspecified},
	{"non-safety", model.KindSafety, string(model.SafetyGeneral), model.RoleUnspecified},
	{"not safety related", model.KindSafety, string(model.SafetyGeneral), model.RoleUnspecified},

	// Replacement-identity language
	{"same manufacturer", model.KindIdentity, "same_manufacturer", model.RoleUnspecified},
	{"same make and model", model.KindIdentity, "same_make_model", model.RoleUnspecified},
	{"same model", model.KindIdentity, "same_make_model", model.RoleUnspecified},
	{"same part number", model.KindIdentity, model.ValueSamePartNumber, model.RoleUnspecified},
	{"identical replacement", model.KindIdentity, "identical", model.RoleUnspecified},
	{"like-for-like", model.KindIdentity, "identical", model.RoleUnspecified},
	{"like for like", model.KindIdentity, "identical", model.RoleUnspecified},
	{"in-kind replacement", model.KindIdentity, "identical", model.RoleUnspecified},
	{"in kind", model.KindIdentity, "identical", model.RoleUnspecified},
	{"exact replacement", model.KindIdentity, "identical", model.RoleUnspecified},

	// Duration language
	{"temporary", model.KindDuration, model.ValueTemporary, model.RoleUnspecified},
	{"temporarily", model.KindDuration, model.ValueTemporary, model.RoleUnspecified},
	{"short-term", model.KindDuration, model.ValueTemporary, model.RoleUnspecified},
	{"permanent", model.KindDuration, model.ValuePermanent, model.RoleUnspecified},
	{"permanently", model.KindDuration, model.ValuePermanent, model.RoleUnspecified},
	{"restoration plan", model.KindDuration, model.ValueRestorationPlan, model.RoleUnspecified},
	{"will be restored", model.KindDuration, model.ValueRestorationPlan, model.RoleUnspecified},
	{"restore to original", model.KindDuration, model.ValueRestorationPlan, model.RoleUnspecified},
	{"put back in service", model.KindDuration, model.ValueRestorationPlan, model.RoleUnspecified},

	// Specification equivalence — negative phrases listed alongside the
	// positive ones; longest-match-wins resolves the polarity.
	{"identical specifications", model.KindEquivalence, model.ValueSpecsEqual, model.RoleUnspecified},
	{"same specifications", model.KindEquivalence, model.ValueSpecsEqual, model.RoleUnspecified},
	{"same specs", model.KindEquivalence, model.ValueSpecsEqual, model.RoleUnspecified},
	{"equivalent specifications", model.KindEquivalence, model.ValueSpecsEqual, model.RoleUnspecified},
	{"specifications are the same", model.KindEquivalence, model.ValueSpecsEqual, model.RoleUnspecified},
	{"specs match", model.KindEquivalence, model.ValueSpecsEqual, model.RoleUnspecified},
	{"different specifications", model.KindEquivalence, model.ValueSpecsNotEqual, model.RoleUnspecified},
	{"specifications differ", model.KindEquivalence, model.ValueSpecsNotEqual, model.RoleUnspecified},
	{"specs differ", model.KindEquivalence, model.ValueSpecsNotEqual, model.RoleUnspecified},
	{"not identical specifications", model.KindEquivalence, model.ValueSpecsNotEqual, model.RoleUnspecified},
	{"equivalency documentation", model.KindEquivalence, model.ValueHasEquivDocs, model.RoleUnspecified},
	{"equivalency evaluation", model.KindEquivalence, model.ValueHasEquivDocs, model.RoleUnspecified},
	{"equivalency report", model.KindEquivalence, model.ValueHasEquivDocs, model.RoleUnspecified},
	{"no equivalency documentation", model.KindEquivalence, model.ValueNoEquivDocs, model.RoleUnspecified},
	{"without equivalency documentation", model.KindEquivalence, model.ValueNoEquivDocs, model.RoleUnspecified},
	{"no equivalency evaluation", model.KindEquivalence, model.ValueNoEquivDocs, model.RoleUnspecified},

	// New-capability / digital markers
	{"programmable logic controller", model.KindCapability, "plc", model.RoleUnspecified},
	{"plc", model.KindCapability, "plc", model.RoleUnspecified},
	{"digital upgrade", model.KindCapability, "digital", model.RoleUnspecified},
	{"digital", model.KindCapability, "digital", model.RoleUnspecified},
	{"software", model.KindCapability, "software", model.RoleUnspecified},
	{"firmware", model.KindCapability, "software", model.RoleUnspecified},
	{"microprocessor", model.KindCapability, "digital", model.RoleUnspecified},
	{"new design", model.KindCapability, "new_design", model.RoleUnspecified},
	{"new capability", model.KindCapability, "new_design", model.RoleUnspecified},
	{"added function", model.KindCapability, "new_design", model.RoleUnspecified},

	// Change-action verbs
	{"replace", model.KindAction, "replace", model.RoleUnspecified},
	{"replacing", model.KindAction, "replace", model.RoleUnspecified},
	{"swap out", model.KindAction, "replace", model.RoleUnspecified},
	{"change out", model.KindAction, "replace", model.RoleUnspecified},
	{"install", model.KindAction, "install", model.RoleUnspecified},
	{"installing", model.KindAction, "install", model.RoleUnspecified},
	{"upgrade", model.KindAction, "modify", model.RoleUnspecified},
	{"modify", model.KindAction, "modify", model.RoleUnspecified},
	{"modifying", model.KindAction, "modify", model.RoleUnspecified},
	{"modification", model.KindAction, "modify", model.RoleUnspecified},
	{"rework", model.KindAction, "modify", model.RoleUnspecified},

	// Explicit new-scenario phrases
	{"new scenario", model.KindNewScenario, "new_scenario", model.RoleUnspecified},
	{"different question", model.KindNewScenario, "new_scenario", model.RoleUnspecified},
	{"another change", model.KindNewScenario, "new_scenario", model.RoleUnspecified},
	{"separate issue", model.KindNewScenario, "new_scenario", model.RoleUnspecified},
	{"start over", model.KindNewScenario, "new_scenario", model.RoleUnspecified},
	{"forget that", model.KindNewScenario, "new_scenario", model.RoleUnspecified},
	{"unrelated question", model.KindNewScenario, "new_scenario", model.RoleUnspecified},
}

// originalCues and replacementCues are manufacturer-role hints, compared
// word-by-word against a short window of text preceding a manufacturer match.
var originalCues = []string{"existing", "current", "original", "old", "from", "installed"}

var replacementCues = []string{"with", "to", "new", "replacement", "proposed", "instead"}

// referencePhrases resolve against the prior-message window when the
// current message names a side of the replacement without a manufacturer.
var referencePhrases = []struct {
	phrase string
	role   model.SignalRole
}{
	{"the replacement", model.RoleReplacement},
	{"the new one", model.RoleReplacement},
	{"the new unit", model.RoleReplacement},
	{"the original", model.RoleOriginal},
	{"the old one", model.RoleOriginal},
	{"the existing unit", model.RoleOriginal},
}
