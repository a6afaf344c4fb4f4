// Package extract detects typed domain signals in conversational text.
//
// Matching is case-insensitive keyword detection against closed
// vocabularies, longest-match-wins on overlap, with provenance (which
// phrase triggered which signal, and where). The extractor is a pure
// function of its input: no state, no side effects.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/modassist/internal/model"
)

// Extractor scans a message for domain terms and returns typed signals
type Extractor struct {
	entries []vocabEntry
}

// NewExtractor creates an extractor over the built-in vocabularies
func NewExtractor() *Extractor {
	entries := make([]vocabEntry, 0, len(fixedEntries)+len(equipmentTerms)+len(manufacturerTerms))
	entries = append(entries, fixedEntries...)
	for _, term := range equipmentTerms {
		entries = append(entries, vocabEntry{phrase: term, kind: model.KindEquipment, value: term})
	}
	for _, term := range manufacturerTerms {
		entries = append(entries, vocabEntry{phrase: term, kind: model.KindManufacturer, value: term})
	}
	return &Extractor{entries: entries}
}

// durationStatedPattern matches an explicit bounded duration ("for 30 days")
var durationStatedPattern = regexp.MustCompile(`for \d+ (hour|day|week|month|year)s?`)

// candidate is one vocabulary hit before overlap resolution
type candidate struct {
	start, end int
	entry      vocabEntry
}

// Extract returns the ordered signal list for a single message
func (e *Extractor) Extract(text string) []model.Signal {
	lower := strings.ToLower(text)

	var candidates []candidate
	for _, entry := range e.entries {
		for _, span := range findOccurrences(lower, entry.phrase) {
			candidates = append(candidates, candidate{start: span[0], end: span[1], entry: entry})
		}
	}
	if loc := durationStatedPattern.FindStringIndex(lower); loc != nil {
		candidates = append(candidates, candidate{
			start: loc[0],
			end:   loc[1],
			entry: vocabEntry{phrase: lower[loc[0]:loc[1]], kind: model.KindDuration, value: model.ValueDurationStated},
		})
	}

	// Longest-match-wins: prefer longer spans, then earlier ones, and
	// never emit two signals for overlapping spans.
	sort.Slice(candidates, func(i, j int) bool {
		li, lj := candidates[i].end-candidates[i].start, candidates[j].end-candidates[j].start
		if li != lj {
			return li > lj
		}
		return candidates[i].start < candidates[j].start
	})

	var kept []candidate
	for _, c := range candidates {
		if overlapsAny(kept, c) {
			continue
		}
		kept = append(kept, c)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].start < kept[j].start })

	signals := make([]model.Signal, 0, len(kept))
	for _, c := range kept {
		sig := model.Signal{
			Kind:    c.entry.kind,
			Value:   c.entry.value,
			Trigger: "keyword:" + c.entry.phrase,
			Start:   c.start,
			End:     c.end,
		}
		if sig.Kind == model.KindManufacturer {
			sig.Role = inferRole(lower, c.start)
		}
		signals = append(signals, sig)
	}
	return signals
}

// ExtractWithContext extracts signals and additionally resolves reference
// phrases ("the replacement", "the original") against a window of prior
// messages, newest first.
func (e *Extractor) ExtractWithContext(text string, prior []model.Message) []model.Signal {
	signals := e.Extract(text)
	lower := strings.ToLower(text)

	for _, ref := range referencePhrases {
		idx := strings.Index(lower, ref.phrase)
		if idx < 0 {
			continue
		}
		if hasManufacturerRole(signals, ref.role) {
			continue
		}
		if name, ok := e.lookbackManufacturer(prior); ok {
			signals = append(signals, model.Signal{
				Kind:    model.KindManufacturer,
				Value:   name,
				Role:    ref.role,
				Trigger: "reference:" + ref.phrase,
				Start:   idx,
				End:     idx + len(ref.phrase),
			})
		}
	}
	return signals
}

// lookbackManufacturer finds the most recently named manufacturer in the
// prior-message window.
func (e *Extractor) lookbackManufacturer(prior []model.Message) (string, bool) {
	for i := len(prior) - 1; i >= 0; i-- {
		for _, sig := range e.Extract(prior[i].Text) {
			if sig.Kind == model.KindManufacturer {
				return sig.Value, true
			}
		}
	}
	return "", false
}

// findOccurrences returns all word-bounded occurrences of phrase in text
func findOccurrences(text, phrase string) [][2]int {
	var spans [][2]int
	for from := 0; ; {
		idx := strings.Index(text[from:], phrase)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(phrase)
		if wordBoundary(text, start, end) {
			spans = append(spans, [2]int{start, end})
		}
		from = start + 1
	}
	return spans
}

// wordBoundary reports whether text[start:end] is not embedded in a
// longer word (letters and digits count as word characters; hyphens do
// not, so hyphenated vocabulary entries still match as wholes).
func wordBoundary(text string, start, end int) bool {
	if start > 0 && isWordChar(text[start-1]) {
		return false
	}
	if end < len(text) && isWordChar(text[end]) {
		return false
	}
	return true
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func overlapsAny(kept []candidate, c candidate) bool {
	for _, k := range kept {
		if c.start < k.end && k.start < c.end {
			return true
		}
	}
	return false
}

// inferRole guesses the original/replacement side of a manufacturer from
// cue words in a short window of text preceding the match.
func inferRole(lower string, start int) model.SignalRole {
	windowStart := start - 24
	if windowStart < 0 {
		windowStart = 0
	}
	words := strings.Fields(lower[windowStart:start])

	// Walk backwards: the cue nearest the manufacturer wins.
	for i := len(words) - 1; i >= 0; i-- {
		w := strings.Trim(words[i], ".,;:!?")
		for _, cue := range replacementCues {
			if w == cue {
				return model.RoleReplacement
			}
		}
		for _, cue := range originalCues {
			if w == cue {
				return model.RoleOriginal
			}
		}
	}
	return model.RoleUnspecified
}

func hasManufacturerRole(signals []model.Signal, role model.SignalRole) bool {
	for _, sig := range signals {
		if sig.Kind == model.KindManufacturer && sig.Role == role {
			return true
		}
	}
	return false
}
