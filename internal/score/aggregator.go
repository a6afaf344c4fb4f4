// Package score combines classification confidence with extraction
// completeness into a bounded, inspectable assessment.
package score

import (
	"github.com/ppiankov/modassist/internal/model"
)

// Weights of the combined confidence formula. Classification dominates;
// completeness only nudges the result toward or away from review.
const (
	classificationWeight = 0.7
	completenessWeight   = 0.3
)

// Banding thresholds for the advisory risk label
const (
	needsReviewBelow = 0.4
	highAbove        = 0.7
)

// Aggregator produces assessments from classification results
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate combines the engine's confidence with the extraction
// completeness ratio, clamps to [0,1], and assigns a risk band. The
// band is advisory only and never gates whether a result is returned.
func (g *Aggregator) Aggregate(result model.ClassificationResult, attrs model.ScenarioAttributes) model.Assessment {
	completeness := attrs.Completeness()
	combined := classificationWeight*result.Confidence + completenessWeight*completeness

	if combined < 0 {
		combined = 0
	}
	if combined > 1 {
		combined = 1
	}

	return model.Assessment{
		Combined:     combined,
		Band:         bandFor(combined),
		Completeness: completeness,
		Data: map[string]interface{}{
			"classification_confidence": result.Confidence,
			"completeness":              completeness,
			"known_fields":              attrs.KnownFieldCount(),
			"formula":                   "0.7*classification + 0.3*completeness",
		},
	}
}

// bandFor maps a combined score to its advisory band
func bandFor(combined float64) model.RiskBand {
	switch {
	case combined < needsReviewBelow:
		return model.BandNeedsReview
	case combined > highAbove:
		return model.BandHigh
	default:
		return model.BandModerate
	}
}
