package model

import "time"

// RiskBand is the advisory confidence banding for an assessment.
// It never gates whether a result is returned.
type RiskBand string

const (
	BandNeedsReview RiskBand = "needs_review" // Combined confidence < 0.4
	BandModerate    RiskBand = "moderate"     // 0.4 to 0.7
	BandHigh        RiskBand = "high"         // > 0.7
)

// Assessment combines classification confidence with extraction
// completeness into a single bounded score with transparent inputs.
type Assessment struct {
	Combined     float64                `json:"combined"`       // 0.7*classification + 0.3*completeness, clamped [0,1]
	Band         RiskBand               `json:"band"`           // Advisory banding of Combined
	Completeness float64                `json:"completeness"`   // known fields / tracked fields
	Data         map[string]interface{} `json:"data,omitempty"` // Formula inputs for inspection
}

// TurnResult is what one processed message hands back to the caller.
// Classification is present only once the scenario reached the
// ready-to-classify stage.
type TurnResult struct {
	SessionID      string                `json:"session_id"`
	ScenarioNumber int                   `json:"scenario_number"`
	Stage          Stage                 `json:"stage"`
	ResponseText   string                `json:"response_text"`
	AwaitingField  Field                 `json:"awaiting_field,omitempty"`
	Classification *ClassificationResult `json:"classification,omitempty"`
	Assessment     *Assessment           `json:"assessment,omitempty"`
	Attributes     ScenarioAttributes    `json:"attributes"`
	Signals        []Signal              `json:"signals,omitempty"`
	History        ScenarioHistory       `json:"history,omitempty"`
	Reset          bool                  `json:"reset,omitempty"` // True when this message started a new scenario
}

// SessionReport is the renderable end-of-session summary produced by the
// classify and batch commands.
type SessionReport struct {
	SessionID   string          `json:"session_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Turns       int             `json:"turns"`
	Final       *TurnResult     `json:"final,omitempty"`
	History     ScenarioHistory `json:"history"`
}
