package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/modassist/internal/model"
)

// Renderer writes session reports to JSON and Markdown files
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.SessionReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable summary of the session
func (r *Renderer) RenderMarkdown(report *model.SessionReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# MT Screening Report\n\n")
	fmt.Fprintf(&b, "- **Session**: %s\n", report.SessionID)
	fmt.Fprintf(&b, "- **Generated**: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Turns processed**: %d\n\n", report.Turns)

	if len(report.History) == 0 {
		b.WriteString("No scenarios were discussed.\n")
	}

	for _, rec := range report.History {
		c := rec.Classification
		fmt.Fprintf(&b, "## Scenario %d: %s\n\n", rec.ScenarioNumber, rec.TitleSummary)
		fmt.Fprintf(&b, "| | |\n|---|---|\n")
		fmt.Fprintf(&b, "| Design Type | %s |\n", c.DesignType)
		fmt.Fprintf(&b, "| MT | %s |\n", c.MTRequirement)
		fmt.Fprintf(&b, "| Confidence | %.2f |\n", c.Confidence)
		fmt.Fprintf(&b, "| Rule | %s |\n\n", c.RuleName)
		fmt.Fprintf(&b, "%s\n\n", c.Reason)
	}

	if report.Final != nil && report.Final.Assessment != nil {
		a := report.Final.Assessment
		fmt.Fprintf(&b, "## Assessment\n\n")
		fmt.Fprintf(&b, "Combined confidence %.2f (%s); extraction completeness %.0f%%.\n\n",
			a.Combined, a.Band, a.Completeness*100)
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by modassist. Screening output is advisory and does not replace engineering review.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
