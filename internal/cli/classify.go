package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/modassist/internal/pipeline"
	"github.com/ppiankov/modassist/internal/worker"
	"github.com/spf13/cobra"
)

var (
	classifyOutJSON string
	classifyOutMD   string
	classifyTimeout time.Duration
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <transcript>",
	Short: "Classify a change from a saved transcript",
	Long: `Classify replays a transcript file (one message per line, # comments
skipped) through the screening pipeline and writes the session report.

The LLM provider is never consulted during replay: classification is
local and the transcript supplies every answer.

Example:
  modassist classify change-notes.txt
  modassist classify change-notes.txt --json report.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyOutJSON, "json", "report.json", "output JSON path")
	classifyCmd.Flags().StringVar(&classifyOutMD, "md", "", "output Markdown path (optional)")
	classifyCmd.Flags().DurationVar(&classifyTimeout, "timeout", 2*time.Minute, "overall replay timeout")
}

func runClassify(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), classifyTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.LLM.Provider = "" // Replay is non-interactive; local phrasing only

	engine := pipeline.NewEngine(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Replaying: %s\n\n", path)
	}

	report, err := worker.ReplayTranscript(ctx, engine, path)
	if err != nil {
		return err
	}

	if err := engine.RenderReport(report, classifyOutJSON, classifyOutMD, verbose); err != nil {
		return err
	}

	for _, rec := range report.History {
		c := rec.Classification
		fmt.Printf("Scenario %d (%s): Design Type %s, MT %s, confidence %.2f\n",
			rec.ScenarioNumber, rec.TitleSummary, c.DesignType, c.MTRequirement, c.Confidence)
	}

	return nil
}
