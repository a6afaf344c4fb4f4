package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/modassist/internal/pipeline"
	"github.com/ppiankov/modassist/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchOutDir  string
	batchWorkers int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Classify many transcripts concurrently",
	Long: `Batch reads transcript paths from a list file (one per line) and
replays each through its own screening session concurrently. One report
is written per transcript; a failing transcript never stops the others.

Example:
  modassist batch transcripts.txt --out reports/ --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutDir, "out", "reports", "output directory for per-transcript JSON reports")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent workers (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.LLM.Provider = "" // Replay is non-interactive; local phrasing only

	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Concurrency.BatchWorkers
	}

	if err := os.MkdirAll(batchOutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	engine := pipeline.NewEngine(cfg)
	processor := worker.NewBatchProcessor(engine, workers)

	results, err := processor.ProcessFile(ctx, listPath)
	if err != nil {
		return err
	}

	succeeded, failed := 0, 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Error)
			continue
		}
		succeeded++

		outPath := filepath.Join(batchOutDir, reportName(res.Path))
		if err := engine.RenderReport(res.Report, outPath, "", verbose); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s\n", res.Path, outPath)
		}
	}

	fmt.Printf("Processed %d transcripts: %d succeeded, %d failed\n", len(results), succeeded, failed)
	return nil
}

// reportName derives a per-transcript report filename
func reportName(transcriptPath string) string {
	base := filepath.Base(transcriptPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".report.json"
}
