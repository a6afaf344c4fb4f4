package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/modassist/internal/model"
)

// Screener replays a transcript through the screening pipeline. Declared
// here so the worker package does not depend on the pipeline wiring.
type Screener interface {
	ProcessMessage(ctx context.Context, sessionID, text string) (*model.TurnResult, error)
	Finalize(sessionID string, final *model.TurnResult, turns int) *model.SessionReport
}

// TranscriptJob replays one transcript file as its own session
type TranscriptJob struct {
	Path     string
	Screener Screener
}

// Execute executes the transcript job
func (j *TranscriptJob) Execute(ctx context.Context) Result {
	report, err := ReplayTranscript(ctx, j.Screener, j.Path)
	return &TranscriptResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// TranscriptResult represents the result of a transcript job
type TranscriptResult struct {
	Path   string
	Report *model.SessionReport
	Error  error
}

// GetError returns the error from the transcript result
func (r *TranscriptResult) GetError() error {
	return r.Error
}

// ReplayTranscript feeds a transcript's messages through the screener one
// at a time and finalizes the session. The transcript path doubles as the
// session ID, so distinct files never share scenario state.
func ReplayTranscript(ctx context.Context, s Screener, path string) (*model.SessionReport, error) {
	messages, err := ReadMessagesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("transcript %s contains no messages", path)
	}

	var last *model.TurnResult
	for _, msg := range messages {
		last, err = s.ProcessMessage(ctx, path, msg)
		if err != nil {
			return nil, fmt.Errorf("process message: %w", err)
		}
	}

	return s.Finalize(path, last, len(messages)), nil
}

// BatchProcessor replays multiple transcript files concurrently
type BatchProcessor struct {
	screener    Screener
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(screener Screener, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		screener:    screener,
		concurrency: concurrency,
	}
}

// ProcessTranscripts replays the given transcript files concurrently
func (b *BatchProcessor) ProcessTranscripts(ctx context.Context, paths []string) []*TranscriptResult {
	if len(paths) == 0 {
		return []*TranscriptResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&TranscriptJob{
			Path:     path,
			Screener: b.screener,
		})
	}

	results := pool.Wait()

	transcriptResults := make([]*TranscriptResult, len(results))
	for i, result := range results {
		transcriptResults[i] = result.(*TranscriptResult)
	}

	return transcriptResults
}

// ProcessFile reads transcript paths from a list file and replays them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*TranscriptResult, error) {
	paths, err := ReadLinesFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript list: %w", err)
	}

	return b.ProcessTranscripts(ctx, paths), nil
}

// ReadMessagesFromFile reads a transcript: one message per line, empty
// lines and comments skipped.
func ReadMessagesFromFile(path string) ([]string, error) {
	return readLines(path, false)
}

// ReadLinesFromFile reads a list file, deduplicating entries
func ReadLinesFromFile(path string) ([]string, error) {
	return readLines(path, true)
}

func readLines(path string, dedupe bool) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if dedupe {
			if seen[line] {
				continue
			}
			seen[line] = true
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}
