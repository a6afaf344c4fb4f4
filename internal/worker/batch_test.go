package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/modassist/internal/model"
)

// MockScreener implements the Screener interface
type MockScreener struct {
	ShouldError bool
}

func (m *MockScreener) ProcessMessage(ctx context.Context, sessionID, text string) (*model.TurnResult, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("process error")
	}
	return &model.TurnResult{
		SessionID:    sessionID,
		ResponseText: "ok",
	}, nil
}

func (m *MockScreener) Finalize(sessionID string, final *model.TurnResult, turns int) *model.SessionReport {
	return &model.SessionReport{
		SessionID: sessionID,
		Turns:     turns,
		Final:     final,
	}
}

func writeTranscript(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.txt")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessTranscripts(t *testing.T) {
	screener := &MockScreener{}
	processor := NewBatchProcessor(screener, 2)

	var paths []string
	for i := 0; i < 3; i++ {
		path := filepath.Join(t.TempDir(), fmt.Sprintf("t%d.txt", i))
		if err := os.WriteFile(path, []byte("we need to replace a pump\n"), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	results := processor.ProcessTranscripts(context.Background(), paths)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	successCount := 0
	for _, res := range results {
		if res.Error == nil {
			successCount++
			if res.Report == nil {
				t.Error("expected report for successful replay")
			}
		} else {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
	}

	if successCount != 3 {
		t.Errorf("expected 3 successes, got %d", successCount)
	}
}

func TestBatchProcessor_ProcessTranscripts_Error(t *testing.T) {
	screener := &MockScreener{ShouldError: true}
	processor := NewBatchProcessor(screener, 2)

	path := writeTranscript(t, "replace the valve\n")
	results := processor.ProcessTranscripts(context.Background(), []string{path})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessTranscripts_Empty(t *testing.T) {
	screener := &MockScreener{}
	processor := NewBatchProcessor(screener, 2)

	results := processor.ProcessTranscripts(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReplayTranscript_EmptyFile(t *testing.T) {
	path := writeTranscript(t, "# only a comment\n\n")

	_, err := ReplayTranscript(context.Background(), &MockScreener{}, path)
	if err == nil {
		t.Error("expected error for empty transcript")
	}
}

func TestReadMessagesFromFile(t *testing.T) {
	content := `we need to replace a pump
# comment
the existing one is a goulds

it is safety-related   `

	path := writeTranscript(t, content)

	messages, err := ReadMessagesFromFile(path)
	if err != nil {
		t.Fatalf("ReadMessagesFromFile failed: %v", err)
	}

	expected := []string{
		"we need to replace a pump",
		"the existing one is a goulds",
		"it is safety-related",
	}
	if len(messages) != len(expected) {
		t.Fatalf("expected %d messages, got %d", len(expected), len(messages))
	}

	for i, msg := range messages {
		if msg != expected[i] {
			t.Errorf("expected message %q at index %d, got %q", expected[i], i, msg)
		}
	}
}

func TestReadLinesFromFile_Dedupes(t *testing.T) {
	content := "a.txt\nb.txt\na.txt\n"
	path := writeTranscript(t, content)

	lines, err := ReadLinesFromFile(path)
	if err != nil {
		t.Fatalf("ReadLinesFromFile failed: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("expected 2 deduplicated lines, got %d", len(lines))
	}
}

func TestReadMessagesFromFile_NonExistent(t *testing.T) {
	_, err := ReadMessagesFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestTranscriptResult_GetError(t *testing.T) {
	r1 := &TranscriptResult{Path: "t.txt", Error: nil}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("replay failed")
	r2 := &TranscriptResult{Path: "t.txt", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
