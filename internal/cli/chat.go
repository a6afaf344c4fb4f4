package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/modassist/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	chatLLMProvider string
	chatLLMModel    string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactively screen a proposed change",
	Long: `Chat starts an interactive screening session. Describe the proposed
change in plain language; modassist asks follow-up questions until it can
classify the change, then reports the design type, whether a Modification
Traveler is required, and the confidence of that verdict.

Commands inside the session:
  clear   discard the current scenario and start a new one
  done    finish and print the session report
  quit    exit without a report

Example:
  modassist chat
  modassist chat --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatLLMProvider, "llm-provider", "", "LLM provider for question phrasing (openai, anthropic, ollama)")
	chatCmd.Flags().StringVar(&chatLLMModel, "llm-model", "", "LLM model name")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if chatLLMProvider != "" {
		cfg.LLM.Provider = chatLLMProvider
	}
	if chatLLMModel != "" {
		cfg.LLM.Model = chatLLMModel
	}

	engine := pipeline.NewEngine(cfg)
	ctx := context.Background()

	fmt.Println("Describe the proposed change. Type 'done' to finish, 'quit' to exit.")
	fmt.Println()

	sessionID := ""
	turns := 0
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if line == "done" {
			break
		}

		result, err := engine.ProcessMessage(ctx, sessionID, line)
		if err != nil {
			return fmt.Errorf("process message: %w", err)
		}
		sessionID = result.SessionID
		turns++

		if result.Reset && verbose {
			fmt.Fprintf(os.Stderr, "(started scenario %d)\n", result.ScenarioNumber)
		}
		fmt.Println(result.ResponseText)
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if sessionID == "" {
		return nil
	}

	report := engine.Finalize(sessionID, nil, turns)
	for _, rec := range report.History {
		c := rec.Classification
		fmt.Printf("Scenario %d (%s): Design Type %s, MT %s, confidence %.2f\n",
			rec.ScenarioNumber, rec.TitleSummary, c.DesignType, c.MTRequirement, c.Confidence)
	}
	return nil
}
