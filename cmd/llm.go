package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM provider configuration and usage",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the selected provider and model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if cfg.LLM.Validate() != nil && !cfg.LLM.DiscoverProvider() {
			fmt.Fprintln(out, "No LLM provider configured.")
			fmt.Fprintln(out, "Set one of: QUIZFORGE_ANTHROPIC_API_KEY, QUIZFORGE_OPENAI_API_KEY,")
			fmt.Fprintln(out, "QUIZFORGE_GEMINI_API_KEY, QUIZFORGE_OPENROUTER_API_KEY")
			return nil
		}

		fmt.Fprintf(out, "Provider: %s\n", cfg.LLM.Provider)
		switch cfg.LLM.Provider {
		case "anthropic":
			fmt.Fprintf(out, "Model:    %s\n", cfg.LLM.Anthropic.Model)
		case "openai":
			fmt.Fprintf(out, "Model:    %s\n", cfg.LLM.OpenAI.Model)
		case "gemini":
			fmt.Fprintf(out, "Model:    %s\n", cfg.LLM.Gemini.Model)
		case "openrouter":
			fmt.Fprintf(out, "Model:    %s\n", cfg.LLM.OpenRouter.Model)
		}
		fmt.Fprintf(out, "Timeout:  %s\n", cfg.LLM.Timeout)
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Summarize recorded LLM usage and cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		sum, err := s.EventRepo().UsageSummary(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Requests:      %d (%d failed)\n", sum.Requests, sum.Failures)
		fmt.Fprintf(out, "Input tokens:  %d\n", sum.InputTokens)
		fmt.Fprintf(out, "Output tokens: %d\n", sum.OutputTokens)
		fmt.Fprintf(out, "Cost:          $%.4f\n", sum.CostUSD)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmUsageCmd)
}
