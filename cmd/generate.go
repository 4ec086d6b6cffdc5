package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quizforge/quizforge/internal/calibrate"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/enhance"
	"github.com/quizforge/quizforge/internal/fallback"
	"github.com/quizforge/quizforge/internal/generate"
	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/orchestrator"
	"github.com/quizforge/quizforge/internal/retrieval"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/internal/validate"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a batch of validated items",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		grade, _ := cmd.Flags().GetInt("grade")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		format, _ := cmd.Flags().GetString("format")
		personaPath, _ := cmd.Flags().GetString("persona")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		req := item.Request{
			Subject:    "math",
			Topic:      topic,
			GradeLevel: grade,
			Difficulty: item.Difficulty(difficulty),
			Format:     item.AnswerFormat(format),
			Count:      count,
		}
		if personaPath != "" {
			persona, err := loadPersona(personaPath)
			if err != nil {
				return err
			}
			req.Persona = persona
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		controller, err := buildController(ctx, cfg, s)
		if err != nil {
			return err
		}

		res, err := controller.GenerateBatch(ctx, req)
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(cmd, res)
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topic", "addition", "Problem topic (addition, subtraction, multiplication, division, fraction_addition, fraction_subtraction, comparison)")
	generateCmd.Flags().Int("grade", 3, "Grade level (1-12)")
	generateCmd.Flags().String("difficulty", "medium", "Difficulty tier (easy, medium, hard)")
	generateCmd.Flags().Int("count", 1, "Number of items to generate")
	generateCmd.Flags().String("format", "numeric", "Answer format (numeric, multiple_choice)")
	generateCmd.Flags().String("persona", "", "Path to a learner persona YAML file")
	generateCmd.Flags().Bool("json", false, "Emit the full result as JSON")
}

// buildController wires the pipeline from configuration. The LLM
// provider is shared by the generator, the calibrator's assist pass,
// and the enhancer.
func buildController(ctx context.Context, cfg config.Config, s *store.Store) (*orchestrator.Controller, error) {
	if cfg.LLM.Provider == "" || cfg.LLM.Validate() != nil {
		if !cfg.LLM.DiscoverProvider() {
			return nil, fmt.Errorf("no LLM provider configured; set an API key (e.g. QUIZFORGE_ANTHROPIC_API_KEY)")
		}
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, s.EventRepo())
	if err != nil {
		return nil, fmt.Errorf("build LLM provider: %w", err)
	}

	retriever := retrieval.New(
		retrieval.NewStoreSearcher(s.ExemplarRepo()),
		retrieval.Config{Timeout: cfg.Retrieval.Timeout, TopK: cfg.Retrieval.TopK},
	)

	validator := validate.New(validate.Config{
		MaxTextLen:        cfg.Validate.MaxTextLen,
		MaxExplanationLen: cfg.Validate.MaxExplanationLen,
		MinDiversity:      cfg.Validate.MinDiversity,
	})

	var enhancer orchestrator.Enhancer
	if cfg.Pipeline.EnhancementEnabled {
		enhancer = enhance.New(provider, enhance.WithValidator(validator))
	}

	return orchestrator.NewController(
		orchestrator.Config{
			MaxRetries:         cfg.Pipeline.MaxRetries,
			Workers:            cfg.Pipeline.Workers,
			StageTimeout:       cfg.Pipeline.StageTimeout,
			RetryBaseDelay:     cfg.Pipeline.RetryBaseDelay,
			EnhancementEnabled: cfg.Pipeline.EnhancementEnabled,
		},
		retriever,
		calibrate.New(provider),
		generate.NewLLMGenerator(provider),
		validator,
		enhancer,
		fallback.NewLibrary(),
		storeSink{repo: s.ItemRepo()},
	), nil
}

// storeSink adapts the item repository to the orchestrator's sink.
type storeSink struct {
	repo store.ItemRepo
}

func (s storeSink) PersistItem(ctx context.Context, it *item.Item, fallbackUsed bool, confidence float64) error {
	return s.repo.Persist(ctx, store.AcceptedItem{
		Item:       *it,
		Fallback:   fallbackUsed,
		Confidence: confidence,
	})
}

const timeRounding = 10 * time.Millisecond

func loadPersona(path string) (*item.Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona %s: %w", path, err)
	}
	var p item.Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse persona %s: %w", path, err)
	}
	return &p, nil
}

func printJSON(cmd *cobra.Command, res *orchestrator.WorkflowResult) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func printResult(cmd *cobra.Command, res *orchestrator.WorkflowResult) {
	out := cmd.OutOrStdout()
	for i, r := range res.Items {
		if r.Item == nil {
			fmt.Fprintf(out, "%d. (canceled)\n\n", i+1)
			continue
		}
		fmt.Fprintf(out, "%d. %s\n", i+1, r.Item.Text)
		if len(r.Item.Choices) > 0 {
			for j, c := range r.Item.Choices {
				fmt.Fprintf(out, "   %c) %s\n", 'A'+j, c)
			}
		}
		fmt.Fprintf(out, "   Answer: %s\n", r.Item.Answer)
		fmt.Fprintf(out, "   %s\n", r.Item.Explanation)

		var tags []string
		if r.Metrics.FallbackUsed {
			tags = append(tags, "fallback")
		}
		if r.Metrics.RetriesUsed > 0 {
			tags = append(tags, fmt.Sprintf("%d retries", r.Metrics.RetriesUsed))
		}
		tags = append(tags, fmt.Sprintf("confidence %.2f", r.Metrics.Confidence))
		fmt.Fprintf(out, "   [%s]\n\n", strings.Join(tags, ", "))
	}

	s := res.Summary
	fmt.Fprintf(out, "%d items in %s (%d fallbacks, %d retries, avg confidence %.2f)\n",
		s.Items, s.WallTime.Round(timeRounding), s.Fallbacks, s.TotalRetries, s.AvgConfidence)
}
