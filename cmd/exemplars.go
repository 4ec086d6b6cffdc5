package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/store"
)

var exemplarsCmd = &cobra.Command{
	Use:   "exemplars",
	Short: "Manage the exemplar store used for retrieval grounding",
}

// exemplarLine is one JSONL record in an import file.
type exemplarLine struct {
	Topic      string `json:"topic"`
	GradeLevel int    `json:"grade_level"`
	Difficulty string `json:"difficulty"`
	Text       string `json:"text"`
	Answer     string `json:"answer"`
}

var exemplarsImportCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Import exemplars from a JSONL file",
	Args:  cobra.ExactArgs(1),
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

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		ctx := context.Background()
		repo := s.ExemplarRepo()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		line, imported := 0, 0
		for scanner.Scan() {
			line++
			raw := scanner.Bytes()
			if len(raw) == 0 {
				continue
			}
			var rec exemplarLine
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if rec.Topic == "" || rec.Text == "" || rec.Answer == "" {
				return fmt.Errorf("line %d: topic, text, and answer are required", line)
			}
			err := repo.Add(ctx, store.Exemplar{
				Topic:      rec.Topic,
				GradeLevel: rec.GradeLevel,
				Difficulty: rec.Difficulty,
				Text:       rec.Text,
				Answer:     rec.Answer,
			})
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			imported++
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		total, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d exemplars (%d total).\n", imported, total)
		return nil
	},
}

var exemplarsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many exemplars are stored",
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

		n, err := s.ExemplarRepo().Count(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d exemplars\n", n)
		return nil
	},
}

func init() {
	exemplarsCmd.AddCommand(exemplarsImportCmd)
	exemplarsCmd.AddCommand(exemplarsCountCmd)
}
