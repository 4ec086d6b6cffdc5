package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/item"
)

// checkCmd answers "would this response be accepted" without touching
// the database or any provider. Useful for previewing the
// normalization rules.
var checkCmd = &cobra.Command{
	Use:   "check <expected> <got>",
	Short: "Check a learner answer against an expected answer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		answerType, _ := cmd.Flags().GetString("type")

		expected, got := args[0], args[1]
		ok := item.AnswersEqual(got, expected, item.AnswerType(answerType))
		if ok {
			fmt.Fprintf(cmd.OutOrStdout(), "correct: %q matches %q\n", got, expected)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "incorrect: %q does not match %q\n", got, expected)
		return nil
	},
}

func init() {
	checkCmd.Flags().String("type", "integer", "Answer type (integer, decimal, fraction, text)")
}
