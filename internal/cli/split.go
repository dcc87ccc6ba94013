package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"natkey/internal/domain"
)

var splitCmd = &cobra.Command{
	Use:   "split [text...]",
	Short: "Split strings into digit and non-digit runs",
	Long: `Split each argument into maximal runs of ASCII digits and non-digits.
With no arguments, each line of standard input is split.

Examples:
  natkey split abc123def
  ls | natkey split -f json`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

type splitResult struct {
	Input  string         `json:"input" yaml:"input"`
	Tokens []domain.Token `json:"tokens" yaml:"tokens"`
}

func runSplit(cmd *cobra.Command, args []string) error {
	inputs := args
	if len(inputs) == 0 {
		var err error
		inputs, err = readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	tokenizer := newTokenizer(GetConfig())
	results := make([]splitResult, len(inputs))
	for i, in := range inputs {
		tokens := tokenizer.Tokenize(in)
		if tokens == nil {
			tokens = []domain.Token{}
		}
		results[i] = splitResult{Input: in, Tokens: tokens}
	}

	return render(cmd.OutOrStdout(), GetConfig().Output.Format, results, func(w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%q\t%s\n", r.Input, formatTokens(r.Tokens)); err != nil {
				return err
			}
		}
		return nil
	})
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
