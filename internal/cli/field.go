package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"natkey/internal/adapter/calendar"
	"natkey/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	fieldName string
	fieldCode int64
)

var fieldCmd = &cobra.Command{
	Use:   "field DATE...",
	Short: "Print the year, month or day of dates",
	Long: `Print one field of each YYYY-MM-DD date.

Examples:
  natkey field --field day 1999-12-31   # 31
  natkey field --code 1 2024-03-15      # 2024 (1=year, 2=month, 3=day)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runField,
}

func init() {
	fieldCmd.Flags().StringVar(&fieldName, "field", "", "field to print: year, month or day")
	fieldCmd.Flags().Int64Var(&fieldCode, "code", 0, "field as a numeric code: 1=year, 2=month, 3=day")
	fieldCmd.MarkFlagsMutuallyExclusive("field", "code")
	rootCmd.AddCommand(fieldCmd)
}

type fieldResult struct {
	Date  string `json:"date" yaml:"date"`
	Field string `json:"field" yaml:"field"`
	Value int64  `json:"value" yaml:"value"`
}

func selectedField() (domain.Field, error) {
	switch {
	case fieldCode != 0:
		return domain.FieldFromCode(fieldCode)
	case fieldName != "":
		return domain.ParseField(fieldName)
	default:
		return 0, errors.New("one of --field or --code is required")
	}
}

func runField(cmd *cobra.Command, args []string) error {
	field, err := selectedField()
	if err != nil {
		return err
	}

	results := make([]fieldResult, 0, len(args))
	for _, arg := range args {
		t, err := time.Parse(dateLayout, arg)
		if err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", arg, err)
		}
		v, err := calendar.Extract(t, field)
		if err != nil {
			return err
		}
		logger.Debug("Extracted field", zap.String("date", arg), zap.Stringer("field", field), zap.Int64("value", v))
		results = append(results, fieldResult{Date: arg, Field: field.String(), Value: v})
	}

	return render(cmd.OutOrStdout(), GetConfig().Output.Format, results, func(w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintln(w, r.Value); err != nil {
				return err
			}
		}
		return nil
	})
}
