package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/cli/report"
	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate [sample-sheet]",
	Short: "Check a sample sheet without computing",
	Long: `Checks required columns, numeric values and duplicate names or
barcodes, and warns about values outside typical ranges.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if sheetReader == nil {
		return errors.New("sample sheet reader not configured")
	}

	_, result, err := sheetReader.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read sample sheet: %w", err)
	}

	if validateJSON {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		r := report.New(cmd.OutOrStdout())
		r.Title("Sample sheet " + args[0])
		r.Validation(result)
	}

	if !result.IsValid() {
		return fmt.Errorf("%d error(s) found: %w", len(result.Errors), domain.ErrInvalidInput)
	}
	return nil
}
