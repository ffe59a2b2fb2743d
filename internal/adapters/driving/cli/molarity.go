package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var molarityJSON bool

var molarityCmd = &cobra.Command{
	Use:   "molarity [ng/µl] [bp]",
	Short: "Convert a concentration to molarity",
	Long: `Converts a mass concentration (ng/µl) and fragment size (bp) to nM
using 660 g/mol per base pair.`,
	Args: cobra.ExactArgs(2),
	RunE: runMolarity,
}

func init() {
	molarityCmd.Flags().BoolVar(&molarityJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(molarityCmd)
}

func runMolarity(cmd *cobra.Command, args []string) error {
	if err := requirePooling(); err != nil {
		return err
	}

	conc, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid concentration %q: %w", args[0], err)
	}
	size, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid fragment size %q: %w", args[1], err)
	}

	nm, err := poolingService.Molarity(conc, size)
	if err != nil {
		return err
	}

	if molarityJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]float64{
			"concentration_ng_ul": conc,
			"fragment_size_bp":    size,
			"molarity_nm":         nm,
		})
	}
	cmd.Printf("%.4f nM\n", nm)
	return nil
}
