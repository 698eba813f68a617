// Validate command checks a record against the table contract without
// writing it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/athena/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <table> <json>",
	Short: "Validate a record without storing it",
	Long: `Validate runs the full validation pass for a candidate record and
reports every violated rule. Nothing is written.

Exit code 0 means the record is acceptable (warnings may still appear on
stderr); exit code 1 means it would be rejected.

Example:
  athena validate startup_profiles '{"company_name": "Acme Analytics"}'
  athena validate benchmarks '{"sector": "saas", "stage": "seed", "metric_name": "churn_rate", "p25": 15, "p50": 10}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tableName := args[0]

		record, err := parseRecordJSON(tableName, []byte(args[1]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse JSON: %s\n", err)
			os.Exit(exitUserError)
		}

		result, err := validate.Record(tableName, record, validate.Options{
			StrictRatios: configStrictRatios,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "validate:", err)
			os.Exit(exitUserError)
		}

		printWarnings(result.Warnings)

		if flagJSON {
			if err := printRecord(result); err != nil {
				return err
			}
			if !result.OK() {
				os.Exit(exitUserError)
			}
			return nil
		}

		if !result.OK() {
			for _, v := range result.Violations {
				fmt.Fprintln(os.Stderr, v.String())
			}
			os.Exit(exitUserError)
		}

		fmt.Println("valid")
		return nil
	},
}
