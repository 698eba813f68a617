// Risk commands manage the append-only risk assessment log.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/athena/pkg/types"
)

var (
	riskListStartup  string
	riskListCategory string
	riskListOrphans  bool
	riskListLimit    int
	riskListOffset   int
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Manage risk assessments",
}

func init() {
	riskListCmd.Flags().StringVar(&riskListStartup, "startup", "", "filter by startup ID")
	riskListCmd.Flags().StringVar(&riskListCategory, "category", "", "filter by risk category")
	riskListCmd.Flags().BoolVar(&riskListOrphans, "orphans", false, "only assessments whose startup has no stored profile")
	riskListCmd.Flags().IntVar(&riskListLimit, "limit", 0, "maximum number of assessments to return")
	riskListCmd.Flags().IntVar(&riskListOffset, "offset", 0, "number of assessments to skip")

	riskCmd.AddCommand(riskAddCmd)
	riskCmd.AddCommand(riskGetCmd)
	riskCmd.AddCommand(riskHistoryCmd)
	riskCmd.AddCommand(riskListCmd)
}

var riskAddCmd = &cobra.Command{
	Use:   "add <json>",
	Short: "Append a risk assessment",
	Long: `Add appends a risk assessment from a JSON payload. Assessments are
immutable; each add creates a new entry. The referenced startup_id is not
required to have a stored profile.

A risk_score outside [0, 1] is reported as a warning on stderr unless
strict_ratio_validation is enabled, in which case the record is rejected.

Example:
  athena risk add '{"startup_id": "s-1", "risk_category": "market", "risk_score": 0.7, "risk_description": "Crowded segment"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var a types.RiskAssessment
		if err := json.Unmarshal([]byte(args[0]), &a); err != nil {
			fmt.Fprintf(os.Stderr, "parse JSON: %s\n", err)
			os.Exit(exitUserError)
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "risk add:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Assessments()
		if err != nil {
			fmt.Fprintln(os.Stderr, "risk add:", err)
			os.Exit(exitSysError)
		}

		saved, warnings, err := table.Append(&a)
		printWarnings(warnings)
		exitOnValidation("append assessment", err)

		if flagJSON {
			return printRecord(saved)
		}
		fmt.Printf("Appended assessment: %s\n", saved.AssessmentID)
		return nil
	},
}

var riskGetCmd = &cobra.Command{
	Use:   "get <assessment-id>",
	Short: "Get a risk assessment by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "risk get:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Assessments()
		if err != nil {
			fmt.Fprintln(os.Stderr, "risk get:", err)
			os.Exit(exitSysError)
		}

		a, err := table.Get(args[0])
		exitOnValidation("get assessment", err)

		return printRecord(a)
	},
}

var riskHistoryCmd = &cobra.Command{
	Use:   "history <startup-id>",
	Short: "List a startup's assessments in insertion order",
	Long: `History returns every assessment recorded for the startup, oldest
first. A startup with no assessments yields an empty list, not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "risk history:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Assessments()
		if err != nil {
			fmt.Fprintln(os.Stderr, "risk history:", err)
			os.Exit(exitSysError)
		}

		history, err := table.History(args[0])
		exitOnValidation("assessment history", err)

		if flagJSON {
			return printRecord(history)
		}
		for _, a := range history {
			fmt.Printf("%s  %-10s %.2f  %s\n", a.AssessmentID, a.RiskCategory, a.RiskScore, a.RiskDescription)
		}
		return nil
	},
}

var riskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List risk assessments",
	Long: `List returns assessments matching the optional filters.

The --orphans flag restricts output to assessments whose startup_id has no
stored profile, for reconciling references recorded ahead of the profile.

Example:
  athena risk list
  athena risk list --startup s-1 --category market
  athena risk list --orphans`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "risk list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Assessments()
		if err != nil {
			fmt.Fprintln(os.Stderr, "risk list:", err)
			os.Exit(exitSysError)
		}

		assessments, err := table.List(types.AssessmentFilter{
			StartupID:    riskListStartup,
			RiskCategory: riskListCategory,
			Orphans:      riskListOrphans,
			Limit:        riskListLimit,
			Offset:       riskListOffset,
		})
		exitOnValidation("list assessments", err)

		if flagJSON {
			return printRecord(assessments)
		}
		for _, a := range assessments {
			fmt.Printf("%s  %s  %-10s %.2f\n", a.AssessmentID, a.StartupID, a.RiskCategory, a.RiskScore)
		}
		return nil
	},
}
