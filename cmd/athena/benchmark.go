// Benchmark commands manage sector/stage metric benchmark rows.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/athena/pkg/types"
)

var (
	benchmarkListSector string
	benchmarkListStage  string
	benchmarkListMetric string
	benchmarkListLimit  int
	benchmarkListOffset int
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Manage metric benchmarks",
}

func init() {
	benchmarkListCmd.Flags().StringVar(&benchmarkListSector, "sector", "", "filter by sector")
	benchmarkListCmd.Flags().StringVar(&benchmarkListStage, "stage", "", "filter by funding stage")
	benchmarkListCmd.Flags().StringVar(&benchmarkListMetric, "metric", "", "filter by metric name")
	benchmarkListCmd.Flags().IntVar(&benchmarkListLimit, "limit", 0, "maximum number of rows to return")
	benchmarkListCmd.Flags().IntVar(&benchmarkListOffset, "offset", 0, "number of rows to skip")

	benchmarkCmd.AddCommand(benchmarkAddCmd)
	benchmarkCmd.AddCommand(benchmarkSetCmd)
	benchmarkCmd.AddCommand(benchmarkGetCmd)
	benchmarkCmd.AddCommand(benchmarkListCmd)
}

var benchmarkAddCmd = &cobra.Command{
	Use:   "add <json>",
	Short: "Create a new benchmark row",
	Long: `Add creates a benchmark row from a JSON payload. The (sector, stage,
metric_name) triple must not already exist.

Example:
  athena benchmark add '{"sector": "saas", "stage": "series_a", "metric_name": "mrr_growth_rate", "p25": 8, "p50": 15, "p75": 25, "p90": 40}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var b types.BenchmarkRow
		if err := json.Unmarshal([]byte(args[0]), &b); err != nil {
			fmt.Fprintf(os.Stderr, "parse JSON: %s\n", err)
			os.Exit(exitUserError)
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "benchmark add:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Benchmarks()
		if err != nil {
			fmt.Fprintln(os.Stderr, "benchmark add:", err)
			os.Exit(exitSysError)
		}

		saved, err := table.Create(&b)
		exitOnValidation("create benchmark", err)

		if flagJSON {
			return printRecord(saved)
		}
		fmt.Printf("Created benchmark: %s/%s/%s\n", saved.Sector, saved.Stage, saved.MetricName)
		return nil
	},
}

var benchmarkSetCmd = &cobra.Command{
	Use:   "set <json>",
	Short: "Create or replace a benchmark row",
	Long: `Set upserts a benchmark row from a JSON payload. An existing row with
the same (sector, stage, metric_name) is replaced wholesale.

Example:
  athena benchmark set '{"sector": "saas", "stage": "seed", "metric_name": "churn_rate", "p25": 5, "p50": 7, "p75": 10, "p90": 15}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var b types.BenchmarkRow
		if err := json.Unmarshal([]byte(args[0]), &b); err != nil {
			fmt.Fprintf(os.Stderr, "parse JSON: %s\n", err)
			os.Exit(exitUserError)
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "benchmark set:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Benchmarks()
		if err != nil {
			fmt.Fprintln(os.Stderr, "benchmark set:", err)
			os.Exit(exitSysError)
		}

		saved, err := table.Upsert(&b)
		exitOnValidation("upsert benchmark", err)

		if flagJSON {
			return printRecord(saved)
		}
		fmt.Printf("Saved benchmark: %s/%s/%s\n", saved.Sector, saved.Stage, saved.MetricName)
		return nil
	},
}

var benchmarkGetCmd = &cobra.Command{
	Use:   "get <sector> <stage> <metric-name>",
	Short: "Get a benchmark row by its natural key",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "benchmark get:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Benchmarks()
		if err != nil {
			fmt.Fprintln(os.Stderr, "benchmark get:", err)
			os.Exit(exitSysError)
		}

		key := types.BenchmarkKey{Sector: args[0], Stage: args[1], MetricName: args[2]}
		b, err := table.Get(key)
		exitOnValidation("get benchmark", err)

		return printRecord(b)
	},
}

var benchmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List benchmark rows",
	Long: `List returns benchmark rows matching the optional filters.

Example:
  athena benchmark list
  athena benchmark list --sector saas --stage seed
  athena benchmark list --metric churn_rate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "benchmark list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Benchmarks()
		if err != nil {
			fmt.Fprintln(os.Stderr, "benchmark list:", err)
			os.Exit(exitSysError)
		}

		rows, err := table.List(types.BenchmarkFilter{
			Sector:     benchmarkListSector,
			Stage:      benchmarkListStage,
			MetricName: benchmarkListMetric,
			Limit:      benchmarkListLimit,
			Offset:     benchmarkListOffset,
		})
		exitOnValidation("list benchmarks", err)

		if flagJSON {
			return printRecord(rows)
		}
		for _, b := range rows {
			fmt.Printf("%s/%s/%s\n", b.Sector, b.Stage, b.MetricName)
		}
		return nil
	},
}
