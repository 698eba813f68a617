// Profile commands manage startup profile records.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/athena/pkg/types"
)

var (
	profileListCompany string
	profileListLimit   int
	profileListOffset  int
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage startup profiles",
}

func init() {
	profileListCmd.Flags().StringVar(&profileListCompany, "company", "", "filter by exact company name")
	profileListCmd.Flags().IntVar(&profileListLimit, "limit", 0, "maximum number of profiles to return")
	profileListCmd.Flags().IntVar(&profileListOffset, "offset", 0, "number of profiles to skip")

	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileListCmd)
}

var profileAddCmd = &cobra.Command{
	Use:   "add <json>",
	Short: "Create a new startup profile",
	Long: `Add creates a new startup profile from a JSON payload.

An empty startup_id is assigned a generated UUID. The payload is validated
in full before the write; all contract violations are reported together.

Example:
  athena profile add '{"company_name": "Acme Analytics"}'
  athena profile add '{"startup_id": "s-1", "company_name": "Acme Analytics"}' --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p types.StartupProfile
		if err := json.Unmarshal([]byte(args[0]), &p); err != nil {
			fmt.Fprintf(os.Stderr, "parse JSON: %s\n", err)
			os.Exit(exitUserError)
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile add:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Profiles()
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile add:", err)
			os.Exit(exitSysError)
		}

		saved, err := table.Create(&p)
		exitOnValidation("create profile", err)

		if flagJSON {
			return printRecord(saved)
		}
		fmt.Printf("Created profile: %s\n", saved.StartupID)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <json>",
	Short: "Create or replace a startup profile",
	Long: `Set upserts a startup profile from a JSON payload. An existing profile
with the same startup_id is replaced wholesale; created_at is preserved and
updated_at advances.

Example:
  athena profile set '{"startup_id": "s-1", "company_name": "Acme Analytics"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p types.StartupProfile
		if err := json.Unmarshal([]byte(args[0]), &p); err != nil {
			fmt.Fprintf(os.Stderr, "parse JSON: %s\n", err)
			os.Exit(exitUserError)
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile set:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Profiles()
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile set:", err)
			os.Exit(exitSysError)
		}

		saved, err := table.Upsert(&p)
		exitOnValidation("upsert profile", err)

		if flagJSON {
			return printRecord(saved)
		}
		fmt.Printf("Saved profile: %s\n", saved.StartupID)
		return nil
	},
}

var profileGetCmd = &cobra.Command{
	Use:   "get <startup-id>",
	Short: "Get a startup profile by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile get:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Profiles()
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile get:", err)
			os.Exit(exitSysError)
		}

		p, err := table.Get(args[0])
		exitOnValidation("get profile", err)

		return printRecord(p)
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List startup profiles",
	Long: `List returns startup profiles, most recently created first.

Example:
  athena profile list
  athena profile list --company "Acme Analytics"
  athena profile list --limit 10 --offset 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.Profiles()
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile list:", err)
			os.Exit(exitSysError)
		}

		profiles, err := table.List(types.ProfileFilter{
			CompanyName: profileListCompany,
			Limit:       profileListLimit,
			Offset:      profileListOffset,
		})
		exitOnValidation("list profiles", err)

		if flagJSON {
			return printRecord(profiles)
		}
		for _, p := range profiles {
			fmt.Printf("%s  %s\n", p.StartupID, p.CompanyName)
		}
		return nil
	},
}
