// Root command for the athena CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/athena/internal/paths"
	"github.com/mesh-intelligence/athena/pkg/athena"
)

// Exit codes: 0 success, 1 user error (bad input, validation failure,
// unknown record), 2 system error (storage, config).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir      string
	configSyncStrategy string
	configStrictRatios bool
)

var rootCmd = &cobra.Command{
	Use:     "athena",
	Short:   "Athena is a local-first startup intelligence store",
	Version: athena.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configSyncStrategy = cfg.GetString(cfgKeySyncStrategy)
		configStrictRatios = cfg.GetBool(cfgKeyStrictRatios)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.athena-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(validateCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > ATHENA_DATA_DIR env > default $(CWD)/.athena-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > ATHENA_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
