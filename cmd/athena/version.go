// Version command for the athena CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/athena/pkg/athena"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the athena version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("athena", athena.Version)
	},
}
