package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rental",
	Short: "Vehicle rental service",
	Long:  `Vehicle rental management service: REST API, background worker and migrations`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
