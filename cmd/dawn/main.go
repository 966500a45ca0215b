package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/evanacox/dawn/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dawn",
	Short: "dawn IR toolchain",
	Long:  `dawn reads, prints and analyzes textual dawn IR`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(cfgCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max files parsed in parallel (0 = one per CPU)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
