package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

var noColor bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "zninit",
		Short: "Inspect zninit model definitions",
		Long: `zninit loads model definition files, builds the declared classes, and
prints their attribute schemas and synthesized constructor signatures.`,
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
