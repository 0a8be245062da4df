package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zincware/zninit"
	"github.com/zincware/zninit/internal/cli/config"
)

var describeCmd = &cobra.Command{
	Use:   "describe [model-file]",
	Short: "Print attribute schemas and constructor signatures",
	Long: `Load a model definition file (default zninit.yml), build the declared
classes, and print each class's attribute table and synthesized keyword-only
constructor signature.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "zninit.yml"
		if len(args) == 1 {
			path = args[0]
		}

		file, err := config.Load(path)
		if err != nil {
			return err
		}
		classes, err := file.Build()
		if err != nil {
			return err
		}

		for i, cls := range classes {
			if i > 0 {
				fmt.Println()
			}
			printClass(os.Stdout, cls)
		}
		return nil
	},
}

func printClass(w *os.File, cls *zninit.Class) {
	describeClass(w, cls, noColor)
	fmt.Fprintf(w, "\n  %s\n", cls.Signature())
}
