package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zincware/zninit/internal/cli/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [model-file]",
	Short: "Dry-run the checks declared in a model file",
	Long: `Build the classes declared in a model definition file and construct each
entry under 'checks' with its keyword arguments, reporting the outcome.`,
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
		if _, err := file.Build(); err != nil {
			return err
		}
		if len(file.Checks) == 0 {
			fmt.Println("no checks declared")
			return nil
		}

		pass := color.New(color.FgGreen)
		fail := color.New(color.FgRed)
		if noColor {
			pass.DisableColor()
			fail.DisableColor()
		}

		failures := 0
		for _, check := range file.Checks {
			repr, err := runCheck(check)
			if err != nil {
				fail.Printf("FAIL %s: %v\n", check.Model, err)
				failures++
				continue
			}
			pass.Printf("ok   %s\n", repr)
		}
		if failures > 0 {
			os.Exit(1)
		}
		return nil
	},
}
