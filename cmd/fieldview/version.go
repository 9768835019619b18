package main

import (
	"fmt"
	"time"

	"github.com/soilution/fieldview/internal/build"
	"github.com/soilution/fieldview/internal/cli"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fieldview version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := build.Current()
		if jsonOutput {
			return cli.PrintJSON(cmd.OutOrStdout(), cli.NewResponseOK(cmd.Name(), info, time.Now()))
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), info)
		return err
	},
}
