package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uzresk/azure-ocr-samples/pkg/output"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the available output formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range output.NewDefaultRegistry().List() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(formatsCmd)
}
