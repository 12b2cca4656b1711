package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/skillscribe/internal/guide"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Print the workflow guide",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), guide.Workflows())
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
