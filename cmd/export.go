package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the hiring overview, candidates and assessments to an Excel workbook",
	Run: func(cmd *cobra.Command, _ []string) {
		exportPipeline(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", app+".xlsx", "path of the workbook to write")
}

func exportPipeline(cmd *cobra.Command) {
	app := newApplication()

	output, _ := cmd.Flags().GetString("output")

	path, err := export.ToExcel(export.NewReport(app.store, time.Now()), output)
	if err != nil {
		app.logger.Fatal("exporting the pipeline", zap.Error(err))
	}

	app.logger.Info("pipeline exported", zap.String("filename", path))
}
