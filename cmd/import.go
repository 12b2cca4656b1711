package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/ingestion"
)

var importCmd = &cobra.Command{
	Use:   "import-cvs [files...]",
	Short: "Parse CV files with the AI model and add them as candidates of a job",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		importCVs(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("job", "", "id of the job posting the candidates apply for")
	importCmd.MarkFlagRequired("job")
}

func importCVs(cmd *cobra.Command, paths []string) {
	ctx := context.Background()
	app := newApplication()

	if app.config.StateFile == "" {
		app.logger.Fatal("a state file is required to keep imported candidates",
			zap.String("hint", "pass --state-file or set state-file in the configuration file"),
		)
	}

	jobID, _ := cmd.Flags().GetString("job")
	app.connectAI(ctx)

	importer := ingestion.NewImporter(app.gateway, app.store, app.logger)
	results, err := importer.Import(ctx, jobID, paths)
	if err != nil {
		app.logger.Fatal("importing cvs", zap.Error(err))
	}

	printImportResults(cmd.OutOrStdout(), results)

	imported, failed := ingestion.Summary(results)
	app.logger.Info("import finished", zap.Int("imported", imported), zap.Int("failed", failed))

	if imported > 0 {
		app.save()
	}
}

func printImportResults(w io.Writer, results []ingestion.Result) {
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(w, "  ok    %s -> %s <%s>\n", r.Path, r.Candidate.Name, r.Candidate.Email)
			continue
		}
		fmt.Fprintf(w, "  fail  %s: %v\n", r.Path, r.Err)
	}
}
