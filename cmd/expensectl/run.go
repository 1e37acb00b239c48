package main

import (
	"fmt"
	"strconv"

	"voice-expense/internal/cli"
	"voice-expense/internal/models"
	"voice-expense/internal/service"

	"github.com/spf13/cobra"
)

var flagModel string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the transcription models accepted by run --model",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

var runCmd = &cobra.Command{
	Use:   "run <audio>",
	Short: "Extract expenses from a voice note and save them after review",
	Args:  cobra.ExactArgs(1),
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&flagModel, "model", "m", "", "Transcription model, see expensectl models (default WHISPER_MODEL)")
	rootCmd.AddCommand(runCmd, modelsCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close(appLog)

	result := a.Workspace.Run(ctx, args[0], flagModel)

	if result.Transcript != "" {
		fmt.Printf("\n  Transcript: %q\n\n", result.Transcript)
	}

	switch result.Outcome {
	case models.OutcomeBlocked:
		fmt.Println(cli.Failure(fmt.Sprintf("  Blocked: the note mentions %q. Nothing was extracted.", result.BlockedTerm)))
		return nil
	case models.OutcomeTranscriptionFailed:
		return fmt.Errorf("transcription failed: %s", result.Error)
	case models.OutcomeLLMUnavailable:
		return fmt.Errorf("LLM unavailable: %s", result.Error)
	case models.OutcomeParseError:
		fmt.Println(cli.Warning("  The model answered with something that is not an expense list."))
		return nil
	case models.OutcomeEmpty:
		fmt.Println(cli.Warning("  No expenses found in this note."))
		printRejected(result.Rejected)
		return nil
	}

	fmt.Print(renderPending(result.Pending))
	printRejected(result.Rejected)

	ok, err := confirm(fmt.Sprintf("Save %d expense(s)?", len(result.Pending)))
	if err != nil {
		return err
	}
	if !ok {
		a.Workspace.DiscardPending()
		fmt.Println("  Discarded.")
		return nil
	}

	saved, err := a.Workspace.Confirm(ctx)
	if err != nil {
		return err
	}
	fmt.Println(cli.Success(fmt.Sprintf("  History updated! %d transaction(s) saved.", len(saved))))
	return nil
}

func runModels(_ *cobra.Command, _ []string) error {
	fmt.Print(renderModels(service.NewWhisperTranscriber(&cfg.Whisper, appLog)))
	return nil
}

func renderModels(catalog service.ModelCatalog) string {
	var out string
	for _, m := range catalog.Models() {
		line := "  " + m
		if m == catalog.DefaultModel() {
			line += " " + cli.Success("(default)")
		}
		out += line + "\n"
	}
	return out
}

func renderPending(pending models.PendingBatch) string {
	rows := make([][]string, 0, len(pending))
	for i, p := range pending {
		rows = append(rows, []string{strconv.Itoa(i + 1), p.Item, cli.FormatAmount(p.Amount), p.Category})
	}
	return cli.RenderTable(cli.Table{
		Title:      "Pending review",
		Headers:    []string{"#", "Item", "Amount", "Category"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true, 2: true},
	})
}

func printRejected(rejected []models.Rejection) {
	for _, r := range rejected {
		fmt.Println(cli.Warning(fmt.Sprintf("  skipped element %d: %s", r.Index, r.Reason)))
	}
}
