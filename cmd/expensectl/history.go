package main

import (
	"fmt"
	"strconv"
	"strings"

	"voice-expense/internal/cli"
	"voice-expense/internal/service"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show saved expenses",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals per category",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Remove one expense by its index in list",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved expense",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories offered to the LLM",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	for _, c := range []*cobra.Command{listCmd, summaryCmd} {
		c.Flags().StringVarP(&flagTimeframe, "timeframe", "t", string(service.TimeframeAll), timeframeHelp())
	}
	rootCmd.AddCommand(listCmd, summaryCmd, deleteCmd, clearCmd, categoriesCmd)
}

func timeframeHelp() string {
	names := make([]string, 0, len(service.Timeframes))
	for _, tf := range service.Timeframes {
		names = append(names, string(tf))
	}
	return "Timeframe: " + strings.Join(names, ", ")
}

func runList(cmd *cobra.Command, _ []string) error {
	tf, err := service.ParseTimeframe(flagTimeframe)
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close(appLog)

	rows := a.Workspace.List(tf)
	if len(rows) == 0 {
		fmt.Println("\n  No expenses recorded yet.")
		return nil
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{strconv.Itoa(r.Index), r.Date, r.Item, cli.FormatAmount(r.Amount), r.Category})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      "Expense history (" + tf.Label() + ")",
		Headers:    []string{"Index", "Date", "Item", "Amount", "Category"},
		Rows:       table,
		RightAlign: map[int]bool{0: true, 3: true},
	}))
	return nil
}

func runSummary(cmd *cobra.Command, _ []string) error {
	tf, err := service.ParseTimeframe(flagTimeframe)
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close(appLog)

	s := a.Workspace.Summary(tf)
	rows := make([][]string, 0, len(s.ByCategory))
	for _, ct := range s.ByCategory {
		rows = append(rows, []string{ct.Category, strconv.Itoa(ct.Count), "$" + ct.Total.StringFixed(2)})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("Total Spent (%s): $%s", tf.Label(), s.Total.StringFixed(2))))
	if len(rows) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "Spending breakdown",
			Headers:    []string{"Category", "Count", "Total"},
			Rows:       rows,
			RightAlign: map[int]bool{1: true, 2: true},
		}))
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", service.ErrInvalidIndex, args[0])
	}
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close(appLog)

	ok, err := confirm(fmt.Sprintf("Remove expense %d?", index))
	if err != nil || !ok {
		return err
	}

	removed, err := a.Workspace.Delete(cmd.Context(), index)
	if err != nil {
		return err
	}
	fmt.Println(cli.Success(fmt.Sprintf("  Removed Index %d: '%s' (%s)", index, removed.Item, cli.FormatAmount(removed.Amount))))
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close(appLog)

	count := len(a.Workspace.State().History)
	ok, err := confirm(fmt.Sprintf("Delete all %d saved expenses?", count))
	if err != nil || !ok {
		return err
	}

	if err := a.Workspace.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Println(cli.Success("  All expense history has been cleared."))
	return nil
}

func runCategories(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close(appLog)

	for _, c := range a.Workspace.Categories() {
		fmt.Println("  " + c)
	}
	return nil
}
