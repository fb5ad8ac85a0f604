package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/cli/model"
)

var (
	historyJSON   bool
	historyMax    int
	historyKeyMap string
	pruneDays     int
	pruneForce    bool
)

const defaultHistoryMax = 50

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the dispatch journal",
	Long: `Interactive browser of the actions the daemon dispatched, with per key
map totals and a failed-only filter. Requires database.journal.`,
	RunE: runHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old dispatch records",
	Long: `Delete dispatch records older than --days (default: database.retention_days).

Examples:
  keymapper history prune              # Ask, then apply the retention setting
  keymapper history prune --days 7 -f  # Keep one week without prompting`,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum records to load")
	historyCmd.Flags().StringVarP(&historyKeyMap, "keymap", "k", "", "only show records of this key map")

	historyPruneCmd.Flags().IntVar(&pruneDays, "days", 0, "keep records newer than this many days")
	historyPruneCmd.Flags().BoolVarP(&pruneForce, "force", "f", false, "prune without prompting")
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	input := usecase.ListDispatchHistoryInput{KeyMapID: historyKeyMap, Limit: historyMax}

	// JSON output mode (non-interactive)
	if historyJSON {
		out, err := app.ListHistoryUC.Execute(app.Ctx(), input)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Records)
	}

	m := model.NewHistoryModel(app.Ctx(), app.Theme, app.ListHistoryUC, input)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runHistoryPrune(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	days := pruneDays
	if days <= 0 {
		days = app.Config.Database.RetentionDays
	}
	if days <= 0 {
		return fmt.Errorf("no retention configured, pass --days")
	}

	if pruneForce {
		deleted, err := app.PruneHistoryUC.Execute(app.Ctx(), days)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d records\n", deleted)
		return nil
	}

	m := model.NewPruneModel(app.Ctx(), app.Theme, app.PruneHistoryUC, days)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if pm, ok := final.(model.PruneModel); ok {
		return pm.Err()
	}
	return nil
}
