package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/infrastructure/inputdev"
)

var devicesAll bool

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List input devices",
	Long: `List the input devices keymapper can read. The name column is the
value to use in input.devices and as the device of key map triggers.

By default only devices with keys are shown.`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().BoolVarP(&devicesAll, "all", "a", false, "include devices without keys")
}

func runDevices(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	devices, err := inputdev.ListDevices()
	if err != nil {
		return fmt.Errorf("list input devices: %w", err)
	}

	rows := make([]table.Row, 0, len(devices))
	for _, d := range devices {
		if !devicesAll && !d.Keys {
			continue
		}
		rows = append(rows, table.Row{d.Path, d.Name, styles.YesNo(d.Keyboard), styles.YesNo(d.Hat)})
	}
	if len(rows) == 0 {
		fmt.Println(app.Theme.Subtle.Render("No readable input devices (is your user in the 'input' group?)"))
		return nil
	}
	fmt.Println(styles.RenderTable(app.Theme, styles.DeviceTableColumns(), rows))
	return nil
}
