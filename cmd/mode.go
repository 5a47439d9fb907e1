package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/store"
)

var modeCmd = &cobra.Command{
	Use:       "mode [analyze|view]",
	Short:     "Show or switch between analyze and view mode",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(store.ModeAnalyze), string(store.ModeView)},
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if len(args) == 1 {
			if err := a.store.SetMode(store.Mode(args[0])); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mode: %s\n", a.store.Mode())
		return nil
	}),
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Toggle focus view",
	Long:  `Toggle focus view. Entering it collapses the side panel; leaving it expands the panel again.`,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		a.store.ToggleFocusView()
		fmt.Fprintf(cmd.OutOrStdout(), "Focus view: %v, panel collapsed: %v\n", a.store.FocusView(), a.store.PanelCollapsed())
		return nil
	}),
}

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Collapse or expand the side panel",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		a.store.TogglePanel()
		fmt.Fprintf(cmd.OutOrStdout(), "Panel collapsed: %v\n", a.store.PanelCollapsed())
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(panelCmd)
}
