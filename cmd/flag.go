package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/forms"
	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/styles"
)

var flagCmd = &cobra.Command{
	Use:   "flag [flag] [clip]",
	Short: "Toggle your flags on a clip",
	Long: `Toggle a flag on a clip for the configured user. Flags are bueno,
acorregir, duda and importante, or their shortcuts 1-4. Without a flag a
picker is shown.`,
	Args: cobra.MaximumNArgs(2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		clip, err := resolveClip(a, argOrEmpty(args, 1))
		if err != nil {
			return err
		}
		current := a.store.ClipUserFlags(clip.ID)

		var toggle []model.Flag
		if len(args) == 0 {
			var result forms.FlagFormResult
			if err := runForm(forms.NewFlagForm(clipHeadline(a, clip), current, &result)); err != nil {
				return err
			}
			// Toggle what differs between the current and chosen sets.
			for _, f := range model.Flags {
				if slices.Contains(current, f) != slices.Contains(result.Flags, f) {
					toggle = append(toggle, f)
				}
			}
		} else {
			f, err := model.ParseFlag(args[0])
			if err != nil {
				return err
			}
			toggle = []model.Flag{f}
		}

		for _, f := range toggle {
			if _, err := a.store.ToggleFlag(clip.ID, f); err != nil {
				return err
			}
		}
		badges := styles.FlagBadges(a.store.ClipUserFlags(clip.ID))
		if badges == "" {
			badges = "none"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Flags on %s: %s\n", clip.ID, badges)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(flagCmd)
}
