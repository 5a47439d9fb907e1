package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/forms"
	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/styles"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tag types",
	Long: `Add, edit, list and delete tag types. Each tag type decides the clip
window around a tagged instant: seconds before and seconds after.`,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tag types by row",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		tags := a.store.TagTypes()
		if len(tags) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tag types found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, row := range []model.Row{model.RowOwn, model.RowRival} {
			title := "Own team"
			if row == model.RowRival {
				title = "Rival"
			}
			fmt.Fprintln(w, styles.Header.Render(title))
			fmt.Fprintln(w, "Order\tLabel\tKey\tWindow\tID")
			for _, t := range tags {
				if t.Row != row {
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t-%gs/+%gs\t%s\n", t.Order, styles.TagLabel(t), t.Key, t.PreSec, t.PostSec, t.ID)
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	}),
}

var tagAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Add a tag type",
	Long: `Add a tag type. Unset values default to the own row, 3 seconds before
and 8 seconds after. Without a label a form is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		var in model.TagTypeInput
		if len(args) == 0 {
			var result forms.TagTypeFormResult
			if err := runForm(forms.NewTagTypeForm("New tag type", &result)); err != nil {
				return err
			}
			var err error
			if in, err = result.Input(); err != nil {
				return err
			}
		} else {
			in.Label = args[0]
			in.Key, _ = cmd.Flags().GetString("key")
			in.PreSec, _ = cmd.Flags().GetFloat64("pre")
			in.PostSec, _ = cmd.Flags().GetFloat64("post")
			rowFlag, _ := cmd.Flags().GetString("row")
			row, ok := model.ParseRow(rowFlag)
			if !ok {
				return fmt.Errorf("unknown row %q (expected own or rival)", rowFlag)
			}
			in.Row = row
		}

		tag, err := a.store.AddTagType(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tag type added: %s (%s, -%gs/+%gs)\n", tag.Label, tag.ID, tag.PreSec, tag.PostSec)
		return nil
	}),
}

var tagEditCmd = &cobra.Command{
	Use:   "edit <tag>",
	Short: "Change a tag type",
	Long: `Change a tag type's label, key, row or window. Only the flags given are
changed; without flags a pre-filled form is shown. Existing clips keep their bounds.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		tag, err := resolveTag(a, args[0])
		if err != nil {
			return err
		}

		var patch model.TagTypePatch
		flags := cmd.Flags()
		edited := false
		for _, name := range []string{"label", "key", "row", "pre", "post", "order"} {
			edited = edited || flags.Changed(name)
		}
		if !edited {
			result := forms.TagTypeFormResult{
				Label:   tag.Label,
				Key:     tag.Key,
				Row:     tag.Row,
				PreSec:  fmt.Sprintf("%g", tag.PreSec),
				PostSec: fmt.Sprintf("%g", tag.PostSec),
			}
			if err := runForm(forms.NewTagTypeForm("Edit "+tag.Label, &result)); err != nil {
				return err
			}
			in, err := result.Input()
			if err != nil {
				return err
			}
			patch = model.TagTypePatch{Label: &in.Label, Key: &in.Key, Row: &in.Row, PreSec: &in.PreSec, PostSec: &in.PostSec}
		} else {
			if flags.Changed("label") {
				v, _ := flags.GetString("label")
				patch.Label = &v
			}
			if flags.Changed("key") {
				v, _ := flags.GetString("key")
				patch.Key = &v
			}
			if flags.Changed("row") {
				v, _ := flags.GetString("row")
				row, ok := model.ParseRow(v)
				if !ok {
					return fmt.Errorf("unknown row %q (expected own or rival)", v)
				}
				patch.Row = &row
			}
			if flags.Changed("pre") {
				v, _ := flags.GetFloat64("pre")
				patch.PreSec = &v
			}
			if flags.Changed("post") {
				v, _ := flags.GetFloat64("post")
				patch.PostSec = &v
			}
			if flags.Changed("order") {
				v, _ := flags.GetInt("order")
				patch.Order = &v
			}
		}

		if err := a.store.UpdateTagType(tag.ID, patch); err != nil {
			return err
		}
		updated, _ := a.store.TagType(tag.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Tag type updated: %s (-%gs/+%gs)\n", updated.Label, updated.PreSec, updated.PostSec)
		return nil
	}),
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <tag>",
	Short: "Delete a tag type",
	Long:  `Delete a tag type. Clips tagged with it are kept.`,
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		tag, err := resolveTag(a, args[0])
		if err != nil {
			return err
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			confirmed := false
			if err := runForm(forms.NewConfirmForm("Delete "+tag.Label+"?", "Clips tagged with it are kept.", &confirmed)); err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
		}
		if err := a.store.DeleteTagType(tag.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tag type '%s' deleted.\n", tag.Label)
		return nil
	}),
}

func init() {
	tagAddCmd.Flags().String("key", "", "short key (default derived from the label)")
	tagAddCmd.Flags().String("row", "own", "own or rival")
	tagAddCmd.Flags().Float64("pre", 0, "seconds before the tagged instant (default 3)")
	tagAddCmd.Flags().Float64("post", 0, "seconds after the tagged instant (default 8)")

	tagEditCmd.Flags().String("label", "", "new label")
	tagEditCmd.Flags().String("key", "", "new key")
	tagEditCmd.Flags().String("row", "", "own or rival")
	tagEditCmd.Flags().Float64("pre", 0, "seconds before")
	tagEditCmd.Flags().Float64("post", 0, "seconds after")
	tagEditCmd.Flags().Int("order", 0, "position within the row")

	tagDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagEditCmd)
	tagCmd.AddCommand(tagDeleteCmd)
	rootCmd.AddCommand(tagCmd)
}
