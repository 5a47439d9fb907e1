package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/forms"
	"github.com/user/simplereplay-cli/styles"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Chat about a clip",
	Long:  `Add and read comments on clips. Mention teammates with @name.`,
}

var commentAddCmd = &cobra.Command{
	Use:   "add [message...]",
	Short: "Comment on a clip",
	Long:  `Add a comment to the selected clip (or --clip). Without a message a form is shown.`,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		clipArg, _ := cmd.Flags().GetString("clip")
		clip, err := resolveClip(a, clipArg)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		result := forms.CommentFormResult{Name: name, Text: strings.Join(args, " ")}
		if result.Text == "" {
			if result.Name == "" {
				result.Name = a.store.UserID()
			}
			if err := runForm(forms.NewCommentForm(clipHeadline(a, clip), &result)); err != nil {
				return err
			}
		}

		comment, err := a.store.AddComment(clip.ID, result.Name, result.Text)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.Comments(a.store.Comments(clip.ID)))
		if mentions := styles.Mentions(comment.Text); len(mentions) > 0 {
			a.logger.Debug("comment mentions", "clip_id", clip.ID, "mentions", mentions)
		}
		return nil
	}),
}

var commentListCmd = &cobra.Command{
	Use:   "list [clip]",
	Short: "Show the comments on a clip",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		clip, err := resolveClip(a, argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), clipHeadline(a, clip))
		fmt.Fprintln(cmd.OutOrStdout(), styles.Comments(a.store.Comments(clip.ID)))
		return nil
	}),
}

func init() {
	commentAddCmd.Flags().String("clip", "", "clip id or number (default the selected clip)")
	commentAddCmd.Flags().String("name", "", "author name (default the configured user)")

	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)
	rootCmd.AddCommand(commentCmd)
}
