package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/forms"
	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/pkg/timeutil"
	"github.com/user/simplereplay-cli/store"
	"github.com/user/simplereplay-cli/styles"
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Tag, browse and play clips",
	Long: `Clips are derived from a tagged instant and the tag type's window.
Clip arguments accept an id, a position in 'clip list', or nothing for the
selected clip.`,
}

var clipAddCmd = &cobra.Command{
	Use:   "add <tag> [time]",
	Short: "Tag an instant and create its clip",
	Long: `Tag an instant of the current game. The time may be H:MM:SS, MM:SS or
seconds; without it the position of the running mpv is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		tag, err := resolveTag(a, args[0])
		if err != nil {
			return err
		}

		var t float64
		if len(args) == 2 {
			if t, err = timeutil.ParseTimeToSeconds(args[1]); err != nil {
				return fmt.Errorf("invalid time: %w", err)
			}
		} else if t, err = currentTimeFromMpv(a); err != nil {
			return err
		}

		clip, err := a.store.AddClip(tag.ID, t)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Clip created: %s @ %s (%s)\n",
			tag.Label, timeutil.FormatClock(clip.TSec), timeutil.FormatRange(clip.StartSec, clip.EndSec))
		return nil
	}),
}

var clipListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the clips of the current game",
	Long:  `List clips in time order, narrowed by the active filters unless --all is given.`,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")

		clips := a.store.FilteredClips()
		if all {
			clips = a.store.Clips()
		}
		out := cmd.OutOrStdout()
		if len(clips) == 0 {
			if a.store.HasFilters() && !all {
				fmt.Fprintln(out, "No clips match the active filters.")
			} else {
				fmt.Fprintln(out, "No clips yet. Tag one with 'simplereplay clip add <tag> [time]'.")
			}
			return nil
		}

		fmt.Fprintln(out, clipTable(a, clips))
		fmt.Fprintf(out, "%d clip(s)%s\n", len(clips), filterSummary(a))
		return nil
	}),
}

var clipShowCmd = &cobra.Command{
	Use:   "show [clip]",
	Short: "Show a clip with its flags and comments",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		clip, err := resolveClip(a, argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		printClip(cmd, a, clip)
		return nil
	}),
}

var clipSelectCmd = &cobra.Command{
	Use:   "select <clip>",
	Short: "Select a clip",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		clip, err := resolveClip(a, args[0])
		if err != nil {
			return err
		}
		a.store.SetCurrentClip(clip.ID)
		printClip(cmd, a, clip)
		return nil
	}),
}

func navigate(dir store.Direction) func(*cobra.Command, []string) error {
	return withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		a.store.NavigateClip(dir)
		clip := a.store.CurrentClip()
		if clip == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No clips to navigate.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] ", a.store.CurrentClipIndex()+1, len(a.store.FilteredClips()))
		printClip(cmd, a, *clip)
		return nil
	})
}

var clipNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Select the next clip in the filtered list",
	RunE:  navigate(store.Next),
}

var clipPrevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Select the previous clip in the filtered list",
	RunE:  navigate(store.Prev),
}

var clipAdjustCmd = &cobra.Command{
	Use:   "adjust <start|end> <delta> [clip]",
	Short: "Move a clip bound",
	Long: `Move the start or end of a clip by delta seconds (for example -1 or +2).
The start never goes below 0 and always stays before the end. Put -- before
a negative delta: simplereplay clip adjust start -- -1`,
	Args: cobra.RangeArgs(2, 3),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		bound, err := model.ParseBound(args[0])
		if err != nil {
			return err
		}
		delta, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid delta %q: %w", args[1], err)
		}
		clip, err := resolveClip(a, argOrEmpty(args, 2))
		if err != nil {
			return err
		}

		updated, err := a.store.UpdateClipBounds(clip.ID, bound, delta)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Clip %s now %s (%.1fs)\n",
			updated.ID, timeutil.FormatRange(updated.StartSec, updated.EndSec), updated.Duration())
		return nil
	}),
}

var clipDeleteCmd = &cobra.Command{
	Use:   "delete [clip]",
	Short: "Delete a clip",
	Long:  `Delete a clip together with its playlist entries, flags and comments.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		clip, err := resolveClip(a, argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			confirmed := false
			title := fmt.Sprintf("Delete clip @ %s?", timeutil.FormatClock(clip.TSec))
			if err := runForm(forms.NewConfirmForm(title, "Its flags, comments and playlist entries go too.", &confirmed)); err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
		}
		if err := a.store.DeleteClip(clip.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Clip %s deleted.\n", clip.ID)
		return nil
	}),
}

var clipPlayCmd = &cobra.Command{
	Use:   "play [clip]",
	Short: "Play a clip in mpv and pause at its end",
	Long: `Seek mpv to the clip start, play, and pause when the clip end is reached.
With --continue the following clips of the filtered list are played in turn.
Pausing mpv by hand stops the sequence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		clip, err := resolveClip(a, argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		cont, _ := cmd.Flags().GetBool("continue")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		p, client, err := connectPlayer(ctx, a, a.store.CurrentGame().VideoRef)
		if err != nil {
			return err
		}
		defer client.Close()
		defer p.Close()

		a.store.SetCurrentClip(clip.ID)
		for {
			fmt.Fprintf(cmd.OutOrStdout(), "▶ %s\n", clipHeadline(a, clip))
			if err := p.PlayClip(clip.StartSec, clip.EndSec); err != nil {
				return fmt.Errorf("failed to play clip: %w", err)
			}
			if err := p.WaitClip(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if ctx.Err() != nil {
				return p.Pause()
			}
			if _, pending := p.ClipEnd(); pending || !cont {
				return nil
			}

			a.store.NavigateClip(store.Next)
			next := a.store.CurrentClip()
			if next == nil || next.ID == clip.ID {
				return nil
			}
			clip = *next
		}
	}),
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the current game's video in mpv",
	Long:  `Launch mpv with the current game's video, paused at the start. Tag while it plays with 'simplereplay clip add <tag>'.`,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		game := a.store.CurrentGame()

		p, client, err := connectPlayer(cmd.Context(), a, game.VideoRef)
		if err != nil {
			return err
		}
		defer client.Close()
		defer p.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Video session started: %s\n", game.Title)
		if duration, err := client.Duration(); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Duration: %s\n", timeutil.FormatTime(duration))
		}
		return nil
	}),
}

// clipTable renders clips with their tag, flags and comment count.
func clipTable(a *app, clips []model.Clip) string {
	current := ""
	if c := a.store.CurrentClip(); c != nil {
		current = c.ID
	}
	rows := make([]styles.ClipRow, len(clips))
	for i, c := range clips {
		tag, _ := a.store.TagType(c.TagTypeID)
		rows[i] = styles.ClipRow{
			Clip:     c,
			Tag:      tag,
			Flags:    a.store.ClipUserFlags(c.ID),
			Comments: len(a.store.Comments(c.ID)),
			Current:  c.ID == current,
		}
	}
	return styles.ClipTable(rows)
}

// clipHeadline is "Label @ M:SS (start → end)".
func clipHeadline(a *app, clip model.Clip) string {
	label := clip.TagTypeID
	if tag, ok := a.store.TagType(clip.TagTypeID); ok {
		label = styles.TagLabel(tag)
	}
	return fmt.Sprintf("%s @ %s (%s)", label, timeutil.FormatClock(clip.TSec),
		timeutil.FormatRange(clip.StartSec, clip.EndSec))
}

func printClip(cmd *cobra.Command, a *app, clip model.Clip) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, clipHeadline(a, clip))
	if flags := a.store.ClipUserFlags(clip.ID); len(flags) > 0 {
		fmt.Fprintf(out, "Flags: %s\n", styles.FlagBadges(flags))
	}
	fmt.Fprintln(out, styles.Comments(a.store.Comments(clip.ID)))
}

func init() {
	clipListCmd.Flags().Bool("all", false, "ignore the active filters")
	clipDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	clipPlayCmd.Flags().BoolP("continue", "c", false, "keep playing the following filtered clips")

	clipCmd.AddCommand(clipAddCmd)
	clipCmd.AddCommand(clipListCmd)
	clipCmd.AddCommand(clipShowCmd)
	clipCmd.AddCommand(clipSelectCmd)
	clipCmd.AddCommand(clipNextCmd)
	clipCmd.AddCommand(clipPrevCmd)
	clipCmd.AddCommand(clipAdjustCmd)
	clipCmd.AddCommand(clipDeleteCmd)
	clipCmd.AddCommand(clipPlayCmd)
	rootCmd.AddCommand(clipCmd)
	rootCmd.AddCommand(watchCmd)
}
