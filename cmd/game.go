package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/forms"
	"github.com/user/simplereplay-cli/pkg/timeutil"
	"github.com/user/simplereplay-cli/pkg/videoref"
	"github.com/user/simplereplay-cli/styles"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage games",
	Long:  `Add games backed by a YouTube video, list them and choose the one you are working on.`,
}

var gameAddCmd = &cobra.Command{
	Use:   "add [title] [youtube-url-or-id]",
	Short: "Add a game and select it",
	Long: `Add a game. The video may be any YouTube link (watch, youtu.be, embed,
shorts) or a bare 11-character video id. Without arguments a form is shown.`,
	Args: cobra.MaximumNArgs(2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		result := forms.GameFormResult{Title: argOrEmpty(args, 0), VideoRef: argOrEmpty(args, 1)}
		if result.Title == "" || result.VideoRef == "" {
			if err := runForm(forms.NewGameForm(&result)); err != nil {
				return err
			}
		}

		game, err := a.store.AddGame(result.Title, videoref.ExtractID(result.VideoRef))
		if err != nil {
			return err
		}
		if err := a.store.SetCurrentGame(game.ID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Game added: %s (%s)\n", game.Title, game.ID)
		return nil
	}),
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List games",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		games := a.store.Games()
		if len(games) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No games yet. Add one with 'simplereplay game add'.")
			return nil
		}

		current := ""
		if g := a.store.CurrentGame(); g != nil {
			current = g.ID
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\t#\tTitle\tVideo\tCreated\tID")
		fmt.Fprintln(w, "\t-\t-----\t-----\t-------\t--")
		for i, g := range games {
			marker := ""
			if g.ID == current {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n", marker, i+1, g.Title, g.VideoRef,
				g.CreatedAt.Local().Format("2006-01-02"), g.ID)
		}
		return w.Flush()
	}),
}

var gameUseCmd = &cobra.Command{
	Use:   "use <id-or-number>",
	Short: "Select the game to work on",
	Long:  `Select a game. Filters and the clip selection are reset.`,
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		game, err := resolveGame(a, args[0])
		if err != nil {
			return err
		}
		if err := a.store.SetCurrentGame(game.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Now reviewing %s (%d clips, %d playlists)\n",
			styles.Header.Render(game.Title), len(a.store.Clips()), len(a.store.Playlists()))
		return nil
	}),
}

var gameShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current game",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		g := a.store.CurrentGame()
		clips := a.store.Clips()
		var total float64
		for _, c := range clips {
			total += c.Duration()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, styles.Header.Render(g.Title))
		fmt.Fprintf(out, "Video:     %s\n", videoref.WatchURL(g.VideoRef))
		fmt.Fprintf(out, "Clips:     %d (%s total)\n", len(clips), timeutil.FormatClock(total))
		fmt.Fprintf(out, "Playlists: %d\n", len(a.store.Playlists()))
		fmt.Fprintf(out, "Mode:      %s\n", a.store.Mode())
		if loc := a.store.Location(); loc != "" {
			fmt.Fprintf(out, "Shared at: %s\n", loc)
		}
		return nil
	}),
}

func init() {
	gameCmd.AddCommand(gameAddCmd)
	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameUseCmd)
	gameCmd.AddCommand(gameShowCmd)
	rootCmd.AddCommand(gameCmd)
}
