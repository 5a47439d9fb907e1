package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/model"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Group clips into playlists",
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a playlist in the current game",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		pl, err := a.store.AddPlaylist(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Playlist created: %s (%s)\n", pl.Name, pl.ID)
		return nil
	}),
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the playlists of the current game",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		playlists := a.store.Playlists()
		if len(playlists) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No playlists found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\tName\tClips\tID")
		fmt.Fprintln(w, "\t----\t-----\t--")
		active := a.store.ActivePlaylistID()
		for _, pl := range playlists {
			marker := ""
			if pl.ID == active {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", marker, pl.Name, len(a.store.PlaylistItems(pl.ID)), pl.ID)
		}
		return w.Flush()
	}),
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist> [clip]",
	Short: "Append a clip to a playlist",
	Long:  `Append a clip (the selected one by default) to a playlist. Adding a clip twice does nothing.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		pl, err := resolvePlaylist(a, args[0])
		if err != nil {
			return err
		}
		clip, err := resolveClip(a, argOrEmpty(args, 1))
		if err != nil {
			return err
		}
		if err := a.store.AddClipToPlaylist(pl.ID, clip.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d clip(s).\n", pl.Name, len(a.store.PlaylistItems(pl.ID)))
		return nil
	}),
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <playlist>",
	Short: "List a playlist's clips in playlist order",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		pl, err := resolvePlaylist(a, args[0])
		if err != nil {
			return err
		}
		clips := playlistClips(a, pl)
		if len(clips) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is empty.\n", pl.Name)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), clipTable(a, clips))
		return nil
	}),
}

// playlistClips returns the clips of pl in playlist order.
func playlistClips(a *app, pl model.Playlist) []model.Clip {
	byID := map[string]model.Clip{}
	for _, c := range a.store.Clips() {
		byID[c.ID] = c
	}
	var clips []model.Clip
	for _, id := range a.store.PlaylistItems(pl.ID) {
		if c, ok := byID[id]; ok {
			clips = append(clips, c)
		}
	}
	return clips
}

func init() {
	playlistCmd.AddCommand(playlistCreateCmd)
	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistShowCmd)
	rootCmd.AddCommand(playlistCmd)
}
