package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/model"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Narrow the clip list",
	Long: `Filters combine: a clip must be in the playlist filter, match the tag
filter, and carry any of the flag filters. Tag and playlist filters replace
each other. Changing tag or playlist filters clears the clip selection.`,
}

var filterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active filters",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if !a.store.HasFilters() {
			fmt.Fprintln(cmd.OutOrStdout(), "No filters active.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimPrefix(filterSummary(a), ", "))
		return nil
	}),
}

var filterTagCmd = &cobra.Command{
	Use:   "tag <tag>",
	Short: "Toggle the tag filter",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		tag, err := resolveTag(a, args[0])
		if err != nil {
			return err
		}
		a.store.ToggleTagFilter(tag.ID)
		return printFilterResult(cmd, a)
	}),
}

var filterPlaylistCmd = &cobra.Command{
	Use:   "playlist <playlist>",
	Short: "Show only the clips of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		pl, err := resolvePlaylist(a, args[0])
		if err != nil {
			return err
		}
		if err := a.store.SetPlaylistFilter(pl.ID); err != nil {
			return err
		}
		return printFilterResult(cmd, a)
	}),
}

var filterFlagCmd = &cobra.Command{
	Use:   "flag <flag>",
	Short: "Toggle a flag filter",
	Long:  `Toggle a flag filter: bueno, acorregir, duda, importante (or 1-4), or chat for clips with comments.`,
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.requireGame(); err != nil {
			return err
		}
		flag, err := model.ParseFilterFlag(args[0])
		if err != nil {
			return err
		}
		if err := a.store.ToggleFilterFlag(flag); err != nil {
			return err
		}
		return printFilterResult(cmd, a)
	}),
}

var filterClearCmd = &cobra.Command{
	Use:       "clear [tags|playlist|flags|all]",
	Short:     "Clear filters",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"tags", "playlist", "flags", "all"},
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		switch argOrEmpty(args, 0) {
		case "tags":
			a.store.ClearTagFilters()
		case "playlist":
			a.store.ClearPlaylistFilter()
		case "flags":
			a.store.ClearFilterFlags()
		default:
			a.store.ClearAllFilters()
		}
		return printFilterResult(cmd, a)
	}),
}

// filterSummary describes the active filters as ", tag X, playlist Y, flags Z".
func filterSummary(a *app) string {
	var parts []string
	for _, id := range a.store.ActiveTagFilters() {
		label := id
		if tag, ok := a.store.TagType(id); ok {
			label = tag.Label
		}
		parts = append(parts, "tag "+label)
	}
	if id := a.store.ActivePlaylistID(); id != "" {
		name := id
		for _, pl := range a.store.Playlists() {
			if pl.ID == id {
				name = pl.Name
			}
		}
		parts = append(parts, "playlist "+name)
	}
	if flags := a.store.FilterFlags(); len(flags) > 0 {
		names := make([]string, len(flags))
		for i, f := range flags {
			names[i] = f.Emoji() + " " + string(f)
		}
		parts = append(parts, "flags "+strings.Join(names, " or "))
	}
	if len(parts) == 0 {
		return ""
	}
	return ", " + strings.Join(parts, ", ")
}

func printFilterResult(cmd *cobra.Command, a *app) error {
	summary := strings.TrimPrefix(filterSummary(a), ", ")
	if summary == "" {
		summary = "no filters"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d clip(s) shown (%s)\n", len(a.store.FilteredClips()), summary)
	return nil
}

func init() {
	filterCmd.AddCommand(filterShowCmd)
	filterCmd.AddCommand(filterTagCmd)
	filterCmd.AddCommand(filterPlaylistCmd)
	filterCmd.AddCommand(filterFlagCmd)
	filterCmd.AddCommand(filterClearCmd)
	rootCmd.AddCommand(filterCmd)
}
