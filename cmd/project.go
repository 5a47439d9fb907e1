package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/cloud"
	"github.com/user/simplereplay-cli/store"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Save, load and share projects through the document store",
}

var projectSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the working set to the cloud",
	Long: `Save tag types, games, clips, playlists, flags and comments as one
project document. The first save creates the document; later saves overwrite it.`,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		id, err := a.store.SaveToCloud(ctx)
		if err != nil {
			return fmt.Errorf("save failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Project saved: %s\n", id)
		fmt.Fprintf(cmd.OutOrStdout(), "Share link: %s\n", a.store.Location())
		return nil
	}),
}

var projectLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Replace the working set with a saved project",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		return loadProject(cmd, a, args[0])
	}),
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recently saved projects",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		projects, err := a.store.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No projects saved yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTitle\tVideo\tUpdated")
		fmt.Fprintln(w, "--\t-----\t-----\t-------")
		for _, p := range projects {
			updated := ""
			if p.UpdatedAt != nil {
				updated = p.UpdatedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.VideoRef, updated)
		}
		return w.Flush()
	}),
}

var projectShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the share link of the saved project",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if a.store.ProjectID() == "" {
			return errors.New("project not saved yet: run 'simplereplay project save' first")
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.store.Location())
		return nil
	}),
}

var projectDetachCmd = &cobra.Command{
	Use:   "detach",
	Short: "Forget the saved project so the next save creates a new one",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		a.store.AttachProject("")
		fmt.Fprintln(cmd.OutOrStdout(), "Detached. The next save creates a new project.")
		return nil
	}),
}

var openCmd = &cobra.Command{
	Use:   "open <share-url>",
	Short: "Open a project from a share link",
	Long: `Open the project named by a share link's project parameter. A link
without one leaves the current working set in place.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := cloud.ProjectIDFromURL(args[0])
		if err != nil {
			return err
		}
		if id == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "The link names no project; keeping the current data.")
			return nil
		}
		return loadProject(cmd, a, id)
	}),
}

// loadProject loads id into the store. With the sqlite provider the document
// is also imported so later invocations see it.
func loadProject(cmd *cobra.Command, a *app, id string) error {
	var importErr error
	if a.local != nil {
		sub := a.store.Subscribe(store.ProjectLoaded, func(_ store.Event, payload any) {
			if doc, ok := payload.(*cloud.Project); ok {
				importErr = a.local.ImportProject(doc)
			}
		})
		defer a.store.Unsubscribe(sub)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.SaveTimeout())
	defer cancel()
	if !a.store.LoadFromCloud(ctx, id) {
		return fmt.Errorf("project %s could not be loaded", id)
	}
	if importErr != nil {
		return fmt.Errorf("import project: %w", importErr)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded project %s: %d game(s), %d clip(s).\n", id, len(a.store.Games()), len(a.store.Clips()))
	if g := a.store.CurrentGame(); g != nil {
		fmt.Fprintf(out, "Current game: %s\n", g.Title)
	}
	if a.local == nil {
		fmt.Fprintln(out, "The demo provider keeps nothing between runs; use the sqlite provider to keep it.")
	}
	return nil
}

func init() {
	projectCmd.AddCommand(projectSaveCmd)
	projectCmd.AddCommand(projectLoadCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShareCmd)
	projectCmd.AddCommand(projectDetachCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(openCmd)
}
