package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/pkg/export"
)

var clipExportCmd = &cobra.Command{
	Use:   "export [clip]",
	Short: "Write a clip to an mp4 file",
	Long: `Write the selected clip (or the given one) to an mp4 file under --out.
YouTube videos are fetched with yt-dlp; local files are cut with ffmpeg.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		clip, err := resolveClip(a, argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		return runExport(cmd, a, []model.Clip{clip})
	}),
}

var playlistExportCmd = &cobra.Command{
	Use:   "export <playlist>",
	Short: "Write every clip of a playlist to mp4 files",
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
		return runExport(cmd, a, clips)
	}),
}

func runExport(cmd *cobra.Command, a *app, clips []model.Clip) error {
	game := a.store.CurrentGame()
	if game == nil {
		return a.requireGame()
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = filepath.Join(a.cfg.DataDir, "exports")
	}

	jobs := make([]export.Job, 0, len(clips))
	for _, c := range clips {
		label := c.TagTypeID
		if tag, ok := a.store.TagType(c.TagTypeID); ok {
			label = tag.Label
		}
		jobs = append(jobs, export.Job{
			VideoRef: game.VideoRef,
			Start:    c.StartSec,
			End:      c.EndSec,
			Path:     export.ClipPath(outDir, game.Title, label, c),
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	err := export.RunAll(ctx, jobs, func(n, total int, job export.Job, err error) {
		status := "ok"
		if err != nil {
			status = "failed"
		}
		fmt.Fprintf(out, "[%d/%d] %s %s\n", n, total, job.Path, status)
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

func init() {
	clipExportCmd.Flags().String("out", "", "output directory (default <data_dir>/exports)")
	playlistExportCmd.Flags().String("out", "", "output directory (default <data_dir>/exports)")
	clipCmd.AddCommand(clipExportCmd)
	playlistCmd.AddCommand(playlistExportCmd)
}
