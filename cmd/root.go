package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/config"
	"github.com/user/simplereplay-cli/deps"
)

var Version = "0.1.0"

var (
	configPath       string
	providerOverride string
)

var rootCmd = &cobra.Command{
	Use:   "simplereplay",
	Short: "Tag, clip and share game video reviews",
	Long: `simplereplay is a video-annotation tool for sports game review.

Tag moments of a YouTube video with categories, get clips derived around
each tag, then filter, flag, comment and group them into playlists.
Projects can be saved to a document store and shared by link.

Features:
  - Games backed by YouTube videos, played through mpv
  - Configurable tag types with per-tag clip windows
  - Tag, playlist and flag filters
  - Per-user flags and @mention comments
  - Cloud save, load and share links`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "simplereplay version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long: `Check that mpv, yt-dlp and ffmpeg are installed and the configuration is valid.
ffmpeg is only needed to export clips.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking dependencies...")
		fmt.Fprintln(out)

		allGood := true
		for _, err := range deps.CheckAll() {
			var depErr *deps.DependencyError
			if errors.As(err, &depErr) {
				fmt.Fprintf(out, "✗ %s: NOT FOUND\n", depErr.Name)
				fmt.Fprintf(out, "  Install from: %s\n", depErr.InstallURL)
			}
			allGood = false
		}
		if allGood {
			fmt.Fprintln(out, "✓ mpv: OK")
			fmt.Fprintln(out, "✓ yt-dlp: OK")
			fmt.Fprintln(out, "✓ ffmpeg: OK")
		}

		if _, err := loadConfig(); err != nil {
			fmt.Fprintf(out, "✗ config: %v\n", err)
			allGood = false
		} else {
			fmt.Fprintln(out, "✓ config: OK")
		}

		fmt.Fprintln(out)
		if !allGood {
			return errors.New("some checks failed")
		}
		fmt.Fprintln(out, "All dependencies are installed!")
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		var err error
		if configPath == "" {
			path, err = config.DefaultConfigPath()
		} else {
			path, err = config.ExpandPath(configPath)
		}
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.CreateSample(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sample config written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, resolved, exists, err := config.Load(configPath)
		if err != nil {
			return err
		}
		source := resolved
		if !exists {
			source += " (not found, using defaults)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", source)
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/simplereplay/config.toml)")
	rootCmd.PersistentFlags().StringVar(&providerOverride, "provider", "", "data provider: sqlite or demo")

	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
