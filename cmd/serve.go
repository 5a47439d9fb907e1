package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/docstore"
	"github.com/user/simplereplay-cli/logging"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the document store that projects are saved to",
	Long: `Run the project document store over HTTP. Point cloud.base_url at it
to save, load and share projects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
			cfg.Server.Bind = bind
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		logger := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

		st, err := docstore.Open(cfg.Server.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open document store: %w", err)
		}
		defer st.Close()

		srv := docstore.NewServer(docstore.ServerConfig{
			Addr:    cfg.Server.Bind,
			Store:   st,
			Logger:  logging.WithComponent(logger, "docstore"),
			Version: Version,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			logger.Info("received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().String("bind", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
