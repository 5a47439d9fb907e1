package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/user/simplereplay-cli/logging"
	"github.com/user/simplereplay-cli/mpv"
	"github.com/user/simplereplay-cli/player"
)

const mpvConnectTimeout = 5 * time.Second

// connectPlayer attaches to a running mpv, launching one when none answers,
// and makes sure videoRef is the loaded video.
func connectPlayer(ctx context.Context, a *app, videoRef string) (*player.Player, *mpv.Client, error) {
	socket := a.cfg.Player.SocketPath
	client := mpv.NewClient(socket)

	launched := false
	if err := client.Connect(); err != nil {
		if _, err := mpv.Launch(videoRef, socket); err != nil {
			return nil, nil, fmt.Errorf("failed to launch mpv: %w", err)
		}
		launched = true

		// Wait briefly for socket to be ready
		connectCtx, cancel := context.WithTimeout(ctx, mpvConnectTimeout)
		defer cancel()
		if err := client.ConnectWait(connectCtx); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mpv: %w", err)
		}
	}

	p := player.New(client, player.Options{
		PollInterval: a.cfg.PollInterval(),
		Logger:       logging.WithComponent(a.logger, "player"),
	})

	if !launched {
		path, _ := client.GetProperty("path")
		if loaded, _ := path.(string); !strings.Contains(loaded, videoRef) {
			if err := p.LoadVideo(videoRef); err != nil {
				client.Close()
				return nil, nil, fmt.Errorf("failed to load video: %w", err)
			}
		}
	}
	return p, client, nil
}

// currentTimeFromMpv reads the playback position of a running mpv.
func currentTimeFromMpv(a *app) (float64, error) {
	client := mpv.NewClient(a.cfg.Player.SocketPath)
	if err := client.Connect(); err != nil {
		return 0, fmt.Errorf("failed to connect to mpv: %w\n(Is mpv running? Start it with 'simplereplay watch' or pass a time)", err)
	}
	defer client.Close()

	pos, err := client.TimePos()
	if err != nil {
		return 0, fmt.Errorf("failed to get current timestamp: %w", err)
	}
	return pos, nil
}
