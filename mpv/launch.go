package mpv

import (
	"os"
	"os/exec"

	"github.com/user/simplereplay-cli/deps"
	"github.com/user/simplereplay-cli/pkg/videoref"
)

// Launch starts mpv idle and paused with its IPC socket at socketPath,
// opening ref if it is not empty. Video ids need yt-dlp, which is checked too.
// The returned command can be used for cleanup.
func Launch(ref, socketPath string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}
	if ref != "" && videoref.IsID(ref) {
		if err := deps.CheckYtDlp(); err != nil {
			return nil, err
		}
	}
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	// A stale socket from a previous run would accept no connections.
	_ = os.Remove(socketPath)

	args := []string{
		"--input-ipc-server=" + socketPath,
		"--idle=yes",
		"--force-window=yes",
		"--pause",
		"--keep-open=yes",
	}
	if ref != "" {
		args = append(args, videoref.WatchURL(ref))
	}

	cmd := exec.Command("mpv", args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}
