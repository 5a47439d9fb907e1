// Package export writes clip ranges of a game video to local mp4 files.
// Local video files are cut with ffmpeg; YouTube references are fetched
// section by section with yt-dlp.
package export

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/user/simplereplay-cli/deps"
	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/pkg/videoref"
)

// MinDuration is the shortest clip written, in seconds.
const MinDuration = 4.0

// unsafeChars matches characters not safe for filenames: / \ : * ? " < > | and spaces
var unsafeChars = regexp.MustCompile(`[/\\:*?"<>|\s]`)

// runCommand and lookPath are swapped in tests.
var (
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).CombinedOutput()
	}
	checkYtDlp  = deps.CheckYtDlp
	checkFfmpeg = deps.CheckFfmpeg
)

// Job is one clip to write.
type Job struct {
	VideoRef string
	Start    float64
	End      float64
	Path     string
}

func sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return "untitled"
	}
	return s
}

// ClipPath returns where a clip is written:
// {outDir}/{game}/{tag}/{hhmmss}-{tag}-{clipID prefix}.mp4
func ClipPath(outDir, gameTitle, tagLabel string, c model.Clip) string {
	total := int(math.Floor(c.TSec))
	hhmmss := fmt.Sprintf("%02d%02d%02d", total/3600, (total%3600)/60, total%60)

	id := c.ID
	if len(id) > 8 {
		id = id[:8]
	}
	tag := sanitize(tagLabel)
	filename := fmt.Sprintf("%s-%s-%s.mp4", hhmmss, tag, sanitize(id))
	return filepath.Join(outDir, sanitize(gameTitle), tag, filename)
}

// EffectiveEnd returns end, extended so the clip lasts at least MinDuration.
func EffectiveEnd(start, end float64) float64 {
	return math.Max(end, start+MinDuration)
}

// isLocalFile reports whether ref names a file on disk rather than a video id or URL.
func isLocalFile(ref string) bool {
	if videoref.IsID(ref) || strings.Contains(ref, "://") {
		return false
	}
	info, err := os.Stat(ref)
	return err == nil && !info.IsDir()
}

// Run writes one clip.
func Run(ctx context.Context, job Job) error {
	if job.Path == "" {
		return errors.New("export: no output path")
	}
	end := EffectiveEnd(job.Start, job.End)

	var name string
	var args []string
	if isLocalFile(job.VideoRef) {
		if err := checkFfmpeg(); err != nil {
			return err
		}
		name = "ffmpeg"
		args = []string{
			"-y",
			"-ss", fmt.Sprintf("%.3f", job.Start),
			"-i", job.VideoRef,
			"-t", fmt.Sprintf("%.3f", end-job.Start),
			"-c", "copy",
			job.Path,
		}
	} else {
		if err := checkYtDlp(); err != nil {
			return err
		}
		// yt-dlp hands section cuts to ffmpeg.
		if err := checkFfmpeg(); err != nil {
			return err
		}
		name = "yt-dlp"
		args = []string{
			"--quiet",
			"--no-playlist",
			"--force-overwrites",
			"--download-sections", fmt.Sprintf("*%.3f-%.3f", job.Start, end),
			"--merge-output-format", "mp4",
			"-o", job.Path,
			videoref.WatchURL(job.VideoRef),
		}
	}

	if err := os.MkdirAll(filepath.Dir(job.Path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	output, err := runCommand(ctx, name, args...)
	if err != nil {
		return fmt.Errorf("%s failed: %w\n%s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Progress is called after each job with its 1-based position.
type Progress func(n, total int, job Job, err error)

// RunAll writes jobs one at a time. A failed job does not stop the rest;
// cancelling ctx does. The failures are returned joined.
func RunAll(ctx context.Context, jobs []Job, progress Progress) error {
	var errs []error
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		err := Run(ctx, job)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(job.Path), err))
		}
		if progress != nil {
			progress(i+1, len(jobs), job, err)
		}
	}
	return errors.Join(errs...)
}
