package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	YtDlpInstallURL  = "https://github.com/yt-dlp/yt-dlp#installation"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func check(name, installURL string) error {
	if _, err := lookPath(name); err != nil {
		return &DependencyError{Name: name, InstallURL: installURL}
	}
	return nil
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return check("mpv", MpvInstallURL)
}

// CheckYtDlp checks for yt-dlp, which mpv uses to stream YouTube videos.
func CheckYtDlp() error {
	return check("yt-dlp", YtDlpInstallURL)
}

// CheckFfmpeg checks for ffmpeg, which yt-dlp needs to cut clip sections.
func CheckFfmpeg() error {
	return check("ffmpeg", FfmpegInstallURL)
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll() []error {
	var errs []error
	if err := CheckMpv(); err != nil {
		errs = append(errs, err)
	}
	if err := CheckYtDlp(); err != nil {
		errs = append(errs, err)
	}
	if err := CheckFfmpeg(); err != nil {
		errs = append(errs, err)
	}
	return errs
}
