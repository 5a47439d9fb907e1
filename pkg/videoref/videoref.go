// Package videoref turns the many shapes of a YouTube link into the bare
// 11-character video id and back into a playable URL.
package videoref

import (
	"regexp"
	"strings"
)

var (
	linkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?.*v=([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/v/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
	}
	idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractID returns the video id found in input. Links of the watch, short,
// embed, v/ and shorts/ forms are recognised, a bare id is returned as is,
// and anything else is returned trimmed but otherwise unchanged.
func ExtractID(input string) string {
	input = strings.TrimSpace(input)
	for _, re := range linkPatterns {
		if m := re.FindStringSubmatch(input); m != nil {
			return m[1]
		}
	}
	return input
}

// IsID reports whether s has the shape of a video id.
func IsID(s string) bool {
	return idPattern.MatchString(s)
}

// WatchURL returns the watch link for a video id. Inputs that are not ids
// (local files, other URLs) are returned unchanged so they can be played directly.
func WatchURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if IsID(ref) {
		return "https://www.youtube.com/watch?v=" + ref
	}
	return ref
}
