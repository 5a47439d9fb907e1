// Package timeutil converts between video positions in seconds and the clock
// strings shown and typed by users.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func clamp(seconds float64) int {
	if seconds < 0 {
		return 0
	}
	return int(seconds)
}

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	total := clamp(seconds)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatClock formats seconds as M:SS with unbounded minutes (e.g. 8:21, 26:07),
// the form used in clip lists.
func FormatClock(seconds float64) string {
	total := clamp(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatRange formats a clip interval as "start → end".
func FormatRange(start, end float64) string {
	return FormatClock(start) + " → " + FormatClock(end)
}

// ParseTimeToSeconds parses H:MM:SS, MM:SS or plain seconds. Only the last
// field may have a fraction.
func ParseTimeToSeconds(timeStr string) (float64, error) {
	fields := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(fields) > 3 {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}

	var total float64
	for i, f := range fields {
		last := i == len(fields)-1
		var v float64
		var err error
		if last {
			v, err = strconv.ParseFloat(f, 64)
		} else {
			var n int
			n, err = strconv.Atoi(f)
			v = float64(n)
		}
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
		}
		total = total*60 + v
	}
	return total, nil
}
