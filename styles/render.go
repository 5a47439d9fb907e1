package styles

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/pkg/timeutil"
)

var mentionPattern = regexp.MustCompile(`@\w+`)

// mentionEnds reports whether a mention may end right before r.
func mentionEnds(r byte) bool {
	return strings.IndexByte(" \t\n\r.,;:!?", r) >= 0
}

// Mentions returns the @names in text, in order. A name runs up to the
// first whitespace or punctuation mark.
func Mentions(text string) []string {
	var names []string
	for _, loc := range mentionPattern.FindAllStringIndex(text, -1) {
		if loc[1] < len(text) && !mentionEnds(text[loc[1]]) {
			continue
		}
		names = append(names, text[loc[0]+1:loc[1]])
	}
	return names
}

// HighlightMentions renders each @name in text with style.
func HighlightMentions(text string, style lipgloss.Style) string {
	var b strings.Builder
	last := 0
	for _, loc := range mentionPattern.FindAllStringIndex(text, -1) {
		if loc[1] < len(text) && !mentionEnds(text[loc[1]]) {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(style.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// TagLabel renders a tag label in its row colour.
func TagLabel(tag model.TagType) string {
	color := Own
	if tag.Row == model.RowRival {
		color = Rival
	}
	return lipgloss.NewStyle().Foreground(color).Render(tag.Label)
}

// FlagBadges renders flags as emoji, in shortcut order.
func FlagBadges(flags []model.Flag) string {
	var b strings.Builder
	for _, f := range model.Flags {
		for _, got := range flags {
			if got == f {
				b.WriteString(f.Emoji())
				break
			}
		}
	}
	return b.String()
}

// ClipRow is one line of a clip listing.
type ClipRow struct {
	Clip     model.Clip
	Tag      model.TagType
	Flags    []model.Flag
	Comments int
	Current  bool
}

// ClipTable renders clips as a table with index, tag, instant, range, flags
// and comment count columns. The current clip is highlighted.
func ClipTable(rows []ClipRow) string {
	data := make([][]string, len(rows))
	current := -1
	for i, r := range rows {
		chat := ""
		if r.Comments > 0 {
			chat = fmt.Sprintf("💬%d", r.Comments)
		}
		label := r.Tag.Label
		if label == "" {
			label = r.Clip.TagTypeID
		}
		data[i] = []string{
			fmt.Sprintf("%d", i+1),
			label,
			timeutil.FormatClock(r.Clip.TSec),
			timeutil.FormatRange(r.Clip.StartSec, r.Clip.EndSec),
			FlagBadges(r.Flags),
			chat,
			r.Clip.ID,
		}
		if r.Current {
			current = i
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Muted)).
		Headers("#", "TAG", "AT", "RANGE", "FLAGS", "CHAT", "ID").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Foreground(Amber).Bold(true)
			case row == current:
				return base.Inherit(Highlight)
			case col == 1 && row >= 0 && row < len(rows):
				color := Own
				if rows[row].Tag.Row == model.RowRival {
					color = Rival
				}
				return base.Foreground(color)
			case col == 6:
				return base.Foreground(Muted)
			default:
				return base.Foreground(Text)
			}
		})
	return t.String()
}

// Comments renders a clip's chat, one message per line, with mentions highlighted.
func Comments(comments []model.Comment) string {
	if len(comments) == 0 {
		return SecondaryText.Render("Sin comentarios")
	}
	lines := make([]string, len(comments))
	for i, c := range comments {
		lines[i] = fmt.Sprintf("%s %s %s",
			CommentAuthor.Render(c.Name+":"),
			HighlightMentions(c.Text, Mention),
			SecondaryText.Render(c.Timestamp.Local().Format("15:04")),
		)
	}
	return strings.Join(lines, "\n")
}
