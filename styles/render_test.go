package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/user/simplereplay-cli/model"
)

func TestMentions(t *testing.T) {
	assert.Equal(t, []string{"Arq", "Del"}, Mentions("@Arq mirá esto, @Del."))
	assert.Equal(t, []string{"Pilar"}, Mentions("ojo @Pilar"))
	assert.Nil(t, Mentions("mail@ mail-@x-y sin menciones"))
}

func TestHighlightMentionsWrapsOnlyMentions(t *testing.T) {
	marker := lipgloss.NewStyle().Transform(func(s string) string { return "[" + s + "]" })
	assert.Equal(t, "[@Arq] mirá esto, [@Del].", HighlightMentions("@Arq mirá esto, @Del.", marker))
	assert.Equal(t, "sin menciones", HighlightMentions("sin menciones", marker))
}

func TestFlagBadgesInShortcutOrder(t *testing.T) {
	got := FlagBadges([]model.Flag{model.FlagImportante, model.FlagBueno})
	assert.Equal(t, model.FlagBueno.Emoji()+model.FlagImportante.Emoji(), got)
	assert.Empty(t, FlagBadges(nil))
}

func TestClipTableListsClips(t *testing.T) {
	rows := []ClipRow{
		{Clip: model.Clip{ID: "c1", TagTypeID: "tag-try", TSec: 501, StartSec: 498, EndSec: 509}, Tag: model.TagType{Label: "Try"}},
		{Clip: model.Clip{ID: "c2", TagTypeID: "tag-gone", TSec: 60, StartSec: 57, EndSec: 68}, Comments: 2, Current: true},
	}
	out := ClipTable(rows)
	assert.Contains(t, out, "Try")
	assert.Contains(t, out, "8:18 → 8:29")
	assert.Contains(t, out, "tag-gone", "unknown tags fall back to the id")
	assert.Contains(t, out, "💬2")
	assert.Equal(t, 1, strings.Count(out, "c1"))
}

func TestCommentsEmpty(t *testing.T) {
	assert.Contains(t, Comments(nil), "Sin comentarios")
}
