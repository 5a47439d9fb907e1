// Package styles provides the Lipgloss palette and the renderers used to
// print clips, flags and comments in the terminal.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// Background is the darkest surface colour (Ciapre background)
	Background = lipgloss.Color("#191C27")
	// Muted is used for borders and secondary rows (Ciapre ANSI 6 brown)
	Muted = lipgloss.Color("#5C4F4B")
	// Accent marks the selected clip and focused form fields (Ciapre ANSI 5 magenta)
	Accent = lipgloss.Color("#724D7C")
	// Subtle is the secondary text colour (Ciapre foreground)
	Subtle = lipgloss.Color("#AEA47A")
	// Text is the primary text colour (Ciapre ANSI 14 cream)
	Text = lipgloss.Color("#F3DBB2")
	// Own colours tag types on the own-team row (Ciapre ANSI 12 bright blue)
	Own = lipgloss.Color("#3097C6")
	// Rival colours tag types on the rival row (Ciapre ANSI 13 bright magenta)
	Rival = lipgloss.Color("#D33061")
	// Amber highlights @mentions and headers (Ciapre derived)
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for warnings and errors (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages (Ciapre ANSI 2)
	Green = lipgloss.Color("#A6A75D")
)

// Header is the style for section titles such as the game name.
var Header = lipgloss.NewStyle().
	Foreground(Amber).
	Bold(true)

// Border is the style for bordered panels
var Border = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Muted).
	Padding(0, 1)

// Highlight is the style for the current clip row
var Highlight = lipgloss.NewStyle().
	Background(Accent).
	Foreground(Text).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(Text)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Subtle)

// Mention is the style for @name references in comments
var Mention = lipgloss.NewStyle().
	Foreground(Amber).
	Bold(true)

// CommentAuthor is the style for the name before a comment
var CommentAuthor = lipgloss.NewStyle().
	Foreground(Own).
	Bold(true)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
