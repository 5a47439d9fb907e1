package model

import (
	"fmt"
	"strings"
)

// Flag is a per-user triage marker on a clip.
type Flag string

const (
	FlagBueno      Flag = "bueno"
	FlagACorregir  Flag = "acorregir"
	FlagDuda       Flag = "duda"
	FlagImportante Flag = "importante"

	// FlagHasChat only exists as a view filter: it matches clips with comments.
	FlagHasChat Flag = "has_chat"
)

// Flags lists the real flags in shortcut order (1-4).
var Flags = []Flag{FlagBueno, FlagACorregir, FlagDuda, FlagImportante}

// flagEmoji mirrors the labels shown next to each flag.
var flagEmoji = map[Flag]string{
	FlagBueno:      "👍",
	FlagACorregir:  "⚠️",
	FlagDuda:       "❓",
	FlagImportante: "⭐",
	FlagHasChat:    "💬",
}

// Valid reports whether f is one of the four real flags.
func (f Flag) Valid() bool {
	for _, known := range Flags {
		if f == known {
			return true
		}
	}
	return false
}

// Emoji returns the symbol used when printing the flag.
func (f Flag) Emoji() string {
	if e, ok := flagEmoji[f]; ok {
		return e
	}
	return string(f)
}

// ParseFlag accepts a flag name or its 1-4 shortcut.
func ParseFlag(s string) (Flag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "1", "2", "3", "4":
		return Flags[s[0]-'1'], nil
	}
	f := Flag(s)
	if f.Valid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown flag %q (expected bueno, acorregir, duda, importante or 1-4)", s)
}

// ParseFilterFlag is ParseFlag that also accepts has_chat (or "chat").
func ParseFilterFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FlagHasChat), "chat":
		return FlagHasChat, nil
	}
	return ParseFlag(s)
}
