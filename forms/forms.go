// Package forms provides the interactive huh prompts used when a command is
// run without the arguments it needs.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/pkg/videoref"
)

// NewConfirmForm creates a yes/no confirmation bound to confirmed.
func NewConfirmForm(title, description string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	).WithTheme(Theme())
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// GameFormResult holds the data returned by a completed game form.
type GameFormResult struct {
	Title    string
	VideoRef string
}

// NewGameForm asks for a game title and a YouTube URL or video id.
func NewGameForm(result *GameFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("New game"),

			huh.NewInput().
				Title("Title").
				Description("Required").
				Placeholder("Argentina vs EEUU").
				Value(&result.Title).
				Validate(required("title")),

			huh.NewInput().
				Title("Video").
				Description("YouTube URL or 11-character video id").
				Value(&result.VideoRef).
				Validate(func(s string) error {
					if err := required("video")(s); err != nil {
						return err
					}
					if !videoref.IsID(videoref.ExtractID(s)) {
						return errors.New("not a YouTube link or video id")
					}
					return nil
				}),
		),
	).WithTheme(Theme())
}

// TagTypeFormResult holds the data returned by a completed tag type form.
// Numbers are kept as text while editing.
type TagTypeFormResult struct {
	Label   string
	Key     string
	Row     model.Row
	PreSec  string
	PostSec string
}

// Input converts the form values into a TagTypeInput. Empty numbers become zero
// and are defaulted on creation.
func (r *TagTypeFormResult) Input() (model.TagTypeInput, error) {
	in := model.TagTypeInput{
		Label: strings.TrimSpace(r.Label),
		Key:   strings.TrimSpace(r.Key),
		Row:   r.Row,
	}
	var err error
	if in.PreSec, err = parseSeconds(r.PreSec); err != nil {
		return in, fmt.Errorf("pre: %w", err)
	}
	if in.PostSec, err = parseSeconds(r.PostSec); err != nil {
		return in, fmt.Errorf("post: %w", err)
	}
	return in, nil
}

func parseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("must be a number of seconds")
	}
	return v, nil
}

func validSeconds(s string) error {
	_, err := parseSeconds(s)
	return err
}

// NewTagTypeForm asks for a tag type's label, key, row and clip window.
// Values already in result are shown pre-filled, so the form also edits.
func NewTagTypeForm(title string, result *TagTypeFormResult) *huh.Form {
	if result.Row == "" {
		result.Row = model.RowOwn
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),

			huh.NewInput().
				Title("Label").
				Description("Required").
				Value(&result.Label).
				Validate(required("label")),

			huh.NewInput().
				Title("Key").
				Description("Optional - derived from the label").
				Value(&result.Key),

			huh.NewSelect[model.Row]().
				Title("Row").
				Options(
					huh.NewOption("Own team", model.RowOwn),
					huh.NewOption("Rival", model.RowRival),
				).
				Value(&result.Row),

			huh.NewInput().
				Title("Seconds before").
				Description(fmt.Sprintf("Optional - default %d", model.DefaultPreSec)).
				Value(&result.PreSec).
				Validate(validSeconds),

			huh.NewInput().
				Title("Seconds after").
				Description(fmt.Sprintf("Optional - default %d", model.DefaultPostSec)).
				Value(&result.PostSec).
				Validate(validSeconds),
		),
	).WithTheme(Theme())
}

// CommentFormResult holds the data returned by a completed comment form.
type CommentFormResult struct {
	Name string
	Text string
}

// NewCommentForm asks for an author and a message. header names the clip.
func NewCommentForm(header string, result *CommentFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(header),

			huh.NewInput().
				Title("Name").
				Value(&result.Name).
				Validate(required("name")),

			huh.NewInput().
				Title("Message").
				Placeholder("Mensaje... (@Arq, @Del...)").
				Value(&result.Text).
				Validate(required("message")),
		),
	).WithTheme(Theme())
}

// FlagFormResult holds the flags chosen in a flag form.
type FlagFormResult struct {
	Flags []model.Flag
}

// NewFlagForm lets the user pick any of the four flags. current is preselected.
func NewFlagForm(header string, current []model.Flag, result *FlagFormResult) *huh.Form {
	options := make([]huh.Option[model.Flag], len(model.Flags))
	for i, f := range model.Flags {
		selected := false
		for _, c := range current {
			if c == f {
				selected = true
			}
		}
		options[i] = huh.NewOption(f.Emoji()+" "+string(f), f).Selected(selected)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[model.Flag]().
				Title(header).
				Options(options...).
				Value(&result.Flags),
		),
	).WithTheme(Theme())
}
