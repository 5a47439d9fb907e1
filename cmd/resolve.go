package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/store"
)

var errNoClipSelected = errors.New("no clip selected: pass a clip id or number, or run 'simplereplay clip select'")

// resolveClip accepts a clip id, a 1-based position in the filtered list, or
// nothing for the current clip.
func resolveClip(a *app, arg string) (model.Clip, error) {
	if err := a.requireGame(); err != nil {
		return model.Clip{}, err
	}
	if arg == "" {
		if c := a.store.CurrentClip(); c != nil {
			return *c, nil
		}
		return model.Clip{}, errNoClipSelected
	}
	if n, err := strconv.Atoi(arg); err == nil {
		filtered := a.store.FilteredClips()
		if n < 1 || n > len(filtered) {
			return model.Clip{}, fmt.Errorf("clip #%d out of range (1-%d)", n, len(filtered))
		}
		return filtered[n-1], nil
	}
	for _, c := range a.store.Clips() {
		if c.ID == arg {
			return c, nil
		}
	}
	return model.Clip{}, fmt.Errorf("%w: %s", store.ErrUnknownClip, arg)
}

// resolveTag accepts a tag type id, key or label, ignoring case.
func resolveTag(a *app, arg string) (model.TagType, error) {
	for _, t := range a.store.TagTypes() {
		if strings.EqualFold(t.ID, arg) || strings.EqualFold(t.Key, arg) || strings.EqualFold(t.Label, arg) {
			return t, nil
		}
	}
	return model.TagType{}, fmt.Errorf("%w: %s", store.ErrUnknownTagType, arg)
}

// resolveGame accepts a game id or a 1-based position in the game list.
func resolveGame(a *app, arg string) (model.Game, error) {
	games := a.store.Games()
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(games) {
		return games[n-1], nil
	}
	for _, g := range games {
		if g.ID == arg {
			return g, nil
		}
	}
	return model.Game{}, fmt.Errorf("%w: %s", store.ErrUnknownGame, arg)
}

// resolvePlaylist accepts a playlist id or name of the current game.
func resolvePlaylist(a *app, arg string) (model.Playlist, error) {
	for _, pl := range a.store.Playlists() {
		if pl.ID == arg || strings.EqualFold(pl.Name, arg) {
			return pl, nil
		}
	}
	return model.Playlist{}, fmt.Errorf("%w: %s", store.ErrUnknownPlaylist, arg)
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// runForm runs an interactive form. Aborting is reported as an error.
func runForm(f *huh.Form) error {
	if err := f.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return err
	}
	return nil
}
