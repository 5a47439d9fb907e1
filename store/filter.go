package store

import (
	"fmt"
	"slices"
	"sort"

	"github.com/user/simplereplay-cli/model"
)

// FilteredClips returns the clips of the current game that pass the active
// playlist, tag and flag filters, ordered by tagged instant.
func (s *Store) FilteredClips() []model.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredLocked()
}

func (s *Store) filteredLocked() []model.Clip {
	clips := slices.Clone(s.clips)

	if s.playlistFilter != "" {
		members := s.playlistItems[s.playlistFilter]
		clips = slices.DeleteFunc(clips, func(c model.Clip) bool {
			return !slices.Contains(members, c.ID)
		})
	}

	if len(s.tagFilters) > 0 {
		clips = slices.DeleteFunc(clips, func(c model.Clip) bool {
			return !slices.Contains(s.tagFilters, c.TagTypeID)
		})
	}

	if len(s.flagFilters) > 0 {
		wantChat := false
		var real []model.Flag
		for _, f := range s.flagFilters {
			if f == model.FlagHasChat {
				wantChat = true
				continue
			}
			real = append(real, f)
		}
		clips = slices.DeleteFunc(clips, func(c model.Clip) bool {
			if wantChat && len(s.clipComments[c.ID]) > 0 {
				return false
			}
			for _, f := range s.userFlagsLocked(c.ID) {
				if slices.Contains(real, f) {
					return false
				}
			}
			return true
		})
	}

	sort.SliceStable(clips, func(i, j int) bool { return clips[i].TSec < clips[j].TSec })
	return clips
}

// ToggleTagFilter makes tagTypeID the only tag filter, or clears it when it
// already is. It clears the playlist filter and the clip selection.
func (s *Store) ToggleTagFilter(tagTypeID string) {
	s.mu.Lock()
	if slices.Contains(s.tagFilters, tagTypeID) {
		s.tagFilters = nil
	} else {
		s.tagFilters = []string{tagTypeID}
	}
	s.playlistFilter = ""
	s.clearSelectionLocked()
	s.mu.Unlock()

	s.emit(emission{ViewFiltersChanged, nil})
}

// RemoveTagFilter drops one tag from the tag filter set.
func (s *Store) RemoveTagFilter(tagTypeID string) {
	s.mu.Lock()
	s.tagFilters = slices.DeleteFunc(s.tagFilters, func(id string) bool { return id == tagTypeID })
	s.clearSelectionLocked()
	s.mu.Unlock()

	s.emit(emission{ViewFiltersChanged, nil})
}

// ClearTagFilters clears the tag and playlist filters.
func (s *Store) ClearTagFilters() {
	s.mu.Lock()
	s.tagFilters = nil
	s.playlistFilter = ""
	s.clearSelectionLocked()
	s.mu.Unlock()

	s.emit(emission{ViewFiltersChanged, nil})
}

// ClearAllFilters clears every filter dimension and the clip selection.
func (s *Store) ClearAllFilters() {
	s.mu.Lock()
	s.resetFiltersLocked()
	s.clearSelectionLocked()
	s.mu.Unlock()

	s.emit(emission{ViewFiltersChanged, nil})
}

// SetPlaylistFilter restricts the view to a playlist and clears tag filters.
func (s *Store) SetPlaylistFilter(playlistID string) error {
	s.mu.Lock()
	if !slices.ContainsFunc(s.playlists, func(p model.Playlist) bool { return p.ID == playlistID }) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownPlaylist, playlistID)
	}
	s.playlistFilter = playlistID
	s.tagFilters = nil
	s.clearSelectionLocked()
	s.mu.Unlock()

	s.emit(emission{ViewFiltersChanged, nil})
	return nil
}

func (s *Store) ClearPlaylistFilter() {
	s.mu.Lock()
	s.playlistFilter = ""
	s.clearSelectionLocked()
	s.mu.Unlock()

	s.emit(emission{ViewFiltersChanged, nil})
}

// ToggleFilterFlag adds or removes a flag (or has_chat) from the flag
// filter set. The clip selection is kept.
func (s *Store) ToggleFilterFlag(flag model.Flag) error {
	if !flag.Valid() && flag != model.FlagHasChat {
		return fmt.Errorf("%w: unknown filter flag %q", ErrValidation, flag)
	}

	s.mu.Lock()
	if slices.Contains(s.flagFilters, flag) {
		s.flagFilters = slices.DeleteFunc(s.flagFilters, func(f model.Flag) bool { return f == flag })
	} else {
		s.flagFilters = append(s.flagFilters, flag)
	}
	s.mu.Unlock()

	s.emit(emission{ViewFiltersChanged, nil})
	return nil
}

func (s *Store) ClearFilterFlags() {
	s.mu.Lock()
	s.flagFilters = nil
	s.mu.Unlock()

	s.emit(emission{ViewFiltersChanged, nil})
}

func (s *Store) resetFiltersLocked() {
	s.tagFilters = nil
	s.playlistFilter = ""
	s.flagFilters = nil
}

func (s *Store) clearSelectionLocked() {
	s.currentClipID = ""
	s.currentClipIndex = -1
}
