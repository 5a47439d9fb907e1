package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/store"
)

const sessionFileName = "session.toml"

// session is the UI state carried between invocations: what the user has
// selected and filtered. Entity data lives in the provider.
type session struct {
	Provider       string   `toml:"provider"`
	GameID         string   `toml:"game_id"`
	ClipID         string   `toml:"clip_id"`
	Mode           string   `toml:"mode"`
	TagFilters     []string `toml:"tag_filters"`
	PlaylistFilter string   `toml:"playlist_filter"`
	FlagFilters    []string `toml:"flag_filters"`
	ProjectID      string   `toml:"project_id"`
}

func loadSession(path string) (*session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s session
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	return &s, nil
}

func (s *session) save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// capture copies the store's selection and filters.
func (s *session) capture(st *store.Store) {
	s.GameID = ""
	if g := st.CurrentGame(); g != nil {
		s.GameID = g.ID
	}
	s.ClipID = ""
	if c := st.CurrentClip(); c != nil {
		s.ClipID = c.ID
	}
	s.Mode = string(st.Mode())
	s.TagFilters = st.ActiveTagFilters()
	s.PlaylistFilter = st.ActivePlaylistID()
	s.FlagFilters = s.FlagFilters[:0]
	for _, f := range st.FilterFlags() {
		s.FlagFilters = append(s.FlagFilters, string(f))
	}
	s.ProjectID = st.ProjectID()
}

// restore replays the saved selection onto st. Ids that no longer exist are
// dropped silently.
func (s *session) restore(st *store.Store) {
	if s.Mode != "" {
		_ = st.SetMode(store.Mode(s.Mode))
	}
	if s.ProjectID != "" {
		st.AttachProject(s.ProjectID)
	}
	if s.GameID == "" || st.SetCurrentGame(s.GameID) != nil {
		return
	}
	for _, id := range s.TagFilters {
		if _, ok := st.TagType(id); ok {
			st.ToggleTagFilter(id)
		}
	}
	if s.PlaylistFilter != "" {
		_ = st.SetPlaylistFilter(s.PlaylistFilter)
	}
	for _, f := range s.FlagFilters {
		_ = st.ToggleFilterFlag(model.Flag(f))
	}
	if s.ClipID != "" {
		for _, c := range st.Clips() {
			if c.ID == s.ClipID {
				st.SetCurrentClip(s.ClipID)
				break
			}
		}
	}
}
