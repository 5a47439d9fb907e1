package store

import (
	"context"
	"errors"
	"slices"

	"github.com/user/simplereplay-cli/cloud"
)

// Snapshot returns the project document SaveToCloud would write.
func (s *Store) Snapshot() *cloud.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *cloud.Project {
	doc := &cloud.Project{
		ID:            s.projectID,
		Title:         cloud.DefaultTitle,
		TagTypes:      slices.Clone(s.tagTypes),
		Games:         slices.Clone(s.games),
		Clips:         slices.Clone(s.clips),
		Playlists:     slices.Clone(s.playlists),
		PlaylistItems: cloneMapOfSlices(s.playlistItems),
		ClipFlags:     cloneMapOfSlices(s.clipFlags),
		ClipComments:  cloneMapOfSlices(s.clipComments),
	}
	if g := s.currentGameLocked(); g != nil {
		doc.Title = g.Title
		doc.VideoRef = g.VideoRef
	}
	doc.Normalize()
	return doc
}

// SaveToCloud writes the working set as one document, creating it on first
// save and overwriting it afterwards. The call fails with ErrSaveTimeout if
// the provider does not answer within the configured save timeout.
func (s *Store) SaveToCloud(ctx context.Context) (string, error) {
	if s.cloud == nil {
		return "", ErrNoCloud
	}

	s.mu.Lock()
	doc := s.snapshotLocked()
	projectID := s.projectID
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()

	type result struct {
		id  string
		err error
	}
	done := make(chan result, 1)
	go func() {
		id, err := s.cloud.SaveProject(ctx, projectID, doc)
		done <- result{id, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			s.logger.Warn("cloud save timed out", "timeout", s.saveTimeout)
			return "", ErrSaveTimeout
		}
		return "", ctx.Err()
	}
	if res.err != nil {
		s.logger.Warn("cloud save failed", "error", res.err)
		return "", res.err
	}

	s.mu.Lock()
	s.projectID = res.id
	s.location = cloud.ShareURL(s.shareBase, res.id)
	s.mu.Unlock()

	s.logger.Info("project saved", "project_id", res.id)
	s.emit(emission{ProjectSaved, res.id})
	return res.id, nil
}

// LoadFromCloud replaces the working set with a stored project and selects
// its first game. It reports false, leaving state untouched, when the
// project does not exist or cannot be fetched.
func (s *Store) LoadFromCloud(ctx context.Context, projectID string) bool {
	if s.cloud == nil || projectID == "" {
		return false
	}
	doc, err := s.cloud.LoadProject(ctx, projectID)
	if err != nil {
		s.logger.Warn("cloud load failed", "project_id", projectID, "error", err)
		return false
	}
	if doc == nil {
		s.logger.Info("project not found", "project_id", projectID)
		return false
	}
	doc.Normalize()

	s.mu.Lock()
	s.tagTypes = slices.Clone(doc.TagTypes)
	s.games = slices.Clone(doc.Games)
	s.clips = slices.Clone(doc.Clips)
	s.playlists = slices.Clone(doc.Playlists)
	s.playlistItems = cloneMapOfSlices(doc.PlaylistItems)
	s.clipFlags = cloneMapOfSlices(doc.ClipFlags)
	s.clipComments = cloneMapOfSlices(doc.ClipComments)
	s.projectID = projectID
	s.location = cloud.ShareURL(s.shareBase, projectID)
	s.currentGameID = ""
	if len(s.games) > 0 {
		s.currentGameID = s.games[0].ID
	}
	s.resetFiltersLocked()
	s.clearSelectionLocked()
	game := s.currentGameLocked()
	s.mu.Unlock()

	s.logger.Info("project loaded", "project_id", projectID, "games", len(doc.Games), "clips", len(doc.Clips))
	s.emit(emission{ProjectLoaded, doc}, emission{GameChanged, game})
	return true
}

// AttachProject makes later saves overwrite projectID without loading it.
// An empty id detaches, so the next save creates a new document.
func (s *Store) AttachProject(projectID string) {
	s.mu.Lock()
	s.projectID = projectID
	s.location = ""
	if projectID != "" {
		s.location = cloud.ShareURL(s.shareBase, projectID)
	}
	s.mu.Unlock()
}

// ListProjects returns the most recent cloud projects.
func (s *Store) ListProjects(ctx context.Context) ([]cloud.ProjectSummary, error) {
	if s.cloud == nil {
		return nil, ErrNoCloud
	}
	return s.cloud.ListProjects(ctx)
}

func cloneMapOfSlices[K comparable, V any](m map[K][]V) map[K][]V {
	out := make(map[K][]V, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
