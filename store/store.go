// Package store holds the state of a review session: the loaded game and its
// clips, playlists, flags and comments, the view filters and the selection.
// Every mutation goes through a Store method, which updates state, persists
// through the Provider and then emits typed events to subscribers.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/user/simplereplay-cli/cloud"
	"github.com/user/simplereplay-cli/model"
)

// Mode is the top-level working mode.
type Mode string

const (
	ModeAnalyze Mode = "analyze"
	ModeView    Mode = "view"
)

// Direction is used by NavigateClip.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

const (
	// DefaultUserID is the simulated user flags are recorded for.
	DefaultUserID = "demo-user-001"
	// DefaultSaveTimeout bounds a cloud save.
	DefaultSaveTimeout = 15 * time.Second
)

var (
	// ErrValidation marks rejected user input; no state was changed.
	ErrValidation = errors.New("invalid input")
	// ErrNoGame is returned by operations that need a selected game.
	ErrNoGame = errors.New("no game selected")
	// ErrUnknownGame is returned when selecting a game that is not loaded.
	ErrUnknownGame = errors.New("unknown game")
	// ErrUnknownTagType is returned when tagging with a tag type that is not loaded.
	ErrUnknownTagType = errors.New("unknown tag type")
	// ErrUnknownClip is returned for clip ids outside the current game.
	ErrUnknownClip = errors.New("unknown clip")
	// ErrUnknownPlaylist is returned for playlist ids outside the current game.
	ErrUnknownPlaylist = errors.New("unknown playlist")
	// ErrSaveTimeout is returned when a cloud save does not finish in time.
	ErrSaveTimeout = errors.New("save timed out: check your internet connection and that the document store is running")
	// ErrNoCloud is returned when no cloud provider was configured.
	ErrNoCloud = errors.New("cloud provider not configured")
)

// Options configures a Store. Zero values select defaults.
type Options struct {
	UserID       string
	SaveTimeout  time.Duration
	ShareBaseURL string
	Logger       *slog.Logger
	Now          func() time.Time
}

// Store owns the canonical in-memory state of the loaded project.
type Store struct {
	mu sync.Mutex

	provider    Provider
	cloud       cloud.Provider
	logger      *slog.Logger
	userID      string
	saveTimeout time.Duration
	shareBase   string
	now         func() time.Time

	mode             Mode
	currentGameID    string
	currentClipID    string
	currentClipIndex int
	panelCollapsed   bool
	focusView        bool

	games         []model.Game
	tagTypes      []model.TagType
	clips         []model.Clip
	playlists     []model.Playlist
	playlistItems map[string][]string
	clipFlags     map[string][]model.FlagEntry
	clipComments  map[string][]model.Comment

	tagFilters     []string
	playlistFilter string
	flagFilters    []model.Flag

	projectID string
	location  string

	subMu     sync.Mutex
	listeners map[Event][]subscriber
	nextSubID uint64
}

// New creates a store backed by provider. cloudProvider may be nil, in which
// case cloud operations fail with ErrNoCloud.
func New(provider Provider, cloudProvider cloud.Provider, opts Options) *Store {
	if opts.UserID == "" {
		opts.UserID = DefaultUserID
	}
	if opts.SaveTimeout <= 0 {
		opts.SaveTimeout = DefaultSaveTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		provider:         provider,
		cloud:            cloudProvider,
		logger:           opts.Logger.With("component", "store"),
		userID:           opts.UserID,
		saveTimeout:      opts.SaveTimeout,
		shareBase:        opts.ShareBaseURL,
		now:              opts.Now,
		mode:             ModeAnalyze,
		currentClipIndex: -1,
		playlistItems:    map[string][]string{},
		clipFlags:        map[string][]model.FlagEntry{},
		clipComments:     map[string][]model.Comment{},
		listeners:        map[Event][]subscriber{},
	}
}

// Init loads tag types and games from the provider.
func (s *Store) Init() error {
	tagTypes, err := s.provider.TagTypes()
	if err != nil {
		return fmt.Errorf("load tag types: %w", err)
	}
	games, err := s.provider.Games()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	s.mu.Lock()
	s.tagTypes = tagTypes
	s.games = games
	s.mu.Unlock()

	s.logger.Debug("initialized", "tag_types", len(tagTypes), "games", len(games))
	s.emit(emission{Initialized, nil})
	return nil
}

// Close drops all listeners. The store must not be used afterwards.
func (s *Store) Close() {
	s.subMu.Lock()
	s.listeners = map[Event][]subscriber{}
	s.subMu.Unlock()
}

// Getters. Slices are returned as copies.

// Mode returns the working mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// UserID is the user flags and clips are recorded for.
func (s *Store) UserID() string { return s.userID }

// PanelCollapsed reports whether the side panel is collapsed.
func (s *Store) PanelCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panelCollapsed
}

// FocusView reports whether focus view is on.
func (s *Store) FocusView() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focusView
}

// ProjectID is the cloud document saves overwrite, empty before the first save.
func (s *Store) ProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

// Location is the share link of the current project, empty before the
// first save or load.
func (s *Store) Location() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// Games returns all games.
func (s *Store) Games() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.games)
}

// TagTypes returns the tag types ordered for display.
func (s *Store) TagTypes() []model.TagType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tagTypes)
}

// TagType returns the tag type with the given id.
func (s *Store) TagType(id string) (model.TagType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tagTypeLocked(id)
}

// Clips returns the clips of the current game, unfiltered.
func (s *Store) Clips() []model.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.clips)
}

// Playlists returns the playlists of the current game.
func (s *Store) Playlists() []model.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.playlists)
}

// PlaylistItems returns the clip ids of a playlist in order.
func (s *Store) PlaylistItems(playlistID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.playlistItems[playlistID])
}

// CurrentGame returns the selected game, or nil.
func (s *Store) CurrentGame() *model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentGameLocked()
}

// CurrentClip returns the selected clip, or nil.
func (s *Store) CurrentClip() *model.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentClipLocked()
}

// CurrentClipIndex is the position of the selected clip in the filtered
// view at selection time, or -1.
func (s *Store) CurrentClipIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentClipIndex
}

// ClipUserFlags returns the flags the store's user set on a clip.
func (s *Store) ClipUserFlags(clipID string) []model.Flag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userFlagsLocked(clipID)
}

// Comments returns the comments of a clip in insertion order.
func (s *Store) Comments(clipID string) []model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.clipComments[clipID])
}

// ActiveTagFilters returns the tag type ids narrowing the view.
func (s *Store) ActiveTagFilters() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tagFilters)
}

// ActivePlaylistID is the playlist narrowing the view, or empty.
func (s *Store) ActivePlaylistID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlistFilter
}

// FilterFlags returns the flags narrowing the view.
func (s *Store) FilterFlags() []model.Flag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.flagFilters)
}

// HasFilters reports whether any of the three filter dimensions is set.
func (s *Store) HasFilters() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tagFilters) > 0 || s.playlistFilter != "" || len(s.flagFilters) > 0
}

// Mode and selection

// SetMode switches between analyze and view mode.
func (s *Store) SetMode(mode Mode) error {
	if mode != ModeAnalyze && mode != ModeView {
		return fmt.Errorf("%w: unknown mode %q", ErrValidation, mode)
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	s.emit(emission{ModeChanged, mode})
	return nil
}

// SetCurrentGame loads the game's clips, playlists, flags and comments from
// the provider and resets filters and selection. An empty id clears the
// working set.
func (s *Store) SetCurrentGame(gameID string) error {
	s.mu.Lock()
	var (
		clips    []model.Clip
		pls      []model.Playlist
		items    = map[string][]string{}
		flags    = map[string][]model.FlagEntry{}
		comments = map[string][]model.Comment{}
	)
	if gameID != "" {
		if !slices.ContainsFunc(s.games, func(g model.Game) bool { return g.ID == gameID }) {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
		}
		var err error
		clips, pls, items, flags, comments, err = s.loadGameLocked(gameID)
		if err != nil {
			s.mu.Unlock()
			return err
		}
	}

	s.currentGameID = gameID
	s.currentClipID = ""
	s.currentClipIndex = -1
	s.clips = clips
	s.playlists = pls
	s.playlistItems = items
	s.clipFlags = flags
	s.clipComments = comments
	s.resetFiltersLocked()
	game := s.currentGameLocked()
	s.mu.Unlock()

	s.logger.Debug("game selected", "game_id", gameID, "clips", len(clips), "playlists", len(pls))
	s.emit(emission{GameChanged, game})
	return nil
}

func (s *Store) loadGameLocked(gameID string) (
	clips []model.Clip,
	pls []model.Playlist,
	items map[string][]string,
	flags map[string][]model.FlagEntry,
	comments map[string][]model.Comment,
	err error,
) {
	items = map[string][]string{}
	flags = map[string][]model.FlagEntry{}
	comments = map[string][]model.Comment{}

	if clips, err = s.provider.ClipsForGame(gameID); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("load clips: %w", err)
	}
	if pls, err = s.provider.PlaylistsForGame(gameID); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("load playlists: %w", err)
	}
	for _, pl := range pls {
		ids, err := s.provider.PlaylistItems(pl.ID)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("load playlist %s: %w", pl.ID, err)
		}
		items[pl.ID] = ids
	}
	for _, c := range clips {
		f, err := s.provider.ClipFlags(c.ID)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("load flags for clip %s: %w", c.ID, err)
		}
		flags[c.ID] = f
		cm, err := s.provider.Comments(c.ID)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("load comments for clip %s: %w", c.ID, err)
		}
		if len(cm) > 0 {
			comments[c.ID] = cm
		}
	}
	return clips, pls, items, flags, comments, nil
}

// SetCurrentClip selects a clip and caches its index in the filtered view.
// An empty id clears the selection.
func (s *Store) SetCurrentClip(clipID string) {
	s.mu.Lock()
	s.selectClipLocked(clipID)
	clip := s.currentClipLocked()
	s.mu.Unlock()

	s.emit(emission{ClipChanged, clip})
}

func (s *Store) selectClipLocked(clipID string) {
	s.currentClipID = clipID
	s.currentClipIndex = -1
	if clipID == "" {
		return
	}
	for i, c := range s.filteredLocked() {
		if c.ID == clipID {
			s.currentClipIndex = i
			break
		}
	}
}

// NavigateClip moves the selection within the filtered view, clamped to its
// ends. It does nothing when the view is empty.
func (s *Store) NavigateClip(dir Direction) {
	s.mu.Lock()
	filtered := s.filteredLocked()
	if len(filtered) == 0 {
		s.mu.Unlock()
		return
	}
	idx := slices.IndexFunc(filtered, func(c model.Clip) bool { return c.ID == s.currentClipID })
	if dir == Next {
		idx = min(len(filtered)-1, idx+1)
	} else {
		idx = max(0, idx-1)
	}
	s.selectClipLocked(filtered[idx].ID)
	clip := s.currentClipLocked()
	s.mu.Unlock()

	s.emit(emission{ClipChanged, clip})
}

// Games, clips and playlists

// AddGame creates a game. It does not select it.
func (s *Store) AddGame(title, videoRef string) (model.Game, error) {
	title = strings.TrimSpace(title)
	videoRef = strings.TrimSpace(videoRef)
	if title == "" {
		return model.Game{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if videoRef == "" {
		return model.Game{}, fmt.Errorf("%w: video reference is required", ErrValidation)
	}

	s.mu.Lock()
	game, err := s.provider.CreateGame(title, videoRef, s.userID)
	if err != nil {
		s.mu.Unlock()
		return model.Game{}, fmt.Errorf("create game: %w", err)
	}
	games, err := s.provider.Games()
	if err != nil {
		s.mu.Unlock()
		return model.Game{}, fmt.Errorf("reload games: %w", err)
	}
	s.games = games
	snapshot := slices.Clone(games)
	s.mu.Unlock()

	s.logger.Debug("game added", "game_id", game.ID, "title", title)
	s.emit(emission{GamesUpdated, snapshot})
	return game, nil
}

// AddClip tags the instant t with a tag type and stores the derived clip.
func (s *Store) AddClip(tagTypeID string, t float64) (model.Clip, error) {
	s.mu.Lock()
	if s.currentGameID == "" {
		s.mu.Unlock()
		return model.Clip{}, ErrNoGame
	}
	tag, ok := s.tagTypeLocked(tagTypeID)
	if !ok {
		s.mu.Unlock()
		return model.Clip{}, fmt.Errorf("%w: %s", ErrUnknownTagType, tagTypeID)
	}
	start, end, err := model.DeriveBounds(t, tag)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, model.ErrNotFinite) {
			return model.Clip{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return model.Clip{}, err
	}

	clip, err := s.provider.CreateClip(model.Clip{
		GameID:    s.currentGameID,
		TagTypeID: tagTypeID,
		TSec:      t,
		StartSec:  start,
		EndSec:    end,
		CreatedBy: s.userID,
	})
	if err != nil {
		s.mu.Unlock()
		return model.Clip{}, fmt.Errorf("create clip: %w", err)
	}
	clips, err := s.provider.ClipsForGame(s.currentGameID)
	if err != nil {
		s.mu.Unlock()
		return model.Clip{}, fmt.Errorf("reload clips: %w", err)
	}
	s.clips = clips
	s.clipFlags[clip.ID] = []model.FlagEntry{}
	snapshot := slices.Clone(clips)
	s.mu.Unlock()

	s.logger.Debug("clip added", "clip_id", clip.ID, "tag", tag.Key, "t_sec", t)
	s.emit(emission{ClipsUpdated, snapshot})
	return clip, nil
}

// UpdateClipBounds moves one bound of a clip by delta seconds, clamped so
// that 0 <= start < end.
func (s *Store) UpdateClipBounds(clipID string, bound model.Bound, delta float64) (model.Clip, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.clips, func(c model.Clip) bool { return c.ID == clipID })
	if idx < 0 {
		s.mu.Unlock()
		return model.Clip{}, fmt.Errorf("%w: %s", ErrUnknownClip, clipID)
	}
	clip := s.clips[idx]
	if err := clip.AdjustBound(bound, delta); err != nil {
		s.mu.Unlock()
		return model.Clip{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.provider.UpdateClipBounds(clipID, clip.StartSec, clip.EndSec); err != nil {
		s.mu.Unlock()
		return model.Clip{}, fmt.Errorf("update clip: %w", err)
	}
	s.clips[idx] = clip
	snapshot := slices.Clone(s.clips)
	s.mu.Unlock()

	s.emit(emission{ClipsUpdated, snapshot}, emission{ClipChanged, &clip})
	return clip, nil
}

// DeleteClip removes a clip with its playlist memberships, flags and comments.
func (s *Store) DeleteClip(clipID string) error {
	s.mu.Lock()
	if s.currentGameID == "" {
		s.mu.Unlock()
		return ErrNoGame
	}
	if !slices.ContainsFunc(s.clips, func(c model.Clip) bool { return c.ID == clipID }) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownClip, clipID)
	}
	if err := s.provider.DeleteClip(clipID); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete clip: %w", err)
	}
	clips, err := s.provider.ClipsForGame(s.currentGameID)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("reload clips: %w", err)
	}
	s.clips = clips
	if s.currentClipID == clipID {
		s.currentClipID = ""
		s.currentClipIndex = -1
	}
	delete(s.clipFlags, clipID)
	delete(s.clipComments, clipID)
	for plID, ids := range s.playlistItems {
		s.playlistItems[plID] = slices.DeleteFunc(ids, func(id string) bool { return id == clipID })
	}
	snapshot := slices.Clone(clips)
	current := s.currentClipLocked()
	s.mu.Unlock()

	s.logger.Debug("clip deleted", "clip_id", clipID)
	s.emit(emission{ClipsUpdated, snapshot}, emission{ClipChanged, current})
	return nil
}

// AddPlaylist creates a playlist in the current game.
func (s *Store) AddPlaylist(name string) (model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Playlist{}, fmt.Errorf("%w: playlist name is required", ErrValidation)
	}

	s.mu.Lock()
	if s.currentGameID == "" {
		s.mu.Unlock()
		return model.Playlist{}, ErrNoGame
	}
	pl, err := s.provider.CreatePlaylist(s.currentGameID, name, s.userID)
	if err != nil {
		s.mu.Unlock()
		return model.Playlist{}, fmt.Errorf("create playlist: %w", err)
	}
	pls, err := s.provider.PlaylistsForGame(s.currentGameID)
	if err != nil {
		s.mu.Unlock()
		return model.Playlist{}, fmt.Errorf("reload playlists: %w", err)
	}
	s.playlists = pls
	s.playlistItems[pl.ID] = []string{}
	snapshot := slices.Clone(pls)
	s.mu.Unlock()

	s.emit(emission{PlaylistsUpdated, snapshot})
	return pl, nil
}

// AddClipToPlaylist appends a clip to a playlist. Adding a clip twice keeps
// a single membership.
func (s *Store) AddClipToPlaylist(playlistID, clipID string) error {
	s.mu.Lock()
	if !slices.ContainsFunc(s.playlists, func(p model.Playlist) bool { return p.ID == playlistID }) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownPlaylist, playlistID)
	}
	if !slices.ContainsFunc(s.clips, func(c model.Clip) bool { return c.ID == clipID }) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownClip, clipID)
	}
	if err := s.provider.AddClipToPlaylist(playlistID, clipID); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("add to playlist: %w", err)
	}
	ids, err := s.provider.PlaylistItems(playlistID)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("reload playlist items: %w", err)
	}
	s.playlistItems[playlistID] = ids
	snapshot := slices.Clone(s.playlists)
	s.mu.Unlock()

	s.emit(emission{PlaylistsUpdated, snapshot})
	return nil
}

// ToggleFlag sets the flag on the clip for the store's user if absent, or
// removes it if present. It reports whether the flag is now set.
func (s *Store) ToggleFlag(clipID string, flag model.Flag) (bool, error) {
	if !flag.Valid() {
		return false, fmt.Errorf("%w: unknown flag %q", ErrValidation, flag)
	}

	s.mu.Lock()
	if !slices.ContainsFunc(s.clips, func(c model.Clip) bool { return c.ID == clipID }) {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrUnknownClip, clipID)
	}
	var err error
	if slices.Contains(s.userFlagsLocked(clipID), flag) {
		err = s.provider.RemoveFlag(clipID, s.userID, flag)
	} else {
		err = s.provider.AddFlag(clipID, s.userID, flag)
	}
	if err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("toggle flag: %w", err)
	}
	// Reconcile from the provider rather than patching locally.
	entries, err := s.provider.ClipFlags(clipID)
	if err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("reload flags: %w", err)
	}
	s.clipFlags[clipID] = entries
	userFlags := s.userFlagsLocked(clipID)
	s.mu.Unlock()

	s.emit(emission{FlagsUpdated, FlagsChange{ClipID: clipID, Flags: userFlags}})
	return slices.Contains(userFlags, flag), nil
}

// Tag types

// AddTagType creates a tag type; zero fields take the default window, row and order.
func (s *Store) AddTagType(in model.TagTypeInput) (model.TagType, error) {
	if strings.TrimSpace(in.Label) == "" && strings.TrimSpace(in.Key) == "" {
		return model.TagType{}, fmt.Errorf("%w: tag label is required", ErrValidation)
	}
	if in.PreSec < 0 || in.PostSec < 0 {
		return model.TagType{}, fmt.Errorf("%w: tag window must not be negative", ErrValidation)
	}

	s.mu.Lock()
	tag, err := s.provider.CreateTagType(in)
	if err != nil {
		s.mu.Unlock()
		return model.TagType{}, fmt.Errorf("create tag type: %w", err)
	}
	snapshot, err := s.reloadTagTypesLocked()
	s.mu.Unlock()
	if err != nil {
		return model.TagType{}, err
	}

	s.emit(emission{TagTypesUpdated, snapshot})
	return tag, nil
}

// UpdateTagType applies patch to a tag type. Existing clips keep their bounds.
func (s *Store) UpdateTagType(id string, patch model.TagTypePatch) error {
	s.mu.Lock()
	if err := s.provider.UpdateTagType(id, patch); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("update tag type: %w", err)
	}
	snapshot, err := s.reloadTagTypesLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.emit(emission{TagTypesUpdated, snapshot})
	return nil
}

// DeleteTagType removes a tag type. Clips that reference it are kept.
func (s *Store) DeleteTagType(id string) error {
	s.mu.Lock()
	if err := s.provider.DeleteTagType(id); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete tag type: %w", err)
	}
	snapshot, err := s.reloadTagTypesLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.emit(emission{TagTypesUpdated, snapshot})
	return nil
}

func (s *Store) reloadTagTypesLocked() ([]model.TagType, error) {
	tags, err := s.provider.TagTypes()
	if err != nil {
		return nil, fmt.Errorf("reload tag types: %w", err)
	}
	s.tagTypes = tags
	return slices.Clone(tags), nil
}

// Panel and focus view

// TogglePanel collapses or expands the side panel.
func (s *Store) TogglePanel() {
	s.mu.Lock()
	s.panelCollapsed = !s.panelCollapsed
	collapsed := s.panelCollapsed
	s.mu.Unlock()

	s.emit(emission{PanelToggled, collapsed})
}

// ToggleFocusView enters or leaves focus view. Entering collapses the panel;
// leaving always expands it, even if it was collapsed before focus view.
func (s *Store) ToggleFocusView() {
	var events []emission

	s.mu.Lock()
	s.focusView = !s.focusView
	if s.focusView && !s.panelCollapsed {
		s.panelCollapsed = true
		events = append(events, emission{PanelToggled, true})
	} else if !s.focusView && s.panelCollapsed {
		s.panelCollapsed = false
		events = append(events, emission{PanelToggled, false})
	}
	events = append(events, emission{FocusViewToggled, s.focusView})
	s.mu.Unlock()

	s.emit(events...)
}

// Comments

// AddComment appends a comment to a clip. An empty name is recorded as the
// store's user id.
func (s *Store) AddComment(clipID, name, text string) (model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.userID
	}

	s.mu.Lock()
	if !slices.ContainsFunc(s.clips, func(c model.Clip) bool { return c.ID == clipID }) {
		s.mu.Unlock()
		return model.Comment{}, fmt.Errorf("%w: %s", ErrUnknownClip, clipID)
	}
	comment := model.Comment{Name: name, Text: text, Timestamp: s.now().UTC()}
	if err := s.provider.AddComment(clipID, comment); err != nil {
		s.mu.Unlock()
		return model.Comment{}, fmt.Errorf("add comment: %w", err)
	}
	s.clipComments[clipID] = append(s.clipComments[clipID], comment)
	s.mu.Unlock()

	s.emit(emission{CommentAdded, CommentChange{ClipID: clipID, Comment: comment}})
	return comment, nil
}

// locked helpers

func (s *Store) tagTypeLocked(id string) (model.TagType, bool) {
	for _, t := range s.tagTypes {
		if t.ID == id {
			return t, true
		}
	}
	return model.TagType{}, false
}

func (s *Store) currentGameLocked() *model.Game {
	for _, g := range s.games {
		if g.ID == s.currentGameID {
			game := g
			return &game
		}
	}
	return nil
}

func (s *Store) currentClipLocked() *model.Clip {
	if s.currentClipID == "" {
		return nil
	}
	for _, c := range s.clips {
		if c.ID == s.currentClipID {
			clip := c
			return &clip
		}
	}
	return nil
}

func (s *Store) userFlagsLocked(clipID string) []model.Flag {
	var flags []model.Flag
	for _, f := range s.clipFlags[clipID] {
		if f.UserID == s.userID {
			flags = append(flags, f.Flag)
		}
	}
	return flags
}
