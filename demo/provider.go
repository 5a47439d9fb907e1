// Package demo is an in-memory data provider seeded with a sample game, so
// the tool can be tried without a database.
package demo

import (
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/user/simplereplay-cli/model"
)

// Seed identifiers.
const (
	GameID     = "game-demo-1"
	GameTitle  = "Argentina - EEUU"
	GameVideo  = "ZabnNjou_PI"
	PlaylistID = "pl-demo-1"
	UserID     = "demo-user-001"
)

type playlistItem struct {
	playlistID string
	clipID     string
	order      int
}

type clipFlag struct {
	clipID string
	userID string
	flag   model.Flag
}

// Provider keeps every entity in memory. It is safe for concurrent use.
type Provider struct {
	mu       sync.Mutex
	now      func() time.Time
	tagTypes []model.TagType
	games    []model.Game
	clips    []model.Clip
	lists    []model.Playlist
	items    []playlistItem
	flags    []clipFlag
	comments map[string][]model.Comment
}

// NewEmpty returns a provider holding only the default tag types.
func NewEmpty() *Provider {
	return &Provider{
		now:      time.Now,
		tagTypes: model.DefaultTagTypes(),
		comments: map[string][]model.Comment{},
	}
}

// New returns a provider seeded with the demo game, ten clips, a few flags
// and one playlist.
func New() *Provider {
	p := NewEmpty()
	p.seed()
	return p
}

func newID() string {
	return "demo-" + uuid.NewString()
}

func (p *Provider) seed() {
	now := p.now().UTC()
	p.games = append(p.games, model.Game{
		ID:        GameID,
		Title:     GameTitle,
		VideoRef:  GameVideo,
		CreatedBy: "Demo",
		CreatedAt: now,
	})

	seeded := []struct {
		tag string
		t   float64
	}{
		{"tag-salida", 501},
		{"tag-ataque", 522},
		{"tag-area-ec", 758},
		{"tag-bloqueo", 557},
		{"tag-gol", 1567},
		{"tag-contragolpe-ec", 654},
		{"tag-salida", 575},
		{"tag-cc-at", 970},
		{"tag-defensa", 688},
		{"tag-area", 601},
	}
	for _, sc := range seeded {
		tag, _ := p.tagTypeLocked(sc.tag)
		start, end, _ := model.DeriveBounds(sc.t, tag)
		p.clips = append(p.clips, model.Clip{
			ID:        newID(),
			GameID:    GameID,
			TagTypeID: sc.tag,
			TSec:      sc.t,
			StartSec:  start,
			EndSec:    end,
			CreatedBy: UserID,
			CreatedAt: now,
		})
	}

	p.flags = append(p.flags,
		clipFlag{p.clips[0].ID, UserID, model.FlagBueno},
		clipFlag{p.clips[1].ID, UserID, model.FlagACorregir},
		clipFlag{p.clips[4].ID, UserID, model.FlagImportante},
		clipFlag{p.clips[4].ID, UserID, model.FlagBueno},
	)

	p.lists = append(p.lists, model.Playlist{
		ID:        PlaylistID,
		GameID:    GameID,
		Name:      "Mejores jugadas",
		CreatedBy: UserID,
		CreatedAt: now,
	})
	p.items = append(p.items,
		playlistItem{PlaylistID, p.clips[0].ID, 0},
		playlistItem{PlaylistID, p.clips[4].ID, 1},
	)
}

// Tag types

func (p *Provider) TagTypes() ([]model.TagType, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.tagTypes), nil
}

func (p *Provider) CreateTagType(in model.TagTypeInput) (model.TagType, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	maxOrder := 0
	for _, t := range p.tagTypes {
		maxOrder = max(maxOrder, t.Order)
	}
	tag := model.NewTagType(in, maxOrder)
	if _, ok := p.tagTypeLocked(tag.ID); ok {
		return model.TagType{}, fmt.Errorf("tag type %s: %w", tag.ID, model.ErrDuplicate)
	}
	p.tagTypes = append(p.tagTypes, tag)
	return tag, nil
}

func (p *Provider) UpdateTagType(id string, patch model.TagTypePatch) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.tagTypes {
		if p.tagTypes[i].ID == id {
			patch.Apply(&p.tagTypes[i])
			return nil
		}
	}
	return fmt.Errorf("tag type %s: %w", id, model.ErrNotFound)
}

// DeleteTagType removes the tag type only; its clips are kept.
func (p *Provider) DeleteTagType(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tagTypes = slices.DeleteFunc(p.tagTypes, func(t model.TagType) bool { return t.ID == id })
	return nil
}

func (p *Provider) tagTypeLocked(id string) (model.TagType, bool) {
	for _, t := range p.tagTypes {
		if t.ID == id {
			return t, true
		}
	}
	return model.TagType{}, false
}

// Games

func (p *Provider) Games() ([]model.Game, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.games), nil
}

func (p *Provider) CreateGame(title, videoRef, createdBy string) (model.Game, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g := model.Game{
		ID:        newID(),
		Title:     title,
		VideoRef:  videoRef,
		CreatedBy: createdBy,
		CreatedAt: p.now().UTC(),
	}
	p.games = append(p.games, g)
	return g, nil
}

// Clips

func (p *Provider) ClipsForGame(gameID string) ([]model.Clip, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Clip
	for _, c := range p.clips {
		if c.GameID == gameID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TSec < out[j].TSec })
	return out, nil
}

func (p *Provider) CreateClip(c model.Clip) (model.Clip, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c.ID = newID()
	c.CreatedAt = p.now().UTC()
	p.clips = append(p.clips, c)
	return c, nil
}

func (p *Provider) UpdateClipBounds(clipID string, startSec, endSec float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.clips {
		if p.clips[i].ID == clipID {
			p.clips[i].StartSec = startSec
			p.clips[i].EndSec = endSec
			return nil
		}
	}
	return fmt.Errorf("clip %s: %w", clipID, model.ErrNotFound)
}

// DeleteClip removes the clip with its playlist items, flags and comments.
func (p *Provider) DeleteClip(clipID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clips = slices.DeleteFunc(p.clips, func(c model.Clip) bool { return c.ID == clipID })
	p.items = slices.DeleteFunc(p.items, func(it playlistItem) bool { return it.clipID == clipID })
	p.flags = slices.DeleteFunc(p.flags, func(f clipFlag) bool { return f.clipID == clipID })
	delete(p.comments, clipID)
	return nil
}

// Playlists

func (p *Provider) PlaylistsForGame(gameID string) ([]model.Playlist, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Playlist
	for _, pl := range p.lists {
		if pl.GameID == gameID {
			out = append(out, pl)
		}
	}
	return out, nil
}

func (p *Provider) CreatePlaylist(gameID, name, createdBy string) (model.Playlist, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl := model.Playlist{
		ID:        newID(),
		GameID:    gameID,
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: p.now().UTC(),
	}
	p.lists = append(p.lists, pl)
	return pl, nil
}

func (p *Provider) PlaylistItems(playlistID string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var items []playlistItem
	for _, it := range p.items {
		if it.playlistID == playlistID {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].order < items[j].order })
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.clipID)
	}
	return ids, nil
}

func (p *Provider) AddClipToPlaylist(playlistID, clipID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	maxOrder := -1
	for _, it := range p.items {
		if it.playlistID != playlistID {
			continue
		}
		if it.clipID == clipID {
			return nil
		}
		maxOrder = max(maxOrder, it.order)
	}
	p.items = append(p.items, playlistItem{playlistID, clipID, maxOrder + 1})
	return nil
}

// Flags

func (p *Provider) ClipFlags(clipID string) ([]model.FlagEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []model.FlagEntry{}
	for _, f := range p.flags {
		if f.clipID == clipID {
			out = append(out, model.FlagEntry{Flag: f.flag, UserID: f.userID})
		}
	}
	return out, nil
}

func (p *Provider) AddFlag(clipID, userID string, flag model.Flag) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry := clipFlag{clipID, userID, flag}
	if !slices.Contains(p.flags, entry) {
		p.flags = append(p.flags, entry)
	}
	return nil
}

func (p *Provider) RemoveFlag(clipID, userID string, flag model.Flag) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry := clipFlag{clipID, userID, flag}
	p.flags = slices.DeleteFunc(p.flags, func(f clipFlag) bool { return f == entry })
	return nil
}

// Comments

func (p *Provider) Comments(clipID string) ([]model.Comment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.comments[clipID]), nil
}

func (p *Provider) AddComment(clipID string, c model.Comment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.comments[clipID] = append(p.comments[clipID], c)
	return nil
}
