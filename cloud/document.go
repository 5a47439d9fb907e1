// Package cloud persists whole review projects as single documents in a
// remote document store and builds share links for them.
package cloud

import (
	"time"

	"github.com/user/simplereplay-cli/model"
)

// DefaultTitle is used when a project is saved without a current game.
const DefaultTitle = "Sin título"

// Project is the full snapshot of a tagging session stored as one document.
type Project struct {
	ID            string                       `json:"id,omitempty"`
	Title         string                       `json:"title"`
	VideoRef      string                       `json:"youtubeVideoId"`
	TagTypes      []model.TagType              `json:"tagTypes"`
	Games         []model.Game                 `json:"games"`
	Clips         []model.Clip                 `json:"clips"`
	Playlists     []model.Playlist             `json:"playlists"`
	PlaylistItems map[string][]string          `json:"playlistItems"`
	ClipFlags     map[string][]model.FlagEntry `json:"clipFlags"`
	ClipComments  map[string][]model.Comment   `json:"clipComments"`
	CreatedAt     *time.Time                   `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time                   `json:"updatedAt,omitempty"`
}

// Normalize replaces missing collections with empty ones so a partially
// written document loads as an empty working set instead of nil maps.
func (p *Project) Normalize() {
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.TagTypes == nil {
		p.TagTypes = []model.TagType{}
	}
	if p.Games == nil {
		p.Games = []model.Game{}
	}
	if p.Clips == nil {
		p.Clips = []model.Clip{}
	}
	if p.Playlists == nil {
		p.Playlists = []model.Playlist{}
	}
	if p.PlaylistItems == nil {
		p.PlaylistItems = map[string][]string{}
	}
	if p.ClipFlags == nil {
		p.ClipFlags = map[string][]model.FlagEntry{}
	}
	if p.ClipComments == nil {
		p.ClipComments = map[string][]model.Comment{}
	}
}

// ProjectSummary is one row of the project listing.
type ProjectSummary struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	VideoRef  string     `json:"youtubeVideoId"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
