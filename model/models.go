// Package model defines the entities tagged during a game review session.
package model

import (
	"errors"
	"time"
)

// Provider errors: ErrNotFound for ids a provider does not hold,
// ErrDuplicate for ids that are already taken.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Row places a tag type on the own-team or rival row of the tag board.
type Row string

const (
	RowOwn   Row = "top"
	RowRival Row = "bottom"
)

// Game represents one tagged video session.
type Game struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	VideoRef  string    `json:"youtube_video_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TagType is a user-defined category with the window used to derive clips.
type TagType struct {
	ID      string  `json:"id"`
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Row     Row     `json:"row"`
	PreSec  float64 `json:"pre_sec"`
	PostSec float64 `json:"post_sec"`
	Order   int     `json:"order"`
}

// TagTypeInput holds the fields accepted when creating a tag type.
// Zero values are replaced by defaults.
type TagTypeInput struct {
	ID      string
	Key     string
	Label   string
	Row     Row
	PreSec  float64
	PostSec float64
	Order   int
}

// TagTypePatch holds optional changes to an existing tag type.
type TagTypePatch struct {
	Key     *string
	Label   *string
	Row     *Row
	PreSec  *float64
	PostSec *float64
	Order   *int
}

// Default tag type window and row.
const (
	DefaultPreSec  = 3
	DefaultPostSec = 8
)

// Clip is a bounded interval of a game's video derived from one tagged instant.
type Clip struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	TagTypeID string    `json:"tag_type_id"`
	TSec      float64   `json:"t_sec"`
	StartSec  float64   `json:"start_sec"`
	EndSec    float64   `json:"end_sec"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	return c.EndSec - c.StartSec
}

// Playlist is a named, ordered subset of a game's clips.
type Playlist struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// PlaylistItem associates a clip with a playlist at a position.
type PlaylistItem struct {
	ID         string `json:"id"`
	PlaylistID string `json:"playlist_id"`
	ClipID     string `json:"clip_id"`
	Order      int    `json:"order"`
}

// FlagEntry is one flag set by one user on a clip.
type FlagEntry struct {
	Flag   Flag   `json:"flag"`
	UserID string `json:"userId"`
}

// Comment is a chat message attached to a clip.
type Comment struct {
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
