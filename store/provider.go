package store

import "github.com/user/simplereplay-cli/model"

// Provider is the local data provider the store reads from and writes to.
// Implementations generate ids, cascade clip deletion to playlist items,
// flags and comments, and never cascade tag type deletion.
type Provider interface {
	TagTypes() ([]model.TagType, error)
	CreateTagType(in model.TagTypeInput) (model.TagType, error)
	UpdateTagType(id string, patch model.TagTypePatch) error
	DeleteTagType(id string) error

	Games() ([]model.Game, error)
	CreateGame(title, videoRef, createdBy string) (model.Game, error)

	// ClipsForGame returns the game's clips ordered by tagged instant.
	ClipsForGame(gameID string) ([]model.Clip, error)
	CreateClip(c model.Clip) (model.Clip, error)
	UpdateClipBounds(clipID string, startSec, endSec float64) error
	DeleteClip(clipID string) error

	PlaylistsForGame(gameID string) ([]model.Playlist, error)
	CreatePlaylist(gameID, name, createdBy string) (model.Playlist, error)
	// PlaylistItems returns clip ids in playlist order.
	PlaylistItems(playlistID string) ([]string, error)
	// AddClipToPlaylist appends the clip; an existing pair is left untouched.
	AddClipToPlaylist(playlistID, clipID string) error

	ClipFlags(clipID string) ([]model.FlagEntry, error)
	AddFlag(clipID, userID string, flag model.Flag) error
	RemoveFlag(clipID, userID string, flag model.Flag) error

	Comments(clipID string) ([]model.Comment, error)
	AddComment(clipID string, c model.Comment) error
}
