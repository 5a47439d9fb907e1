package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/user/simplereplay-cli/model"
)

// Provider is the SQLite-backed local data provider.
type Provider struct {
	db  *sql.DB
	now func() time.Time
}

// NewProvider wraps a database opened with Open.
func NewProvider(db *sql.DB) *Provider {
	return &Provider{db: db, now: time.Now}
}

// DB returns the underlying database handle.
func (p *Provider) DB() *sql.DB { return p.db }

// Tag types

func (p *Provider) TagTypes() ([]model.TagType, error) {
	tags, err := queryAll(p.db, SelectTagTypesSQL, scanTagType)
	if err != nil {
		return nil, fmt.Errorf("select tag types: %w", err)
	}
	return tags, nil
}

func (p *Provider) tagType(id string) (model.TagType, error) {
	tag, err := scanTagType(p.db.QueryRow(SelectTagTypeByIDSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.TagType{}, fmt.Errorf("tag type %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.TagType{}, fmt.Errorf("select tag type: %w", err)
	}
	return tag, nil
}

func (p *Provider) CreateTagType(in model.TagTypeInput) (model.TagType, error) {
	var maxOrder int
	if err := p.db.QueryRow(SelectMaxTagOrderSQL).Scan(&maxOrder); err != nil {
		return model.TagType{}, fmt.Errorf("select max tag order: %w", err)
	}
	tag := model.NewTagType(in, maxOrder)

	if _, err := p.tagType(tag.ID); err == nil {
		return model.TagType{}, fmt.Errorf("tag type %s: %w", tag.ID, model.ErrDuplicate)
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.TagType{}, err
	}

	if err := upsertTagType(p.db, tag); err != nil {
		return model.TagType{}, err
	}
	return tag, nil
}

func (p *Provider) UpdateTagType(id string, patch model.TagTypePatch) error {
	tag, err := p.tagType(id)
	if err != nil {
		return err
	}
	patch.Apply(&tag)
	return upsertTagType(p.db, tag)
}

// DeleteTagType removes the tag type only; its clips are kept.
func (p *Provider) DeleteTagType(id string) error {
	if _, err := p.db.Exec(DeleteTagTypeSQL, id); err != nil {
		return fmt.Errorf("delete tag type: %w", err)
	}
	return nil
}

// Games

func (p *Provider) Games() ([]model.Game, error) {
	games, err := queryAll(p.db, SelectGamesSQL, scanGame)
	if err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}
	return games, nil
}

func (p *Provider) CreateGame(title, videoRef, createdBy string) (model.Game, error) {
	g := model.Game{
		ID:        uuid.NewString(),
		Title:     title,
		VideoRef:  videoRef,
		CreatedBy: createdBy,
		CreatedAt: p.now().UTC(),
	}
	if err := upsertGame(p.db, g); err != nil {
		return model.Game{}, err
	}
	return g, nil
}

// Clips

func (p *Provider) ClipsForGame(gameID string) ([]model.Clip, error) {
	clips, err := queryAll(p.db, SelectClipsByGameSQL, scanClip, gameID)
	if err != nil {
		return nil, fmt.Errorf("select clips: %w", err)
	}
	return clips, nil
}

func (p *Provider) CreateClip(c model.Clip) (model.Clip, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = p.now().UTC()
	if err := upsertClip(p.db, c); err != nil {
		return model.Clip{}, err
	}
	return c, nil
}

func (p *Provider) UpdateClipBounds(clipID string, startSec, endSec float64) error {
	res, err := p.db.Exec(UpdateClipBoundsSQL, startSec, endSec, clipID)
	if err != nil {
		return fmt.Errorf("update clip bounds: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("clip %s: %w", clipID, model.ErrNotFound)
	}
	return nil
}

// DeleteClip removes the clip; playlist items, flags and comments cascade.
func (p *Provider) DeleteClip(clipID string) error {
	if _, err := p.db.Exec(DeleteClipSQL, clipID); err != nil {
		return fmt.Errorf("delete clip: %w", err)
	}
	return nil
}

// Playlists

func (p *Provider) PlaylistsForGame(gameID string) ([]model.Playlist, error) {
	pls, err := queryAll(p.db, SelectPlaylistsByGameSQL, scanPlaylist, gameID)
	if err != nil {
		return nil, fmt.Errorf("select playlists: %w", err)
	}
	return pls, nil
}

func (p *Provider) CreatePlaylist(gameID, name, createdBy string) (model.Playlist, error) {
	pl := model.Playlist{
		ID:        uuid.NewString(),
		GameID:    gameID,
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: p.now().UTC(),
	}
	if err := upsertPlaylist(p.db, pl); err != nil {
		return model.Playlist{}, err
	}
	return pl, nil
}

func (p *Provider) PlaylistItems(playlistID string) ([]string, error) {
	ids, err := queryAll(p.db, SelectPlaylistItemsSQL, func(s scanner) (string, error) {
		var id string
		err := s.Scan(&id)
		return id, err
	}, playlistID)
	if err != nil {
		return nil, fmt.Errorf("select playlist items: %w", err)
	}
	return ids, nil
}

func (p *Provider) AddClipToPlaylist(playlistID, clipID string) error {
	if _, err := p.db.Exec(InsertPlaylistItemSQL, playlistID, clipID, playlistID); err != nil {
		return fmt.Errorf("insert playlist item: %w", err)
	}
	return nil
}

// Flags

func (p *Provider) ClipFlags(clipID string) ([]model.FlagEntry, error) {
	flags, err := queryAll(p.db, SelectClipFlagsSQL, func(s scanner) (model.FlagEntry, error) {
		var f model.FlagEntry
		err := s.Scan(&f.Flag, &f.UserID)
		return f, err
	}, clipID)
	if err != nil {
		return nil, fmt.Errorf("select clip flags: %w", err)
	}
	if flags == nil {
		flags = []model.FlagEntry{}
	}
	return flags, nil
}

func (p *Provider) AddFlag(clipID, userID string, flag model.Flag) error {
	if _, err := p.db.Exec(InsertClipFlagSQL, clipID, userID, string(flag)); err != nil {
		return fmt.Errorf("insert clip flag: %w", err)
	}
	return nil
}

func (p *Provider) RemoveFlag(clipID, userID string, flag model.Flag) error {
	if _, err := p.db.Exec(DeleteClipFlagSQL, clipID, userID, string(flag)); err != nil {
		return fmt.Errorf("delete clip flag: %w", err)
	}
	return nil
}

// Comments

func (p *Provider) Comments(clipID string) ([]model.Comment, error) {
	comments, err := queryAll(p.db, SelectClipCommentsSQL, scanComment, clipID)
	if err != nil {
		return nil, fmt.Errorf("select clip comments: %w", err)
	}
	return comments, nil
}

func (p *Provider) AddComment(clipID string, c model.Comment) error {
	if _, err := p.db.Exec(InsertClipCommentSQL, clipID, c.Name, c.Text, formatTime(c.Timestamp)); err != nil {
		return fmt.Errorf("insert clip comment: %w", err)
	}
	return nil
}

// execer is implemented by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertTagType(db execer, t model.TagType) error {
	if _, err := db.Exec(UpsertTagTypeSQL, t.ID, t.Key, t.Label, string(t.Row), t.PreSec, t.PostSec, t.Order); err != nil {
		return fmt.Errorf("upsert tag type %s: %w", t.ID, err)
	}
	return nil
}

func upsertGame(db execer, g model.Game) error {
	if _, err := db.Exec(UpsertGameSQL, g.ID, g.Title, g.VideoRef, g.CreatedBy, formatTime(g.CreatedAt)); err != nil {
		return fmt.Errorf("upsert game %s: %w", g.ID, err)
	}
	return nil
}

func upsertClip(db execer, c model.Clip) error {
	_, err := db.Exec(UpsertClipSQL, c.ID, c.GameID, c.TagTypeID, c.TSec, c.StartSec, c.EndSec, c.CreatedBy, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("upsert clip %s: %w", c.ID, err)
	}
	return nil
}

func upsertPlaylist(db execer, pl model.Playlist) error {
	if _, err := db.Exec(UpsertPlaylistSQL, pl.ID, pl.GameID, pl.Name, pl.CreatedBy, formatTime(pl.CreatedAt)); err != nil {
		return fmt.Errorf("upsert playlist %s: %w", pl.ID, err)
	}
	return nil
}
