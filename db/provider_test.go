package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/simplereplay-cli/cloud"
	"github.com/user/simplereplay-cli/model"
	"github.com/user/simplereplay-cli/store"
)

var _ store.Provider = (*Provider)(nil)

func openTestProvider(t *testing.T) *Provider {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "nested", "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewProvider(database)
}

func TestOpenSeedsTagTypesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	database, err := Open(path)
	require.NoError(t, err)
	p := NewProvider(database)
	tags, err := p.TagTypes()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTagTypes(), tags)

	require.NoError(t, p.DeleteTagType("tag-salida"))
	require.NoError(t, database.Close())

	database, err = Open(path)
	require.NoError(t, err)
	defer database.Close()
	tags, err = NewProvider(database).TagTypes()
	require.NoError(t, err)
	assert.Len(t, tags, 11, "migrations must not run twice")

	require.NoError(t, Migrate(database, ProviderSchema))
}

func TestClipLifecycle(t *testing.T) {
	p := openTestProvider(t)
	game, err := p.CreateGame("Final", "dQw4w9WgXcQ", "u1")
	require.NoError(t, err)

	late, err := p.CreateClip(model.Clip{GameID: game.ID, TagTypeID: "tag-gol", TSec: 90, StartSec: 85, EndSec: 100, CreatedBy: "u1"})
	require.NoError(t, err)
	early, err := p.CreateClip(model.Clip{GameID: game.ID, TagTypeID: "tag-salida", TSec: 10, StartSec: 7, EndSec: 18, CreatedBy: "u1"})
	require.NoError(t, err)

	clips, err := p.ClipsForGame(game.ID)
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, early.ID, clips[0].ID)
	assert.Equal(t, late.ID, clips[1].ID)
	assert.WithinDuration(t, time.Now(), clips[0].CreatedAt, time.Minute)

	require.NoError(t, p.UpdateClipBounds(early.ID, 6, 19))
	clips, err = p.ClipsForGame(game.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, clips[0].StartSec)
	assert.Equal(t, 19.0, clips[0].EndSec)

	assert.ErrorIs(t, p.UpdateClipBounds("missing", 1, 2), model.ErrNotFound)
	assert.Error(t, p.UpdateClipBounds(early.ID, 5, 5), "check constraint keeps start < end")
}

func TestDeleteClipCascades(t *testing.T) {
	p := openTestProvider(t)
	game, err := p.CreateGame("Final", "dQw4w9WgXcQ", "u1")
	require.NoError(t, err)
	c, err := p.CreateClip(model.Clip{GameID: game.ID, TagTypeID: "tag-gol", TSec: 90, StartSec: 85, EndSec: 100})
	require.NoError(t, err)
	other, err := p.CreateClip(model.Clip{GameID: game.ID, TagTypeID: "tag-gol", TSec: 120, StartSec: 115, EndSec: 130})
	require.NoError(t, err)
	pl, err := p.CreatePlaylist(game.ID, "Goles", "u1")
	require.NoError(t, err)

	require.NoError(t, p.AddClipToPlaylist(pl.ID, c.ID))
	require.NoError(t, p.AddClipToPlaylist(pl.ID, other.ID))
	require.NoError(t, p.AddFlag(c.ID, "u1", model.FlagBueno))
	require.NoError(t, p.AddComment(c.ID, model.Comment{Name: "Ana", Text: "bien", Timestamp: time.Now()}))

	require.NoError(t, p.DeleteClip(c.ID))

	items, err := p.PlaylistItems(pl.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, items)
	flags, err := p.ClipFlags(c.ID)
	require.NoError(t, err)
	assert.Empty(t, flags)
	comments, err := p.Comments(c.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestPlaylistItemsAppendOnceInOrder(t *testing.T) {
	p := openTestProvider(t)
	game, err := p.CreateGame("Final", "dQw4w9WgXcQ", "u1")
	require.NoError(t, err)
	pl, err := p.CreatePlaylist(game.ID, "Mejores", "u1")
	require.NoError(t, err)
	var clipIDs []string
	for _, ts := range []float64{30, 10, 20} {
		c, err := p.CreateClip(model.Clip{GameID: game.ID, TagTypeID: "tag-ataque", TSec: ts, StartSec: ts - 3, EndSec: ts + 8})
		require.NoError(t, err)
		clipIDs = append(clipIDs, c.ID)
	}

	for _, id := range clipIDs {
		require.NoError(t, p.AddClipToPlaylist(pl.ID, id))
	}
	require.NoError(t, p.AddClipToPlaylist(pl.ID, clipIDs[0]))

	items, err := p.PlaylistItems(pl.ID)
	require.NoError(t, err)
	assert.Equal(t, clipIDs, items)

	pls, err := p.PlaylistsForGame(game.ID)
	require.NoError(t, err)
	require.Len(t, pls, 1)
	assert.Equal(t, "Mejores", pls[0].Name)
}

func TestFlagsToggleAndUniqueness(t *testing.T) {
	p := openTestProvider(t)
	game, err := p.CreateGame("Final", "dQw4w9WgXcQ", "u1")
	require.NoError(t, err)
	c, err := p.CreateClip(model.Clip{GameID: game.ID, TagTypeID: "tag-gol", TSec: 90, StartSec: 85, EndSec: 100})
	require.NoError(t, err)

	require.NoError(t, p.AddFlag(c.ID, "u1", model.FlagDuda))
	require.NoError(t, p.AddFlag(c.ID, "u1", model.FlagDuda))
	require.NoError(t, p.AddFlag(c.ID, "u2", model.FlagDuda))
	flags, err := p.ClipFlags(c.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.FlagEntry{
		{Flag: model.FlagDuda, UserID: "u1"},
		{Flag: model.FlagDuda, UserID: "u2"},
	}, flags)

	require.NoError(t, p.RemoveFlag(c.ID, "u1", model.FlagDuda))
	flags, err = p.ClipFlags(c.ID)
	require.NoError(t, err)
	assert.Len(t, flags, 1)
}

func TestTagTypeCRUD(t *testing.T) {
	p := openTestProvider(t)

	tag, err := p.CreateTagType(model.TagTypeInput{Key: "presion", Label: "Presión", Row: model.RowRival})
	require.NoError(t, err)
	assert.Equal(t, "tag-presion", tag.ID)
	assert.Equal(t, 13, tag.Order)
	assert.Equal(t, float64(model.DefaultPostSec), tag.PostSec)

	_, err = p.CreateTagType(model.TagTypeInput{Key: "presion"})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	post := 12.0
	require.NoError(t, p.UpdateTagType(tag.ID, model.TagTypePatch{PostSec: &post}))
	got, err := p.tagType(tag.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.PostSec)
	assert.Equal(t, model.RowRival, got.Row)

	assert.ErrorIs(t, p.UpdateTagType("tag-missing", model.TagTypePatch{}), model.ErrNotFound)
}

func TestImportProject(t *testing.T) {
	p := openTestProvider(t)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := &cloud.Project{
		TagTypes: []model.TagType{{ID: "tag-line", Key: "line", Label: "Line", Row: model.RowOwn, PreSec: 2, PostSec: 6, Order: 20}},
		Games:    []model.Game{{ID: "g1", Title: "Final", VideoRef: "dQw4w9WgXcQ", CreatedAt: created}},
		Clips: []model.Clip{
			{ID: "c1", GameID: "g1", TagTypeID: "tag-line", TSec: 40, StartSec: 38, EndSec: 46, CreatedAt: created},
			{ID: "c2", GameID: "g1", TagTypeID: "tag-gol", TSec: 20, StartSec: 15, EndSec: 30, CreatedAt: created},
		},
		Playlists:     []model.Playlist{{ID: "pl1", GameID: "g1", Name: "Top", CreatedAt: created}},
		PlaylistItems: map[string][]string{"pl1": {"c1", "c2"}},
		ClipFlags:     map[string][]model.FlagEntry{"c1": {{Flag: model.FlagImportante, UserID: "u1"}}},
		ClipComments:  map[string][]model.Comment{"c2": {{Name: "Ana", Text: "gol", Timestamp: created}}},
	}

	require.NoError(t, p.ImportProject(doc))
	require.NoError(t, p.ImportProject(doc), "import is repeatable")

	games, err := p.Games()
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.True(t, created.Equal(games[0].CreatedAt))

	clips, err := p.ClipsForGame("g1")
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, "c2", clips[0].ID)

	items, err := p.PlaylistItems("pl1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, items)

	flags, err := p.ClipFlags("c1")
	require.NoError(t, err)
	assert.Len(t, flags, 1)

	comments, err := p.Comments("c2")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "gol", comments[0].Text)

	tags, err := p.TagTypes()
	require.NoError(t, err)
	assert.Len(t, tags, 13)
}
