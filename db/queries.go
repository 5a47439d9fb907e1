package db

import (
	_ "embed"
)

// Schema and migrations

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Tag type queries

//go:embed sql/select_tag_types.sql
var SelectTagTypesSQL string

//go:embed sql/select_tag_type_by_id.sql
var SelectTagTypeByIDSQL string

//go:embed sql/select_max_tag_order.sql
var SelectMaxTagOrderSQL string

//go:embed sql/upsert_tag_type.sql
var UpsertTagTypeSQL string

//go:embed sql/delete_tag_type.sql
var DeleteTagTypeSQL string

// Game queries

//go:embed sql/select_games.sql
var SelectGamesSQL string

//go:embed sql/upsert_game.sql
var UpsertGameSQL string

// Clip queries

//go:embed sql/select_clips_by_game.sql
var SelectClipsByGameSQL string

//go:embed sql/upsert_clip.sql
var UpsertClipSQL string

//go:embed sql/update_clip_bounds.sql
var UpdateClipBoundsSQL string

//go:embed sql/delete_clip.sql
var DeleteClipSQL string

// Playlist queries

//go:embed sql/select_playlists_by_game.sql
var SelectPlaylistsByGameSQL string

//go:embed sql/upsert_playlist.sql
var UpsertPlaylistSQL string

//go:embed sql/select_playlist_items.sql
var SelectPlaylistItemsSQL string

//go:embed sql/insert_playlist_item.sql
var InsertPlaylistItemSQL string

// Flag queries

//go:embed sql/select_clip_flags.sql
var SelectClipFlagsSQL string

//go:embed sql/insert_clip_flag.sql
var InsertClipFlagSQL string

//go:embed sql/delete_clip_flag.sql
var DeleteClipFlagSQL string

// Comment queries

//go:embed sql/select_clip_comments.sql
var SelectClipCommentsSQL string

//go:embed sql/insert_clip_comment.sql
var InsertClipCommentSQL string

//go:embed sql/delete_clip_comments.sql
var DeleteClipCommentsSQL string
