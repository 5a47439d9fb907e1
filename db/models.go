package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/user/simplereplay-cli/model"
)

// Timestamps are stored as RFC 3339 text in UTC.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTagType(s scanner) (model.TagType, error) {
	var t model.TagType
	var row string
	if err := s.Scan(&t.ID, &t.Key, &t.Label, &row, &t.PreSec, &t.PostSec, &t.Order); err != nil {
		return model.TagType{}, err
	}
	t.Row = model.Row(row)
	return t, nil
}

func scanGame(s scanner) (model.Game, error) {
	var g model.Game
	var created string
	if err := s.Scan(&g.ID, &g.Title, &g.VideoRef, &g.CreatedBy, &created); err != nil {
		return model.Game{}, err
	}
	var err error
	g.CreatedAt, err = parseTime(created)
	return g, err
}

func scanClip(s scanner) (model.Clip, error) {
	var c model.Clip
	var created string
	if err := s.Scan(&c.ID, &c.GameID, &c.TagTypeID, &c.TSec, &c.StartSec, &c.EndSec, &c.CreatedBy, &created); err != nil {
		return model.Clip{}, err
	}
	var err error
	c.CreatedAt, err = parseTime(created)
	return c, err
}

func scanPlaylist(s scanner) (model.Playlist, error) {
	var p model.Playlist
	var created string
	if err := s.Scan(&p.ID, &p.GameID, &p.Name, &p.CreatedBy, &created); err != nil {
		return model.Playlist{}, err
	}
	var err error
	p.CreatedAt, err = parseTime(created)
	return p, err
}

func scanComment(s scanner) (model.Comment, error) {
	var c model.Comment
	var created string
	if err := s.Scan(&c.Name, &c.Text, &created); err != nil {
		return model.Comment{}, err
	}
	var err error
	c.Timestamp, err = parseTime(created)
	return c, err
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](db *sql.DB, query string, scan func(scanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
