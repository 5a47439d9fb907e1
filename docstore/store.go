// Package docstore is a small JSON document store for review projects. It
// serves the API the cloud package talks to and keeps documents in SQLite.
package docstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/user/simplereplay-cli/db"
)

//go:embed sql/create_projects.sql
var createProjectsSQL string

//go:embed all:sql/migrations
var migrationsFS embed.FS

// Schema is the docstore database schema.
var Schema = db.Schema{
	CreateTables: createProjectsSQL,
	Migrations:   migrationsFS,
	Dir:          "sql/migrations",
}

// DefaultListLimit is used when a listing does not ask for a limit.
const DefaultListLimit = 20

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrInvalidDocument is returned when a body is not a JSON object.
	ErrInvalidDocument = errors.New("docstore: document must be a JSON object")
)

// Document is a stored project: its top-level JSON fields by name.
type Document map[string]json.RawMessage

// Summary is one row of a listing.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	VideoRef  string    `json:"youtubeVideoId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store keeps documents in a SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the docstore database at path.
func Open(path string) (*Store, error) {
	conn, err := db.OpenWith(path, Schema)
	if err != nil {
		return nil, err
	}
	return NewStore(conn), nil
}

// NewStore wraps an already migrated database.
func NewStore(conn *sql.DB) *Store {
	return &Store{db: conn, now: time.Now}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns up to limit summaries, most recently updated first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, video_ref, updated_at FROM projects ORDER BY updated_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sum Summary
		var updated string
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.VideoRef, &updated); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Get returns the document with id.
func (s *Store) Get(ctx context.Context, id string) (Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM projects WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return doc, nil
}

// Create stores doc under a new id and returns the id.
func (s *Store) Create(ctx context.Context, doc Document) (string, error) {
	if doc == nil {
		return "", ErrInvalidDocument
	}
	id := ulid.Make().String()
	now := s.now().UTC()
	if err := s.write(ctx, id, doc, now, now); err != nil {
		return "", err
	}
	return id, nil
}

// Merge overwrites the top-level fields present in patch, keeping the others.
// A missing document is created. It reports whether a document was created.
func (s *Store) Merge(ctx context.Context, id string, patch Document) (bool, error) {
	if patch == nil {
		return false, ErrInvalidDocument
	}
	now := s.now().UTC()

	existing, err := s.Get(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return true, s.write(ctx, id, patch, now, now)
	case err != nil:
		return false, err
	}

	created := now
	if raw, ok := existing["createdAt"]; ok {
		var t time.Time
		if json.Unmarshal(raw, &t) == nil {
			created = t
		}
	}
	for k, v := range patch {
		existing[k] = v
	}
	return false, s.write(ctx, id, existing, created, now)
}

// write stamps id and timestamps onto doc and upserts it.
func (s *Store) write(ctx context.Context, id string, doc Document, created, updated time.Time) error {
	doc["id"], _ = json.Marshal(id)
	doc["createdAt"], _ = json.Marshal(created)
	doc["updatedAt"], _ = json.Marshal(updated)

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO projects (id, title, video_ref, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			video_ref = excluded.video_ref,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		id, doc.stringField("title"), doc.stringField("youtubeVideoId"), string(body),
		created.Format(time.RFC3339Nano), updated.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write project %s: %w", id, err)
	}
	return nil
}

func (d Document) stringField(name string) string {
	var v string
	if raw, ok := d[name]; ok {
		_ = json.Unmarshal(raw, &v)
	}
	return v
}
