package db

import (
	"cmp"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed all:sql/migrations
var migrationsFS embed.FS

// Schema is a base table script plus numbered migrations named NNN_name.sql.
type Schema struct {
	CreateTables string
	Migrations   fs.FS
	Dir          string
}

// ProviderSchema is the schema of the local data provider.
var ProviderSchema = Schema{
	CreateTables: CreateTablesSQL,
	Migrations:   migrationsFS,
	Dir:          "sql/migrations",
}

type migration struct {
	version int
	file    string
}

// Migrate runs the create script (all IF NOT EXISTS) and applies the
// migrations not yet recorded in schema_migrations, lowest version first.
// Each migration commits together with its version row.
func Migrate(db *sql.DB, schema Schema) error {
	const createVersions = `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`
	if _, err := db.Exec(createVersions); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	if schema.CreateTables != "" {
		if _, err := db.Exec(schema.CreateTables); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	if schema.Migrations == nil {
		return nil
	}

	pending, err := schema.migrations()
	if err != nil {
		return err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if applied[m.version] {
			continue
		}
		if err := schema.apply(db, m); err != nil {
			return err
		}
	}
	return nil
}

// migrations lists the numbered .sql files of the schema, sorted by version.
// Files without a numeric prefix are ignored.
func (s Schema) migrations() ([]migration, error) {
	entries, err := fs.ReadDir(s.Migrations, s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var out []migration
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".sql" {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		out = append(out, migration{version: v, file: name})
	}
	slices.SortFunc(out, func(a, b migration) int { return cmp.Compare(a.version, b.version) })
	return out, nil
}

func (s Schema) apply(db *sql.DB, m migration) error {
	script, err := fs.ReadFile(s.Migrations, path.Join(s.Dir, m.file))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", m.file, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(script)); err != nil {
		return fmt.Errorf("migration %s: %w", m.file, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		return fmt.Errorf("record migration %d: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.version, err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}
