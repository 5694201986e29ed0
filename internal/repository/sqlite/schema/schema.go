// Package schema holds the SQLite table definitions and applies them.
//
// Every statement is written with IF NOT EXISTS, so Apply can run on each
// process start without tracking what was applied before.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
)

//go:embed *.sql
var FS embed.FS

// Apply executes every embedded .sql file in lexical order inside a
// single transaction.
func Apply(ctx context.Context, db *sql.DB) error {
	files, err := listSchemaFiles()
	if err != nil {
		return fmt.Errorf("list schema files: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, filename := range files {
		content, err := fs.ReadFile(FS, filename)
		if err != nil {
			return fmt.Errorf("read %s: %w", filename, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute %s: %w", filename, err)
		}
		slog.Debug("schema file applied", "file", filename)
	}

	return tx.Commit()
}

func listSchemaFiles() ([]string, error) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
