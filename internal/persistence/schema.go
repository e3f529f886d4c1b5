package persistence

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Execer runs a statement without returning rows.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ApplySchema creates the department, role and employee tables when they are
// missing. Files run in lexical order; existing tables are left untouched.
func ApplySchema(ctx context.Context, db Execer, logger *zap.Logger) error {
	return applySchemaFS(ctx, db, schemaFS, "schema", logger)
}

func applySchemaFS(ctx context.Context, db Execer, fsys fs.FS, dir string, logger *zap.Logger) error {
	if db == nil {
		logger.Warn("no postgres handle available; skipping schema")
		return nil
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)

	for _, name := range filenames {
		content, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return fmt.Errorf("read schema %s: %w", name, err)
		}

		logger.Info("applying schema", zap.String("file", name))
		if _, err := db.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("apply schema %s: %w", name, err)
		}
	}

	logger.Info("schema applied", zap.Int("count", len(filenames)))
	return nil
}
