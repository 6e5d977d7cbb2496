package client

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hiremind-backend/internal/shared/storage/db"
)

// BaseURLFromEnv returns the relay address from HIREMIND_API_URL, then
// VITE_API_URL, then DefaultBaseURL.
func BaseURLFromEnv() string {
	for _, key := range []string{"HIREMIND_API_URL", "VITE_API_URL"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return DefaultBaseURL
}

// DefaultCachePath is HIREMIND_CACHE_PATH or hiremind/cache.db under the
// user config directory.
func DefaultCachePath() string {
	if v := strings.TrimSpace(os.Getenv("HIREMIND_CACHE_PATH")); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "hiremind", "cache.db")
}

// OpenSQLiteSlotStore opens and migrates the cache database at path. The
// caller closes the returned *sql.DB.
func OpenSQLiteSlotStore(ctx context.Context, path string) (*SQLiteSlotStore, *sql.DB, error) {
	sqlDB, err := db.Open(ctx, path, db.OptionsFromEnv(db.DefaultOptions()))
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate cache: %w", err)
	}
	return NewSQLiteSlotStore(sqlDB), sqlDB, nil
}
