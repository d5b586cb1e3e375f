package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetupTestDB opens a migrated SQLite database in a temp file and wraps it in a Pool.
// A file (not :memory:) lets every pooled connection see the same schema.
func SetupTestDB(t *testing.T) *database.Pool {
	t.Helper()
	return SetupTestDBWithConfig(t, NewTestConfig())
}

// SetupTestDBWithConfig is SetupTestDB with caller supplied pool limits.
func SetupTestDBWithConfig(t *testing.T, cfg *config.Config) *database.Pool {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := database.SQLiteDSN("file:" + path + "?_busy_timeout=5000&_journal_mode=WAL")

	db, err := database.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	pool, err := database.NewPool(db, cfg.Database.AcquireTimeout)
	if err != nil {
		_ = db.Close()
		t.Fatalf("Failed to create test pool: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})

	return pool
}

// Insert writes records directly, bypassing repository checks.
// Unset status and timestamps are filled so fixtures stay short.
func Insert(t *testing.T, pool *database.Pool, records ...model.Record) {
	t.Helper()

	now := model.Now()
	err := pool.WithConn(context.Background(), func(tx *gorm.DB) error {
		for _, rec := range records {
			base := rec.Base()
			base.Status = base.Status.OrDefault()
			if base.CreatedAt.IsZero() {
				base.CreatedAt = now
			}
			if base.UpdatedAt.Before(base.CreatedAt) {
				base.UpdatedAt = base.CreatedAt
			}
			if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to insert fixtures: %v", err)
	}
}

// TruncateTable truncates a table for test isolation
func TruncateTable(t *testing.T, pool *database.Pool, tableName string) {
	t.Helper()

	err := pool.WithConn(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("DELETE FROM " + tableName).Error
	})
	if err != nil {
		t.Fatalf("Failed to truncate table %s: %v", tableName, err)
	}
}

// Clock is a manually advanced time source for repository.WithClock.
type Clock struct {
	now time.Time
}

// NewClock starts a clock at start, truncated the way stored timestamps are.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start.UTC().Truncate(time.Microsecond)}
}

func (c *Clock) Now() time.Time {
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
