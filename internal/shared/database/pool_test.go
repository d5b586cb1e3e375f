package database_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPool(t *testing.T, maxOpen int, acquireTimeout time.Duration) *database.Pool {
	t.Helper()

	cfg := testutil.NewTestConfig()
	cfg.Database.MaxOpenConns = maxOpen
	cfg.Database.MaxIdleConns = maxOpen
	cfg.Database.AcquireTimeout = acquireTimeout
	return testutil.SetupTestDBWithConfig(t, cfg)
}

func TestPool_AcquireRelease(t *testing.T) {
	// Given: Pool with two connections
	pool := setupPool(t, 2, time.Second)
	ctx := context.Background()

	// When: Acquire both
	first, err := pool.Acquire(ctx)
	require.NoError(t, err)
	second, err := pool.Acquire(ctx)
	require.NoError(t, err)

	// Then: Both are in use and distinct
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, pool.Stats().InUse)

	pool.Release(first)
	pool.Release(second)
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestPool_ReleaseTwiceIsNoop(t *testing.T) {
	// Given: One acquired connection
	pool := setupPool(t, 1, time.Second)
	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	// When: Release twice (and a nil)
	pool.Release(conn)
	pool.Release(conn)
	pool.Release(nil)

	// Then: The single slot is free again exactly once
	again, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pool.Stats().InUse)
	pool.Release(again)
}

func TestPool_ExhaustedIsUnavailable(t *testing.T) {
	// Given: Single connection held by someone else
	pool := setupPool(t, 1, 50*time.Millisecond)
	held, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer pool.Release(held)

	// When: Another caller waits past the acquire timeout
	_, err = pool.Acquire(context.Background())

	// Then: ResourceUnavailable
	assert.ErrorIs(t, err, sharedError.ErrResourceUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_WithConnReleasesOnError(t *testing.T) {
	// Given: Single connection pool
	pool := setupPool(t, 1, 50*time.Millisecond)
	ctx := context.Background()

	// When: The callback fails
	err := pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Exec("SELECT * FROM no_such_table").Error
	})
	require.Error(t, err)

	// Then: The connection is back and usable
	assert.Equal(t, 0, pool.Stats().InUse)
	err = pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Exec("SELECT 1").Error
	})
	assert.NoError(t, err)
}

func TestPool_ConcurrentCallersNeverShareAConnection(t *testing.T) {
	// Given: Pool smaller than the number of callers
	const maxOpen = 3
	pool := setupPool(t, maxOpen, 5*time.Second)

	var (
		wg      sync.WaitGroup
		inUse   atomic.Int32
		maxSeen atomic.Int32
		mu      sync.Mutex
		owners  = map[*database.Conn]int{}
	)

	// When: Many goroutines acquire, hold briefly and release
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			conn, err := pool.Acquire(context.Background())
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			_, taken := owners[conn]
			owners[conn] = worker
			mu.Unlock()
			assert.False(t, taken, "connection handed out twice")

			current := inUse.Add(1)
			for {
				seen := maxSeen.Load()
				if current <= seen || maxSeen.CompareAndSwap(seen, current) {
					break
				}
			}

			assert.NoError(t, conn.DB().Exec("SELECT 1").Error)
			time.Sleep(5 * time.Millisecond)

			inUse.Add(-1)
			mu.Lock()
			delete(owners, conn)
			mu.Unlock()
			pool.Release(conn)
		}(i)
	}
	wg.Wait()

	// Then: Never more than the bound, everything returned
	assert.LessOrEqual(t, maxSeen.Load(), int32(maxOpen))
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestPool_Health(t *testing.T) {
	// Given: Open pool
	pool := setupPool(t, 2, time.Second)

	// When: Health on an open pool
	healthy := pool.Health(context.Background())

	// Then: Reachable with stats
	assert.True(t, healthy.Reachable)
	assert.Empty(t, healthy.Error)
	assert.Equal(t, 2, healthy.Stats.MaxOpen)

	// When: Health after close
	require.NoError(t, pool.Close())
	closed := pool.Health(context.Background())

	// Then: Reported, not returned
	assert.False(t, closed.Reachable)
	assert.Contains(t, closed.Error, "closed")
}

func TestPool_ClosedIsUnavailable(t *testing.T) {
	// Given: Closed pool
	pool := setupPool(t, 1, time.Second)
	require.NoError(t, pool.Close())

	// When: Acquire
	_, err := pool.Acquire(context.Background())

	// Then: ResourceUnavailable caused by the closed pool
	assert.ErrorIs(t, err, sharedError.ErrResourceUnavailable)
	assert.ErrorIs(t, err, database.ErrPoolClosed)

	// Closing twice is harmless
	assert.NoError(t, pool.Close())
}

func TestPool_Driver(t *testing.T) {
	pool := setupPool(t, 1, time.Second)
	assert.Equal(t, "sqlite", pool.Driver())
	assert.NotNil(t, pool.SQLDB())
}
