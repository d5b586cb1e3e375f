package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"

	"gorm.io/gorm"
)

// ErrPoolClosed is the cause reported when acquiring from a closed pool.
var ErrPoolClosed = errors.New("database: pool is closed")

// Pool hands out dedicated connections from the bounded database/sql pool.
// One Pool is created at startup and passed to every repository.
type Pool struct {
	db             *DB
	sqlDB          *sql.DB
	acquireTimeout time.Duration
	closed         atomic.Bool
}

// Conn is one pooled connection, exclusively owned by the caller until released.
type Conn struct {
	raw        *sql.Conn
	session    *gorm.DB
	acquiredAt time.Time
	released   atomic.Bool
}

// DB returns a gorm session whose statements all run on this connection.
func (c *Conn) DB() *gorm.DB {
	return c.session
}

// PoolStats is a point in time view of pool occupancy.
type PoolStats struct {
	MaxOpen      int           `json:"maxOpen"`
	Open         int           `json:"open"`
	InUse        int           `json:"inUse"`
	Idle         int           `json:"idle"`
	WaitCount    int64         `json:"waitCount"`
	WaitDuration time.Duration `json:"waitDuration"`
}

// HealthStatus reports backend reachability. Faults are carried in Error, never returned.
type HealthStatus struct {
	Reachable bool          `json:"reachable"`
	Latency   time.Duration `json:"latency"`
	Error     string        `json:"error,omitempty"`
	Stats     PoolStats     `json:"stats"`
}

// NewPool creates the pool manager over an opened DB.
// acquireTimeout bounds how long Acquire waits for a free connection; zero waits for ctx only.
func NewPool(db *DB, acquireTimeout time.Duration) (*Pool, error) {
	if db == nil || db.DB == nil {
		return nil, errors.New("database: db is required")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 인스턴스 가져오기 실패: %w", err)
	}

	return &Pool{
		db:             db,
		sqlDB:          sqlDB,
		acquireTimeout: acquireTimeout,
	}, nil
}

// Acquire blocks until a connection is free, the acquire timeout elapses or ctx is done.
// Every failure is reported as ResourceUnavailable.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if p.closed.Load() {
		return nil, &sharedError.UnavailableError{Cause: ErrPoolClosed}
	}

	acquireCtx := ctx
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	raw, err := p.sqlDB.Conn(acquireCtx)
	if err != nil {
		if p.closed.Load() {
			err = errors.Join(ErrPoolClosed, err)
		}
		return nil, &sharedError.UnavailableError{Cause: err}
	}

	session := p.db.DB.Session(&gorm.Session{Context: ctx, NewDB: true})
	session.Statement.ConnPool = raw

	return &Conn{
		raw:        raw,
		session:    session,
		acquiredAt: time.Now(),
	}, nil
}

// Release returns the connection to the pool. Releasing twice is a no-op.
func (p *Pool) Release(conn *Conn) {
	if conn == nil || !conn.released.CompareAndSwap(false, true) {
		return
	}

	if err := conn.raw.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		slog.Warn("커넥션 반환 실패", "error", err, "held", time.Since(conn.acquiredAt).String())
	}
}

// WithConn runs fn on a dedicated connection and releases it on every exit path.
func (p *Pool) WithConn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(conn)

	return fn(conn.DB())
}

// Health pings the backend on its own pooled connection.
func (p *Pool) Health(ctx context.Context) (status HealthStatus) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			status.Reachable = false
			status.Error = fmt.Sprintf("health check panic: %v", r)
		}
		status.Latency = time.Since(start)
		status.Stats = p.Stats()
	}()

	conn, err := p.Acquire(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer p.Release(conn)

	if err := conn.raw.PingContext(ctx); err != nil {
		status.Error = err.Error()
		return status
	}

	status.Reachable = true
	return status
}

// Stats reports current occupancy without side effects.
func (p *Pool) Stats() PoolStats {
	s := p.sqlDB.Stats()
	return PoolStats{
		MaxOpen:      s.MaxOpenConnections,
		Open:         s.OpenConnections,
		InUse:        s.InUse,
		Idle:         s.Idle,
		WaitCount:    s.WaitCount,
		WaitDuration: s.WaitDuration,
	}
}

// SQLDB exposes the underlying *sql.DB for diagnostics collectors.
func (p *Pool) SQLDB() *sql.DB {
	return p.sqlDB
}

// Driver returns the backend dialect name.
func (p *Pool) Driver() string {
	return p.db.Driver()
}

// Close marks the pool closed and closes the database.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.db.Close()
}
