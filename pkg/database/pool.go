package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-report-gateway/pkg/errors"
)

// AcquireObserver receives the outcome of every Acquire call.
type AcquireObserver interface {
	ObservePoolAcquire(wait time.Duration, err error)
}

// PoolStats is a point-in-time view of the pool.
type PoolStats struct {
	Limit     int    `json:"limit"`
	Open      int    `json:"open"`
	InUse     int64  `json:"inUse"`
	Waiting   int64  `json:"waiting"`
	Leased    uint64 `json:"leasedTotal"`
	Destroyed uint64 `json:"destroyedTotal"`
}

// Lease is a connection held exclusively by one caller until it is released or destroyed.
type Lease struct {
	conn       *sqlx.Conn
	acquiredAt time.Time
	done       atomic.Bool
}

// Conn exposes the leased session.
func (l *Lease) Conn() *sqlx.Conn {
	return l.conn
}

// Pool bounds the number of concurrently leased database sessions.
type Pool struct {
	db             *sqlx.DB
	limit          int
	acquireTimeout time.Duration
	observer       AcquireObserver
	logger         *zap.Logger

	inUse     atomic.Int64
	waiting   atomic.Int64
	leased    atomic.Uint64
	destroyed atomic.Uint64
}

// NewPool wraps db and takes over its sizing: at most limit sessions are open at once.
// An acquireTimeout of zero waits for a free session indefinitely.
func NewPool(db *sqlx.DB, limit int, acquireTimeout time.Duration, observer AcquireObserver, logger *zap.Logger) *Pool {
	if limit <= 0 {
		limit = 15
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	db.SetMaxOpenConns(limit)
	db.SetMaxIdleConns(limit)
	return &Pool{
		db:             db,
		limit:          limit,
		acquireTimeout: acquireTimeout,
		observer:       observer,
		logger:         logger,
	}
}

// Acquire leases a session, suspending while all sessions are leased.
func (p *Pool) Acquire(ctx context.Context) (*Lease, error) {
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	start := time.Now()
	p.waiting.Add(1)
	conn, err := p.db.Connx(ctx)
	p.waiting.Add(-1)
	wait := time.Since(start)

	if err != nil {
		err = p.classify(err)
		p.logger.Warn("pool acquire failed", zap.Duration("wait", wait), zap.Error(err))
		p.observe(wait, err)
		return nil, err
	}

	p.inUse.Add(1)
	p.leased.Add(1)
	p.observe(wait, nil)
	return &Lease{conn: conn, acquiredAt: time.Now()}, nil
}

// Release hands the session back for reuse. Releasing twice is a no-op.
func (p *Pool) Release(l *Lease) {
	if l == nil || !l.done.CompareAndSwap(false, true) {
		return
	}
	if err := l.conn.Close(); err != nil {
		p.logger.Debug("pool release", zap.Error(err))
	}
	p.inUse.Add(-1)
}

// Destroy closes the underlying driver session so it never returns to the reusable set,
// then frees the slot for a fresh connection.
func (p *Pool) Destroy(l *Lease) {
	if l == nil || !l.done.CompareAndSwap(false, true) {
		return
	}
	// Returning ErrBadConn from Raw makes database/sql discard the driver connection.
	_ = l.conn.Raw(func(interface{}) error { return driver.ErrBadConn })
	_ = l.conn.Close()
	p.inUse.Add(-1)
	p.destroyed.Add(1)
	p.logger.Debug("pool connection destroyed", zap.Duration("held", time.Since(l.acquiredAt)))
}

// Ping checks the database through a regular lease.
func (p *Pool) Ping(ctx context.Context) error {
	lease, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := lease.conn.PingContext(ctx); err != nil {
		p.Destroy(lease)
		return appErrors.Wrap(err, appErrors.ErrConnectFailed.Code, appErrors.ErrConnectFailed.Status, appErrors.ErrConnectFailed.Message)
	}
	p.Release(lease)
	return nil
}

// Stats reports the current pool counters.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Limit:     p.limit,
		Open:      p.db.Stats().OpenConnections,
		InUse:     p.inUse.Load(),
		Waiting:   p.waiting.Load(),
		Leased:    p.leased.Load(),
		Destroyed: p.destroyed.Load(),
	}
}

// Limit returns the configured maximum of concurrent leases.
func (p *Pool) Limit() int {
	return p.limit
}

// Close closes every session. Outstanding leases fail on their next use.
func (p *Pool) Close() error {
	return p.db.Close()
}

func (p *Pool) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && p.inUse.Load() >= int64(p.limit) {
		return appErrors.Wrap(err, appErrors.ErrPoolExhausted.Code, appErrors.ErrPoolExhausted.Status, appErrors.ErrPoolExhausted.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrConnectFailed.Code, appErrors.ErrConnectFailed.Status, appErrors.ErrConnectFailed.Message)
}

func (p *Pool) observe(wait time.Duration, err error) {
	if p.observer != nil {
		p.observer.ObservePoolAcquire(wait, err)
	}
}
