package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-report-gateway/pkg/errors"
)

// QueryObserver records statement timings.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// Row is one result row keyed by column name.
type Row map[string]interface{}

// Outcome is the driver-reported result of a write statement.
// Zero AffectedRows is a successful execution that matched nothing.
type Outcome struct {
	AffectedRows int64 `json:"affectedRows"`
	InsertID     int64 `json:"insertId"`
}

// Executor runs single statements on pooled connections.
type Executor struct {
	pool         *Pool
	queryTimeout time.Duration
	observer     QueryObserver
	logger       *zap.Logger
}

// NewExecutor constructs an Executor. A queryTimeout of zero leaves statements without a deadline.
func NewExecutor(pool *Pool, queryTimeout time.Duration, observer QueryObserver, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{pool: pool, queryTimeout: queryTimeout, observer: observer, logger: logger}
}

// Query executes a read statement and returns every row.
func (e *Executor) Query(ctx context.Context, req QueryRequest) ([]Row, error) {
	rows := []Row{}
	err := e.run(ctx, req, func(ctx context.Context, conn *sqlx.Conn, query string) error {
		result, err := conn.QueryxContext(ctx, query, req.Params...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			row := Row{}
			if err := result.MapScan(row); err != nil {
				return err
			}
			rows = append(rows, normalizeRow(row))
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Exec executes a write statement and reports the affected-row metadata.
func (e *Executor) Exec(ctx context.Context, req QueryRequest) (*Outcome, error) {
	var outcome Outcome
	err := e.run(ctx, req, func(ctx context.Context, conn *sqlx.Conn, query string) error {
		result, err := conn.ExecContext(ctx, query, req.Params...)
		if err != nil {
			return err
		}
		if outcome.AffectedRows, err = result.RowsAffected(); err != nil {
			return err
		}
		// Not every driver reports insert ids (lib/pq does not).
		if id, err := result.LastInsertId(); err == nil {
			outcome.InsertID = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (e *Executor) run(ctx context.Context, req QueryRequest, fn func(context.Context, *sqlx.Conn, string) error) error {
	if err := req.Validate(); err != nil {
		e.logger.Error("query rejected", zap.String("query", req.Label), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrQueryFailed.Code, appErrors.ErrQueryFailed.Status, appErrors.ErrQueryFailed.Message)
	}

	lease, err := e.pool.Acquire(ctx)
	if err != nil {
		return err
	}

	if e.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.queryTimeout)
		defer cancel()
	}

	conn := lease.Conn()
	start := time.Now()
	err = fn(ctx, conn, conn.Rebind(req.Template))
	duration := time.Since(start)
	if e.observer != nil {
		e.observer.ObserveDBQuery(req.Label, duration)
	}

	if err != nil {
		e.pool.Destroy(lease)
		e.logger.Error("query failed", zap.String("query", req.Label), zap.Duration("duration", duration), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrQueryFailed.Code, appErrors.ErrQueryFailed.Status, appErrors.ErrQueryFailed.Message)
	}

	e.pool.Release(lease)
	e.logger.Debug("query executed", zap.String("query", req.Label), zap.Duration("duration", duration))
	return nil
}

func normalizeRow(row Row) Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return row
}
