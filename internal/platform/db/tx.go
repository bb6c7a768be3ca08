package db

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

type contextKey string

const txKey contextKey = "db_tx"

// TxFromContext retrieves the request-scoped transaction, if any. Repositories
// fall back to the pool when no transaction is in flight.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey).(pgx.Tx)
	return tx
}

// WithTx returns a child context carrying tx.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// session is the slice of a pooled connection the middleware uses.
type session interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Release()
}

// Transactional returns Echo middleware that gives every request a single
// transaction on a dedicated connection. The connection is acquired with a
// fixed timeout and released unconditionally when the handler returns. The
// handler's response is buffered and flushed only after the transaction
// commits: a bed mutation and its audit rows either both persist, with the
// success payload released to the client, or neither does and the client
// sees the failure.
func Transactional(pool *pgxpool.Pool, acquireTimeout time.Duration) echo.MiddlewareFunc {
	acquire := func(ctx context.Context) (session, error) {
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	return transactional(acquire, acquireTimeout)
}

func transactional(acquire func(ctx context.Context) (session, error), acquireTimeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			acquireCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
			conn, err := acquire(acquireCtx)
			cancel()
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}
			defer conn.Release()

			tx, err := conn.Begin(ctx)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}

			c.SetRequest(c.Request().WithContext(WithTx(ctx, tx)))

			// Hold the handler's output back until the commit succeeds, so a
			// commit failure never leaves a success payload on the wire.
			res := c.Response()
			buf := newBufferedWriter(res.Writer)
			res.Writer = buf

			// discard drops the buffered output and lets the error handler
			// write the real response.
			discard := func() {
				res.Writer = buf.ResponseWriter
				res.Committed = false
				res.Size = 0
			}

			if err := next(c); err != nil {
				_ = tx.Rollback(ctx)
				discard()
				return err
			}

			if err := tx.Commit(ctx); err != nil {
				discard()
				return echo.NewHTTPError(http.StatusInternalServerError, "commit failed")
			}

			res.Writer = buf.ResponseWriter
			return buf.flush()
		}
	}
}

// bufferedWriter captures the status code and body while delegating header
// access to the wrapped writer. Nothing reaches the client until flush.
type bufferedWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func newBufferedWriter(w http.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{ResponseWriter: w}
}

func (w *bufferedWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *bufferedWriter) flush() error {
	if w.status == 0 {
		return nil
	}
	w.ResponseWriter.WriteHeader(w.status)
	_, err := w.ResponseWriter.Write(w.body.Bytes())
	return err
}
