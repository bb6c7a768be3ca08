package middleware

import (
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

// Metrics holds request counters for the system overview endpoint. Counters
// are plain atomics so they can be read without locking while requests are in
// flight.
type Metrics struct {
	Requests     atomic.Int64
	Errors       atomic.Int64
	BedMutations atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	BedMutations int64 `json:"bed_mutations"`
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Requests:     m.Requests.Load(),
		Errors:       m.Errors.Load(),
		BedMutations: m.BedMutations.Load(),
	}
}

// Count returns middleware that increments the request counter, and the error
// counter when the handler fails.
func Count(m *Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.Requests.Add(1)
			err := next(c)
			if err != nil {
				m.Errors.Add(1)
			}
			return err
		}
	}
}
