package analytics

import (
	"context"
	"time"
)

// Repository exposes the read-side projections the reporting layer runs on.
type Repository interface {
	// ListBedFacts returns every bed's room, status and tag columns, optionally
	// restricted to one room. Rooms are small enough that aggregation happens
	// in Go.
	ListBedFacts(ctx context.Context, room string) ([]BedFact, error)
	// ActivitySince counts audit entries, distinct beds and distinct actors
	// with created_at >= since.
	ActivitySince(ctx context.Context, since time.Time) (entries, beds, actors int, err error)
	StaffTotals(ctx context.Context) (StaffTotals, error)
	OnCallStaffCount(ctx context.Context) (int, error)
}
