package audit

import "context"

// Repository is the storage contract for the audit trail. Insert is the only
// write; the trail is append-only.
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter, limit, offset int) ([]Entry, int, error)
	TransitionCounts(ctx context.Context, f Filter) ([]TransitionCount, error)
	ActorCounts(ctx context.Context, f Filter) ([]ActorCount, error)
}
