package beds

import "context"

// ListFilter narrows the bed list. Zero values mean "no filter"; filters are
// conjunctive.
type ListFilter struct {
	Status    string
	Room      string
	Equipment string
}

// Repository is the storage contract for the bed registry. Absent rows are
// reported as (nil, nil), not as errors.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Bed, error)
	GetDetail(ctx context.Context, id int64) (*BedDetail, error)
	List(ctx context.Context, f ListFilter) ([]BedDetail, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Bed, error)
	Update(ctx context.Context, bed *Bed) error
	Delete(ctx context.Context, id int64) error
}
