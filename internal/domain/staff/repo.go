package staff

import "context"

// Repository lists the active roster. The dashboard is read-only over staff;
// roster changes come from the HR system.
type Repository interface {
	ListActive(ctx context.Context) ([]Member, error)
}
