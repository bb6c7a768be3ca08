package staff

import (
	"context"

	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	members, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, httperr.Store("staff.list", err)
	}
	return members, nil
}

// Availability summarizes who can take work right now.
func (s *Service) Availability(ctx context.Context) (*Availability, error) {
	members, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, httperr.Store("staff.list", err)
	}

	a := &Availability{ByStatus: map[string]int{
		"available": 0, "busy": 0, "on_break": 0, "off_duty": 0,
	}}
	for _, m := range members {
		a.ByStatus[m.CurrentStatus]++
		if m.IsOnCall {
			a.OnCall++
		}
		if m.VentTrained && m.CurrentStatus == "available" {
			a.VentTrainedAvailable++
		}
	}
	return a, nil
}
