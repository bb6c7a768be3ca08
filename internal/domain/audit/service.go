package audit

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

// Record appends one entry to the trail. Called by the bed service inside the
// request transaction so the entry commits or rolls back with the mutation.
func (s *Service) Record(ctx context.Context, e *Entry) error {
	return httperr.Store("audit.insert", s.repo.Insert(ctx, e))
}

// List returns a filtered page of the trail, newest first.
func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]Entry, int, error) {
	entries, total, err := s.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, httperr.Store("audit.list", err)
	}
	return entries, total, nil
}

// Summary aggregates the filtered trail into transition and actor frequency
// tables. Top picks break count ties lexicographically so repeated calls over
// the same data always agree.
func (s *Service) Summary(ctx context.Context, f Filter) (*Summary, error) {
	transitions, err := s.repo.TransitionCounts(ctx, f)
	if err != nil {
		return nil, httperr.Store("audit.transition_counts", err)
	}
	actors, err := s.repo.ActorCounts(ctx, f)
	if err != nil {
		return nil, httperr.Store("audit.actor_counts", err)
	}

	total := 0
	for _, t := range transitions {
		total += t.Count
	}

	return &Summary{
		TotalEntries:         total,
		Transitions:          transitions,
		Actors:               actors,
		MostCommonTransition: topTransition(transitions),
		MostActiveActor:      topActor(actors),
	}, nil
}

func topTransition(counts []TransitionCount) *TransitionCount {
	var top *TransitionCount
	for i := range counts {
		c := &counts[i]
		if top == nil || c.Count > top.Count {
			top = c
			continue
		}
		if c.Count == top.Count {
			if c.OldStatus < top.OldStatus ||
				(c.OldStatus == top.OldStatus && c.NewStatus < top.NewStatus) {
				top = c
			}
		}
	}
	return top
}

func topActor(counts []ActorCount) *ActorCount {
	var top *ActorCount
	for i := range counts {
		c := &counts[i]
		if top == nil || c.Count > top.Count {
			top = c
			continue
		}
		if c.Count == top.Count && c.Actor < top.Actor {
			top = c
		}
	}
	return top
}
