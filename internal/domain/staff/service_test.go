package staff

import (
	"context"
	"errors"
	"testing"

	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

type mockRepo struct {
	members  []Member
	failWith error
}

func (m *mockRepo) ListActive(_ context.Context) ([]Member, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.members, nil
}

func member(status string, onCall, vent bool) Member {
	return Member{CurrentStatus: status, IsOnCall: onCall, VentTrained: vent, IsActive: true}
}

func TestAvailability(t *testing.T) {
	repo := &mockRepo{members: []Member{
		member("available", true, true),
		member("available", false, false),
		member("busy", true, true),
		member("on_break", false, false),
	}}
	svc := NewService(repo)

	a, err := svc.Availability(context.Background())
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if a.ByStatus["available"] != 2 || a.ByStatus["busy"] != 1 || a.ByStatus["on_break"] != 1 {
		t.Errorf("by_status = %v", a.ByStatus)
	}
	if a.ByStatus["off_duty"] != 0 {
		t.Errorf("off_duty should be present at zero, got %v", a.ByStatus)
	}
	if a.OnCall != 2 {
		t.Errorf("on_call = %d", a.OnCall)
	}
	if a.VentTrainedAvailable != 1 {
		t.Errorf("vent_trained_available = %d", a.VentTrainedAvailable)
	}
}

func TestList_StoreFailure(t *testing.T) {
	svc := NewService(&mockRepo{failWith: errors.New("down")})
	_, err := svc.List(context.Background())
	var se *httperr.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
