package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

// -- Mock Repository --

type mockRepo struct {
	facts    []BedFact
	entries  int
	beds     int
	actors   int
	staff    StaffTotals
	onCall   int
	failWith error
}

func (m *mockRepo) ListBedFacts(_ context.Context, room string) ([]BedFact, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if room == "" {
		return m.facts, nil
	}
	var out []BedFact
	for _, f := range m.facts {
		if f.RoomCode == room {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockRepo) ActivitySince(_ context.Context, _ time.Time) (int, int, int, error) {
	if m.failWith != nil {
		return 0, 0, 0, m.failWith
	}
	return m.entries, m.beds, m.actors, nil
}

func (m *mockRepo) StaffTotals(_ context.Context) (StaffTotals, error) {
	if m.failWith != nil {
		return StaffTotals{}, m.failWith
	}
	return m.staff, nil
}

func (m *mockRepo) OnCallStaffCount(_ context.Context) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return m.onCall, nil
}

func fact(room, status, equipment, needs string) BedFact {
	return BedFact{RoomCode: room, Status: status, Equipment: equipment, ClinicalNeeds: needs}
}

func TestDashboard(t *testing.T) {
	repo := &mockRepo{
		facts: []BedFact{
			fact("H1", "occupied", "ventilator", "oxygen,monitoring"),
			fact("H1", "occupied", "monitor,o2", "oxygen"),
			fact("H1", "empty", "monitor,o2", ""),
			fact("H2", "cleaning", "monitor,o2", ""),
			fact("H2", "maintenance", "", ""),
		},
		onCall: 2,
	}
	svc := NewService(repo)

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.TotalBeds != 5 {
		t.Errorf("total = %d", d.TotalBeds)
	}
	if d.OccupancyRate != 40 {
		t.Errorf("occupancy = %v", d.OccupancyRate)
	}
	if d.AvailableBeds != 2 {
		t.Errorf("available = %d", d.AvailableBeds)
	}
	if d.StatusCounts["reserved"] != 0 {
		t.Errorf("reserved = %d, zero statuses must still appear", d.StatusCounts["reserved"])
	}
	if d.OnCallStaff != 2 {
		t.Errorf("on call = %d", d.OnCallStaff)
	}
}

func TestDashboard_EmptyWard(t *testing.T) {
	svc := NewService(&mockRepo{})
	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.OccupancyRate != 0 {
		t.Errorf("occupancy of empty ward = %v, want 0", d.OccupancyRate)
	}
}

func TestRooms_Rollup(t *testing.T) {
	repo := &mockRepo{
		facts: []BedFact{
			fact("H1", "occupied", "ventilator", "oxygen,monitoring"),
			fact("H1", "occupied", "monitor,o2", "oxygen"),
			fact("H1", "empty", "monitor,o2", ""),
			fact("H2", "empty", "monitor,o2", ""),
		},
	}
	svc := NewService(repo)

	rooms, err := svc.Rooms(context.Background())
	if err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("rooms = %d", len(rooms))
	}

	h1 := rooms[0]
	if h1.RoomCode != "H1" {
		t.Fatalf("expected H1 first, got %s", h1.RoomCode)
	}
	if h1.OccupancyRate != 66.7 {
		t.Errorf("H1 occupancy = %v, want 66.7", h1.OccupancyRate)
	}
	if h1.VentilatorBeds != 1 {
		t.Errorf("ventilator beds = %d", h1.VentilatorBeds)
	}
	if h1.OxygenNeedBeds != 2 {
		t.Errorf("oxygen need beds = %d", h1.OxygenNeedBeds)
	}
	// Distinct needs in H1: oxygen, monitoring -> 66.7 + 20 = 86.7.
	if h1.UtilizationScore != 86.7 {
		t.Errorf("utilization = %v, want 86.7", h1.UtilizationScore)
	}
}

func TestRoom_SingleRoom(t *testing.T) {
	repo := &mockRepo{facts: []BedFact{fact("H3", "occupied", "", "oxygen")}}
	svc := NewService(repo)

	stats, err := svc.Room(context.Background(), "H3")
	if err != nil {
		t.Fatalf("Room: %v", err)
	}
	if stats.RoomCode != "H3" || stats.TotalBeds != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRoom_InvalidCode(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.Room(context.Background(), "room-3")
	var ve *httperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRoom_Unknown(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.Room(context.Background(), "H99")
	var nf *httperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestActivity(t *testing.T) {
	svc := NewService(&mockRepo{entries: 12, beds: 7, actors: 3})
	a, err := svc.Activity(context.Background())
	if err != nil {
		t.Fatalf("Activity: %v", err)
	}
	if a.WindowMinutes != 60 || a.AuditEntries != 12 || a.DistinctBeds != 7 || a.DistinctActors != 3 {
		t.Errorf("activity = %+v", a)
	}
}

func TestCapacityAlerts(t *testing.T) {
	occupiedWard := func(occupied, empty int) []BedFact {
		var facts []BedFact
		for i := 0; i < occupied; i++ {
			facts = append(facts, fact("H1", "occupied", "", ""))
		}
		for i := 0; i < empty; i++ {
			facts = append(facts, fact("H1", "empty", "", ""))
		}
		return facts
	}

	// 90% occupied, 1 available: both alerts fire.
	svc := NewService(&mockRepo{facts: occupiedWard(9, 1)})
	alerts, err := svc.CapacityAlerts(context.Background())
	if err != nil {
		t.Fatalf("CapacityAlerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alerts = %+v", alerts)
	}

	// 50% occupied, plenty available: quiet.
	svc = NewService(&mockRepo{facts: occupiedWard(10, 10)})
	alerts, err = svc.CapacityAlerts(context.Background())
	if err != nil {
		t.Fatalf("CapacityAlerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", alerts)
	}
}

func TestOverview(t *testing.T) {
	repo := &mockRepo{
		facts: []BedFact{
			fact("H1", "occupied", "", ""),
			fact("H1", "empty", "", ""),
		},
		staff: StaffTotals{Total: 8, Active: 7, OnCall: 2, Available: 4},
	}
	svc := NewService(repo)

	o, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if o.TotalBeds != 2 || o.OccupiedBeds != 1 || o.OccupancyRate != 50 {
		t.Errorf("overview = %+v", o)
	}
	if o.Staff.OnCall != 2 {
		t.Errorf("staff = %+v", o.Staff)
	}
}

func TestDashboard_StoreFailure(t *testing.T) {
	svc := NewService(&mockRepo{failWith: errors.New("down")})
	_, err := svc.Dashboard(context.Background())
	var se *httperr.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
