package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pneumotrack/pneumotrack/internal/domain/beds"
	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

const (
	// Occupancy above this percentage raises a capacity alert.
	highOccupancyThreshold = 85.0
	// Fewer available beds than this raises a capacity alert. Available means
	// empty or cleaning; cleaning beds turn around within the shift.
	lowAvailableThreshold = 5
	// Activity window for the recent-activity endpoint.
	activityWindow = time.Hour
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Dashboard computes the ward-level overview from current bed state.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	facts, err := s.repo.ListBedFacts(ctx, "")
	if err != nil {
		return nil, httperr.Store("analytics.bed_facts", err)
	}
	onCall, err := s.repo.OnCallStaffCount(ctx)
	if err != nil {
		return nil, httperr.Store("analytics.on_call", err)
	}

	counts := statusCounts(facts)
	d := &Dashboard{
		TotalBeds:     len(facts),
		StatusCounts:  counts,
		OccupancyRate: OccupancyRate(counts["occupied"], len(facts)),
		AvailableBeds: counts["empty"] + counts["cleaning"],
		OnCallStaff:   onCall,
	}
	return d, nil
}

// Rooms rolls every room up into its stats block, ordered by room code.
func (s *Service) Rooms(ctx context.Context) ([]RoomStats, error) {
	facts, err := s.repo.ListBedFacts(ctx, "")
	if err != nil {
		return nil, httperr.Store("analytics.bed_facts", err)
	}
	return roomRollup(facts), nil
}

// Room returns the rollup for a single room. Unknown rooms are a NotFound;
// malformed codes are a validation failure.
func (s *Service) Room(ctx context.Context, code string) (*RoomStats, error) {
	if !beds.ValidRoomCode(code) {
		return nil, httperr.Invalid("invalid room code %q", code)
	}

	facts, err := s.repo.ListBedFacts(ctx, code)
	if err != nil {
		return nil, httperr.Store("analytics.bed_facts", err)
	}
	if len(facts) == 0 {
		return nil, &httperr.NotFoundError{Resource: "room " + code}
	}

	stats := roomRollup(facts)
	return &stats[0], nil
}

// Activity reports the trailing hour of audit traffic.
func (s *Service) Activity(ctx context.Context) (*Activity, error) {
	entries, beds, actors, err := s.repo.ActivitySince(ctx, time.Now().UTC().Add(-activityWindow))
	if err != nil {
		return nil, httperr.Store("analytics.activity", err)
	}
	return &Activity{
		WindowMinutes:  int(activityWindow.Minutes()),
		AuditEntries:   entries,
		DistinctBeds:   beds,
		DistinctActors: actors,
	}, nil
}

// CapacityAlerts derives advisory messages from the current dashboard.
func (s *Service) CapacityAlerts(ctx context.Context) ([]CapacityAlert, error) {
	d, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return deriveAlerts(d), nil
}

// Overview is the system-level staff and bed summary.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	facts, err := s.repo.ListBedFacts(ctx, "")
	if err != nil {
		return nil, httperr.Store("analytics.bed_facts", err)
	}
	staff, err := s.repo.StaffTotals(ctx)
	if err != nil {
		return nil, httperr.Store("analytics.staff_totals", err)
	}

	counts := statusCounts(facts)
	return &Overview{
		Staff:         staff,
		TotalBeds:     len(facts),
		OccupiedBeds:  counts["occupied"],
		OccupancyRate: OccupancyRate(counts["occupied"], len(facts)),
	}, nil
}

func statusCounts(facts []BedFact) map[string]int {
	counts := map[string]int{
		"empty": 0, "occupied": 0, "reserved": 0, "cleaning": 0, "maintenance": 0,
	}
	for _, f := range facts {
		counts[f.Status]++
	}
	return counts
}

func roomRollup(facts []BedFact) []RoomStats {
	byRoom := make(map[string][]BedFact)
	for _, f := range facts {
		byRoom[f.RoomCode] = append(byRoom[f.RoomCode], f)
	}

	codes := make([]string, 0, len(byRoom))
	for code := range byRoom {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	stats := make([]RoomStats, 0, len(codes))
	for _, code := range codes {
		roomFacts := byRoom[code]
		counts := statusCounts(roomFacts)

		ventilators := 0
		oxygenNeeds := 0
		distinctNeeds := make(map[string]bool)
		for _, f := range roomFacts {
			if strings.Contains(f.Equipment, "ventilator") {
				ventilators++
			}
			if strings.Contains(f.ClinicalNeeds, "oxygen") {
				oxygenNeeds++
			}
			for _, need := range strings.Split(f.ClinicalNeeds, ",") {
				if need = strings.TrimSpace(need); need != "" {
					distinctNeeds[need] = true
				}
			}
		}

		rate := OccupancyRate(counts["occupied"], len(roomFacts))
		stats = append(stats, RoomStats{
			RoomCode:         code,
			TotalBeds:        len(roomFacts),
			StatusCounts:     counts,
			OccupancyRate:    rate,
			VentilatorBeds:   ventilators,
			OxygenNeedBeds:   oxygenNeeds,
			UtilizationScore: UtilizationScore(rate, len(distinctNeeds)),
		})
	}
	return stats
}

func deriveAlerts(d *Dashboard) []CapacityAlert {
	alerts := []CapacityAlert{}
	if d.OccupancyRate > highOccupancyThreshold {
		alerts = append(alerts, CapacityAlert{
			Level:   "high",
			Message: fmt.Sprintf("high occupancy: %.1f%% of beds in use", d.OccupancyRate),
		})
	}
	if d.AvailableBeds < lowAvailableThreshold {
		alerts = append(alerts, CapacityAlert{
			Level:   "warning",
			Message: fmt.Sprintf("low available capacity: %d beds empty or in cleaning", d.AvailableBeds),
		})
	}
	return alerts
}
