package analytics

// Dashboard is the ward-level overview.
type Dashboard struct {
	TotalBeds     int            `json:"total_beds"`
	StatusCounts  map[string]int `json:"status_counts"`
	OccupancyRate float64        `json:"occupancy_rate"`
	AvailableBeds int            `json:"available_beds"`
	OnCallStaff   int            `json:"on_call_staff"`
}

// RoomStats is the per-room rollup.
type RoomStats struct {
	RoomCode         string         `json:"room_code"`
	TotalBeds        int            `json:"total_beds"`
	StatusCounts     map[string]int `json:"status_counts"`
	OccupancyRate    float64        `json:"occupancy_rate"`
	VentilatorBeds   int            `json:"ventilator_beds"`
	OxygenNeedBeds   int            `json:"oxygen_need_beds"`
	UtilizationScore float64        `json:"utilization_score"`
}

// Activity summarizes the trailing window of audit traffic.
type Activity struct {
	WindowMinutes  int `json:"window_minutes"`
	AuditEntries   int `json:"audit_entries"`
	DistinctBeds   int `json:"distinct_beds"`
	DistinctActors int `json:"distinct_actors"`
}

// CapacityAlert is an advisory derived from current occupancy.
type CapacityAlert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// StaffTotals is the roster summary for the system overview.
type StaffTotals struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	OnCall    int `json:"on_call"`
	Available int `json:"available"`
}

// Overview is the system-level summary combining staff and bed numbers.
type Overview struct {
	Staff         StaffTotals `json:"staff"`
	TotalBeds     int         `json:"total_beds"`
	OccupiedBeds  int         `json:"occupied_beds"`
	OccupancyRate float64     `json:"occupancy_rate"`
}

// BedFact is the thin projection the reporting queries aggregate over.
type BedFact struct {
	RoomCode      string
	Status        string
	Equipment     string
	ClinicalNeeds string
}
