package staff

import "time"

// Member is one clinician on the ward roster.
type Member struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	StaffCode      string    `json:"staff_code"`
	Role           string    `json:"role"`
	Specialization string    `json:"specialization"`
	PrimaryUnitID  *int64    `json:"primary_unit_id"`
	CurrentStatus  string    `json:"current_status"`
	IsOnCall       bool      `json:"is_on_call"`
	VentTrained    bool      `json:"vent_trained"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Availability is the roster broken down by current status.
type Availability struct {
	ByStatus             map[string]int `json:"by_status"`
	OnCall               int            `json:"on_call"`
	VentTrainedAvailable int            `json:"vent_trained_available"`
}
