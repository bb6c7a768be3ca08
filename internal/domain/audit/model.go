package audit

import "time"

// Action type filters. A status change is any entry whose statuses differ; a
// patient assignment is any entry that carries a patient id.
const (
	ActionStatusChange      = "status_change"
	ActionPatientAssignment = "patient_assignment"
)

// Entry is one immutable audit trail row. Entries are only ever inserted,
// never updated or deleted, and they survive the deletion of their bed.
type Entry struct {
	ID           int64     `json:"id"`
	BedID        int64     `json:"bed_id"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	UpdatedBy    string    `json:"updated_by"`
	UpdateReason string    `json:"update_reason"`
	PatientID    *int64    `json:"patient_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Filter narrows audit queries. Zero values mean "no filter". Date bounds are
// calendar days, inclusive on both ends.
type Filter struct {
	BedID      *int64
	Room       string
	StartDate  *time.Time
	EndDate    *time.Time
	UpdatedBy  string
	ActionType string
}

// TransitionCount is the frequency of one (old, new) status pair.
type TransitionCount struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Count     int    `json:"count"`
}

// ActorCount is the number of audit entries attributed to one actor.
type ActorCount struct {
	Actor string `json:"actor"`
	Count int    `json:"count"`
}

// Summary is the aggregate view of a filtered slice of the trail.
type Summary struct {
	TotalEntries         int               `json:"total_entries"`
	Transitions          []TransitionCount `json:"transitions"`
	Actors               []ActorCount      `json:"actors"`
	MostCommonTransition *TransitionCount  `json:"most_common_transition"`
	MostActiveActor      *ActorCount       `json:"most_active_actor"`
}
