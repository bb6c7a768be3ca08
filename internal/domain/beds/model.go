package beds

import (
	"strings"
	"time"
)

// Bed is a single physical bed in the ward.
type Bed struct {
	ID            int64     `json:"id"`
	RoomCode      string    `json:"room_code"`
	BedNumber     string    `json:"bed_number"`
	DisplayName   string    `json:"display_name"`
	Status        string    `json:"status"`
	PatientID     *int64    `json:"patient_id"`
	ClinicalNeeds []string  `json:"clinical_needs"`
	Equipment     []string  `json:"equipment"`
	Notes         string    `json:"notes"`
	LastUpdated   time.Time `json:"last_updated"`
	UpdatedBy     string    `json:"updated_by"`
}

// PatientSummary is the slice of patient flow data shown next to an occupied
// bed.
type PatientSummary struct {
	PatientCode      string `json:"patient_code"`
	PrimaryDiagnosis string `json:"primary_diagnosis"`
}

// BedDetail is a bed plus its linked patient summary, when any.
type BedDetail struct {
	Bed
	Patient *PatientSummary `json:"patient,omitempty"`
}

// UpdateFields is a partial update. Nil pointers mean "leave unchanged".
type UpdateFields struct {
	Status        *string   `json:"status"`
	PatientID     *int64    `json:"patient_id"`
	ClinicalNeeds *[]string `json:"clinical_needs"`
	Equipment     *[]string `json:"equipment"`
	Notes         *string   `json:"notes"`
}

// Empty reports whether no field is set.
func (f UpdateFields) Empty() bool {
	return f.Status == nil && f.PatientID == nil && f.ClinicalNeeds == nil &&
		f.Equipment == nil && f.Notes == nil
}

// Names lists the set fields in declaration order, for audit reasons.
func (f UpdateFields) Names() []string {
	var names []string
	if f.Status != nil {
		names = append(names, "status")
	}
	if f.PatientID != nil {
		names = append(names, "patient_id")
	}
	if f.ClinicalNeeds != nil {
		names = append(names, "clinical_needs")
	}
	if f.Equipment != nil {
		names = append(names, "equipment")
	}
	if f.Notes != nil {
		names = append(names, "notes")
	}
	return names
}

// SplitTags parses a comma-joined column value into a clean slice. Blanks and
// surrounding whitespace are dropped. The result is never nil so an empty
// column serializes as an empty list, not null.
func SplitTags(s string) []string {
	tags := []string{}
	if s == "" {
		return tags
	}
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags renders a tag slice back into its comma-joined storage form.
func JoinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}
