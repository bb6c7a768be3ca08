package beds

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

// Bed statuses. "deleted" is not a bed status; it appears only as the audit
// sentinel written when a bed is removed.
const (
	StatusEmpty       = "empty"
	StatusOccupied    = "occupied"
	StatusReserved    = "reserved"
	StatusCleaning    = "cleaning"
	StatusMaintenance = "maintenance"
)

var validStatuses = map[string]bool{
	StatusEmpty:       true,
	StatusOccupied:    true,
	StatusReserved:    true,
	StatusCleaning:    true,
	StatusMaintenance: true,
}

// ValidStatus reports whether s is one of the five bed statuses.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Room codes are "H" followed by digits with no leading zero: H1 through H15
// in the current ward, open-ended upward.
var roomCodeRe = regexp.MustCompile(`^H[1-9][0-9]*$`)

// ValidRoomCode reports whether code is a well-formed room code.
func ValidRoomCode(code string) bool {
	return roomCodeRe.MatchString(code)
}

// CheckStatus returns a validation error naming the bad status, or nil.
func CheckStatus(s string) error {
	if !ValidStatus(s) {
		return httperr.Invalid("invalid status %q, must be one of: empty, occupied, reserved, cleaning, maintenance", s)
	}
	return nil
}

// CheckRequired validates that every named field has a non-empty value and
// reports all offenders at once.
func CheckRequired(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return httperr.Invalid("missing required fields: %s", strings.Join(missing, ", "))
}
