package entities

import "strings"

// UrgencyLevel is the discrete triage severity assigned to a symptom
// description. Levels form a total order: routine < soon < urgent <
// emergency.
type UrgencyLevel string

const (
	UrgencyRoutine   UrgencyLevel = "routine"
	UrgencySoon      UrgencyLevel = "soon"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyEmergency UrgencyLevel = "emergency"
)

// urgencySynonyms maps legacy wire values emitted by older prompt
// revisions onto the four-level enum.
var urgencySynonyms = map[string]UrgencyLevel{
	"routine":   UrgencyRoutine,
	"low":       UrgencyRoutine,
	"soon":      UrgencySoon,
	"medium":    UrgencySoon,
	"moderate":  UrgencySoon,
	"urgent":    UrgencyUrgent,
	"high":      UrgencyUrgent,
	"emergency": UrgencyEmergency,
}

// ParseUrgencyLevel maps a model-emitted urgency string onto the enum.
// The second return reports whether the value was recognized; callers
// decide the fail-safe for unrecognized values.
func ParseUrgencyLevel(s string) (UrgencyLevel, bool) {
	level, ok := urgencySynonyms[strings.ToLower(strings.TrimSpace(s))]
	return level, ok
}

// Rank returns the position of the level in the total order, with
// routine lowest. Unknown values rank below routine.
func (u UrgencyLevel) Rank() int {
	switch u {
	case UrgencyRoutine:
		return 1
	case UrgencySoon:
		return 2
	case UrgencyUrgent:
		return 3
	case UrgencyEmergency:
		return 4
	default:
		return 0
	}
}

// Max returns the higher of two levels. Escalation evidence is never
// dropped by combining levels.
func (u UrgencyLevel) Max(other UrgencyLevel) UrgencyLevel {
	if other.Rank() > u.Rank() {
		return other
	}
	return u
}
