package core

import "fmt"

// Importance is how much a task matters.
// Value object - immutable string enum, also the persisted label.
type Importance string

const (
	ImportanceLow  Importance = "low"
	ImportanceHigh Importance = "high"
)

// Urgency is how soon a task needs attention.
// Value object - immutable string enum, also the persisted label.
type Urgency string

const (
	UrgencyLow  Urgency = "low"
	UrgencyHigh Urgency = "high"
)

// ParseImportance validates an exact importance label.
func ParseImportance(s string) (Importance, error) {
	switch imp := Importance(s); imp {
	case ImportanceLow, ImportanceHigh:
		return imp, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidImportance, s)
	}
}

// ParseUrgency validates an exact urgency label.
func ParseUrgency(s string) (Urgency, error) {
	switch urg := Urgency(s); urg {
	case UrgencyLow, UrgencyHigh:
		return urg, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUrgency, s)
	}
}
