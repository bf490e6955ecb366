package core

// UrgentThreshold is the urgency at or above which a message is treated as urgent.
// The reply generator, the display, relay headers and metrics all read this value.
const UrgentThreshold = 0.6

const (
	PriorityUrgent    = "Urgent"
	PriorityNotUrgent = "Not urgent"
)

// IsUrgent reports whether an urgency score crosses UrgentThreshold
func IsUrgent(urgency float64) bool {
	return urgency >= UrgentThreshold
}

// PriorityLabel returns the display label for an urgency score
func PriorityLabel(urgency float64) string {
	if IsUrgent(urgency) {
		return PriorityUrgent
	}
	return PriorityNotUrgent
}
