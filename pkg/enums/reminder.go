package enums

import "fmt"

// ReminderKind identifies a repeating care reminder.
type ReminderKind string

const (
	ReminderKindWatering    ReminderKind = "watering"
	ReminderKindFertilizing ReminderKind = "fertilizing"
)

// IsValid checks whether the given kind matches the canonical enum.
func (r ReminderKind) IsValid() bool {
	return r == ReminderKindWatering || r == ReminderKindFertilizing
}

// ParseReminderKind converts raw strings into ReminderKind.
func ParseReminderKind(value string) (ReminderKind, error) {
	switch ReminderKind(value) {
	case ReminderKindWatering:
		return ReminderKindWatering, nil
	case ReminderKindFertilizing:
		return ReminderKindFertilizing, nil
	}
	return "", fmt.Errorf("invalid reminder kind %q", value)
}
