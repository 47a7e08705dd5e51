package enums

import "fmt"

// ActivityType labels entries in the append-only activity log.
type ActivityType string

const (
	ActivityTypeAddGrow     ActivityType = "add_grow"
	ActivityTypeUpdateStage ActivityType = "update_stage"
	ActivityTypeAddEvent    ActivityType = "add_event"
	ActivityTypeFinishGrow  ActivityType = "finish_grow"
	ActivityTypeAddImage    ActivityType = "add_image"
	ActivityTypeAddNote     ActivityType = "add_note"
	ActivityTypeDeleteGrow  ActivityType = "delete_grow"
)

var validActivityTypes = []ActivityType{
	ActivityTypeAddGrow,
	ActivityTypeUpdateStage,
	ActivityTypeAddEvent,
	ActivityTypeFinishGrow,
	ActivityTypeAddImage,
	ActivityTypeAddNote,
	ActivityTypeDeleteGrow,
}

// IsValid checks whether the given type matches the canonical enum.
func (a ActivityType) IsValid() bool {
	for _, candidate := range validActivityTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActivityType converts raw strings into ActivityType.
func ParseActivityType(value string) (ActivityType, error) {
	for _, candidate := range validActivityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid activity type %q", value)
}
