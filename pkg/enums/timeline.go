package enums

// TimelineKind tags entries merged into a grow's detail timeline.
type TimelineKind string

const (
	TimelineKindEvent TimelineKind = "event"
	TimelineKindNote  TimelineKind = "note"
	TimelineKindImage TimelineKind = "image"
)

// IsValid checks whether the given kind matches the canonical enum.
func (t TimelineKind) IsValid() bool {
	return t == TimelineKindEvent || t == TimelineKindNote || t == TimelineKindImage
}
