package enums

import "fmt"

// GrowStage tracks where a grow sits in its lifecycle.
type GrowStage string

const (
	GrowStageGerminating  GrowStage = "Germinating"
	GrowStageSeedling     GrowStage = "Seedling"
	GrowStageVegetative   GrowStage = "Vegetative"
	GrowStagePreFlowering GrowStage = "Pre-flowering"
	GrowStageFlowering    GrowStage = "Flowering"
	GrowStageHarvesting   GrowStage = "Harvesting"
	GrowStageCompleted    GrowStage = "Completed"
)

var validGrowStages = []GrowStage{
	GrowStageGerminating,
	GrowStageSeedling,
	GrowStageVegetative,
	GrowStagePreFlowering,
	GrowStageFlowering,
	GrowStageHarvesting,
	GrowStageCompleted,
}

// IsValid checks whether the given stage matches the canonical enum.
func (g GrowStage) IsValid() bool {
	for _, candidate := range validGrowStages {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGrowStage converts raw strings into GrowStage.
func ParseGrowStage(value string) (GrowStage, error) {
	for _, candidate := range validGrowStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid grow stage %q", value)
}

// GrowStatus distinguishes active projects from finished ones.
type GrowStatus string

const (
	GrowStatusActive   GrowStatus = "Active"
	GrowStatusComplete GrowStatus = "Complete"
)

// IsValid checks whether the given status matches the canonical enum.
func (g GrowStatus) IsValid() bool {
	return g == GrowStatusActive || g == GrowStatusComplete
}
