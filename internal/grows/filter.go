package grows

import (
	"strings"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
)

// Filter narrows grows to those whose strain name or status contains the
// keyword, case-insensitively. A blank keyword returns the input unchanged.
func Filter(grows []models.Grow, keyword string) []models.Grow {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return grows
	}

	filtered := make([]models.Grow, 0, len(grows))
	for _, grow := range grows {
		if strings.Contains(strings.ToLower(grow.StrainName), needle) ||
			strings.Contains(strings.ToLower(string(grow.Status)), needle) {
			filtered = append(filtered, grow)
		}
	}
	return filtered
}
