package violations

import (
	"strings"

	"parking-violations/internal/models"
)

// Filter returns the records whose plate contains term, ignoring case, in
// their original order. The result never aliases records.
func Filter(records []models.Violation, term string) []models.Violation {
	result := make([]models.Violation, 0, len(records))
	if term == "" {
		return append(result, records...)
	}

	needle := strings.ToLower(term)
	for _, v := range records {
		if strings.Contains(strings.ToLower(v.Car.Plate), needle) {
			result = append(result, v)
		}
	}
	return result
}
