package violations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"parking-violations/internal/models"
)

func TestFilter(t *testing.T) {
	records := testViolations()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term matches all", "", []string{"1", "2", "3"}},
		{"lower case", "abc", []string{"1"}},
		{"mixed case", "aBc", []string{"1"}},
		{"digits", "789", []string{"2"}},
		{"single digit", "6", []string{"3"}},
		{"no match", "zzz", []string{}},
		{"location is not searched", "Main", []string{}},
		{"state is not searched", "FL", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.term)
			ids := make([]string, 0, len(got))
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterIsSubsequence(t *testing.T) {
	records := append(testViolations(),
		models.Violation{ID: "4", Car: models.Car{Plate: "abc999"}},
		models.Violation{ID: "5", Car: models.Car{Plate: "QABCQ"}},
	)

	for _, term := range []string{"", "a", "ABC", "c9", "q", "xyz789"} {
		got := Filter(records, term)

		want := []models.Violation{}
		for _, v := range records {
			if strings.Contains(strings.ToLower(v.Car.Plate), strings.ToLower(term)) {
				want = append(want, v)
			}
		}
		assert.Equal(t, want, got, "term %q", term)
	}
}

func TestFilterDoesNotAlias(t *testing.T) {
	records := testViolations()

	got := Filter(records, "")
	got[0].Resolved = true

	assert.False(t, records[0].Resolved)
}
