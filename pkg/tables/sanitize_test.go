package tables_test

import (
	"testing"

	"github.com/polarmerge/polarmerge/pkg/tables"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name untouched", "Compound", "Compound"},
		{"spaces collapse to underscore", "Retention time (min)", "Retention_time_min"},
		{"run of symbols collapses once", "m/z  [Da]", "m_z_Da"},
		{"trailing underscores stripped", "Accepted?", "Accepted"},
		{"idempotent on sanitized input", "Fragmentation_Score", "Fragmentation_Score"},
		{"symbols only sanitize to empty", "###", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tables.SanitizeName(tc.in))
		})
	}
}

func TestSanitizeNames(t *testing.T) {
	t.Run("positional fallback for empty names", func(t *testing.T) {
		got := tables.SanitizeNames([]string{"Compound", "", "Score"})
		assert.Equal(t, []string{"Compound", "Column_2", "Score"}, got)
	})

	t.Run("duplicates disambiguated in order", func(t *testing.T) {
		got := tables.SanitizeNames([]string{"QC 1", "QC.1", "QC-1"})
		assert.Equal(t, []string{"QC_1", "QC_1_2", "QC_1_3"}, got)
	})

	t.Run("disambiguation never collides with later names", func(t *testing.T) {
		got := tables.SanitizeNames([]string{"A", "A", "A_2"})
		assert.Equal(t, []string{"A", "A_2", "A_2_2"}, got)
	})

	t.Run("result is unique", func(t *testing.T) {
		got := tables.SanitizeNames([]string{"", "", "##", "Column_1"})
		seen := map[string]bool{}
		for _, name := range got {
			assert.False(t, seen[name], "duplicate %q in %v", name, got)
			seen[name] = true
		}
	})
}
