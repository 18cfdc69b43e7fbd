package cmd

import (
	"testing"

	"catalog-sync/feature/catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestDescribeScope(t *testing.T) {
	assert.Equal(t, "all sets", describeScope(nil))
	assert.Equal(t, "1 set (khm)", describeScope([]string{"khm"}))
	assert.Equal(t, "2 sets (khm, stx)", describeScope([]string{"khm", "stx"}))
}

func TestImportReport(t *testing.T) {
	tests := []struct {
		stats models.ImportStats
		want  string
	}{
		{models.ImportStats{}, "Added 0 new Sets, 0 new Cards, and 0 new Printings."},
		{models.ImportStats{Sets: 1, Cards: 1, Printings: 1}, "Added 1 new Set, 1 new Card, and 1 new Printing."},
		{models.ImportStats{Sets: 2, Cards: 40, Printings: 41}, "Added 2 new Sets, 40 new Cards, and 41 new Printings."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, importReport(&tt.stats))
	}
}
