// file: internals/features/scholarships/scholarship_configs/service/quota_matrix_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func TestNormalizeSemester(t *testing.T) {
	assert.Equal(t, SemesterYearly, NormalizeSemester(nil))
	assert.Equal(t, SemesterYearly, NormalizeSemester(strPtr("")))
	assert.Equal(t, SemesterYearly, NormalizeSemester(strPtr("   ")))
	assert.Equal(t, "ganjil", NormalizeSemester(strPtr("Ganjil")))
	assert.Equal(t, "2026-1", NormalizeSemester(strPtr(" 2026-1 ")))
}

func TestParseQuotaCells(t *testing.T) {
	raw := datatypes.JSON([]byte(`{
		"merit": {"A": 3, "B": "2"},
		"need":  {"A": "banyak", "B": -1}
	}`))
	cells := ParseQuotaCells(raw)

	assert.Equal(t, 3, cells["merit"]["A"])
	assert.Equal(t, 2, cells["merit"]["B"]) // angka dalam string ikut diterima

	// fail-open: nilai rusak didegradasi ke 0, bukan error
	assert.Equal(t, 0, cells["need"]["A"])
	assert.Equal(t, 0, cells["need"]["B"])
}

func TestParseQuotaCells_EmptyAndBroken(t *testing.T) {
	assert.Empty(t, ParseQuotaCells(nil))
	assert.Empty(t, ParseQuotaCells(datatypes.JSON([]byte(`tidak-json`))))
}

func TestQuotaMatrixCapacity(t *testing.T) {
	m := &QuotaMatrix{
		Cells:           map[string]map[string]int{"merit": {"A": 2}},
		HasCollegeQuota: true,
	}

	q, ok := m.Capacity("merit", "A")
	assert.True(t, ok)
	assert.Equal(t, 2, q)

	_, ok = m.Capacity("merit", "Z")
	assert.False(t, ok)
	_, ok = m.Capacity("need", "A")
	assert.False(t, ok)
}

func TestQuotaMatrixCellKey_SharedWhenNoCollegeQuota(t *testing.T) {
	shared := &QuotaMatrix{
		Cells:           map[string]map[string]int{"merit": {"all": 5}},
		HasCollegeQuota: false,
	}
	assert.Equal(t, "all", shared.CellKey("A"))
	assert.Equal(t, "all", shared.CellKey("B"))

	q, ok := shared.Capacity("merit", "apapun")
	assert.True(t, ok)
	assert.Equal(t, 5, q)
}

func TestOrderSubTypes(t *testing.T) {
	m := &QuotaMatrix{SubTypePriority: []string{"need", "merit"}}

	out := m.OrderSubTypes([]string{"merit", "sports", "need", "arts"})

	// prioritas dulu sesuai konfigurasi, sisanya urut kode
	assert.Equal(t, []string{"need", "merit", "arts", "sports"}, out)
}
