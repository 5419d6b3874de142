// file: internals/features/scholarships/rankings/service/allocator_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
	quotaService "beasiswaku_backend/internals/features/scholarships/scholarship_configs/service"
)

func newCandidate(rank int, college string, subTypes ...string) AllocationCandidate {
	return AllocationCandidate{
		ItemID:            uuid.New(),
		ApplicationID:     uuid.New(),
		RankPosition:      rank,
		CollegeCode:       college,
		AppliedSubTypes:   subTypes,
		ApprovedSubTypes:  subTypes,
		ApplicationStatus: appModel.ApplicationStatusRecommended,
	}
}

func TestRunMatrixAllocation_FullCellQueuesBackups(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells:           map[string]map[string]int{"nstc": {"C": 1}},
		HasCollegeQuota: true,
	}
	cands := []AllocationCandidate{
		newCandidate(1, "C", "nstc"),
		newCandidate(2, "C", "nstc"),
		newCandidate(3, "C", "nstc"),
	}

	res := RunMatrixAllocation(cands, matrix)

	assert.Equal(t, 1, res.TotalAllocated)
	assert.Equal(t, 2, res.BackupCount)
	assert.Equal(t, 0, res.RejectedCount)

	first := res.Outcomes[0]
	assert.True(t, first.IsAllocated)
	assert.Equal(t, "nstc", *first.AllocatedSubType)
	assert.Equal(t, rankModel.AllocationReasonMatrix, *first.AllocationReason)

	second := res.Outcomes[1]
	assert.False(t, second.IsAllocated)
	assert.Equal(t, rankModel.RankingItemStatusRanked, second.Status)
	assert.Equal(t, 1, *second.BackupPosition)

	third := res.Outcomes[2]
	assert.Equal(t, 2, *third.BackupPosition)

	usage := res.CellBreakdown["nstc"]["C"]
	assert.Equal(t, 1, usage.Quota)
	assert.Equal(t, 1, usage.Allocated)
	assert.Equal(t, 2, usage.Backups)
}

func TestRunMatrixAllocation_FairnessStrictRankOrder(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells:           map[string]map[string]int{"merit": {"A": 1}},
		HasCollegeQuota: true,
	}
	// input sengaja diacak: rank 3 duluan
	worse := newCandidate(3, "A", "merit")
	better := newCandidate(1, "A", "merit")
	res := RunMatrixAllocation([]AllocationCandidate{worse, better}, matrix)

	assert.Equal(t, better.ItemID, res.Outcomes[0].ItemID)
	assert.True(t, res.Outcomes[0].IsAllocated)
	assert.False(t, res.Outcomes[1].IsAllocated)
}

func TestRunMatrixAllocation_Deterministic(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells: map[string]map[string]int{
			"merit": {"A": 1, "B": 2},
			"need":  {"A": 1},
		},
		SubTypePriority: []string{"merit", "need"},
		HasCollegeQuota: true,
	}
	cands := []AllocationCandidate{
		newCandidate(1, "A", "merit", "need"),
		newCandidate(2, "A", "merit", "need"),
		newCandidate(3, "B", "merit"),
		newCandidate(4, "A", "need"),
	}

	first := RunMatrixAllocation(cands, matrix)
	second := RunMatrixAllocation(cands, matrix)
	assert.Equal(t, first, second)
}

func TestRunMatrixAllocation_PriorityOrderAcrossSubTypes(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells: map[string]map[string]int{
			"merit": {"A": 1},
			"need":  {"A": 1},
		},
		SubTypePriority: []string{"need", "merit"},
		HasCollegeQuota: true,
	}
	cand := newCandidate(1, "A", "merit", "need")
	res := RunMatrixAllocation([]AllocationCandidate{cand}, matrix)

	// prioritas konfigurasi menang atas urutan applied
	assert.Equal(t, "need", *res.Outcomes[0].AllocatedSubType)
}

func TestRunMatrixAllocation_SecondSubTypeAfterFullCell(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells: map[string]map[string]int{
			"merit": {"A": 1},
			"need":  {"A": 1},
		},
		SubTypePriority: []string{"merit", "need"},
		HasCollegeQuota: true,
	}
	cands := []AllocationCandidate{
		newCandidate(1, "A", "merit"),
		newCandidate(2, "A", "merit", "need"),
	}
	res := RunMatrixAllocation(cands, matrix)

	// merit penuh oleh rank 1; rank 2 dapat primary di need,
	// plus tercatat sebagai backup antrean merit
	out := res.Outcomes[1]
	assert.True(t, out.IsAllocated)
	assert.Equal(t, "need", *out.AllocatedSubType)
	assert.Len(t, out.Backups, 1)
	assert.Equal(t, "merit", out.Backups[0].SubType)
	assert.Equal(t, 1, out.Backups[0].BackupPosition)
}

func TestRunMatrixAllocation_RejectionReasons(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells:           map[string]map[string]int{"merit": {"A": 1}},
		HasCollegeQuota: true,
	}

	deleted := newCandidate(1, "A", "merit")
	deleted.Deleted = true

	rejected := newCandidate(2, "A", "merit")
	rejected.ApplicationStatus = appModel.ApplicationStatusRejected

	// sub-type merit dikonfigurasi, tapi fakultas Z tidak punya cell
	wrongCollege := newCandidate(3, "Z", "merit")

	// sub-type tidak dikenal sama sekali
	unknownSubType := newCandidate(4, "A", "sports")

	res := RunMatrixAllocation([]AllocationCandidate{deleted, rejected, wrongCollege, unknownSubType}, matrix)
	assert.Equal(t, 4, res.RejectedCount)

	assert.Equal(t, rankModel.AllocationReasonApplicationDeleted, *res.Outcomes[0].AllocationReason)
	assert.Equal(t, rankModel.AllocationReasonReviewRejected, *res.Outcomes[1].AllocationReason)
	assert.Equal(t, rankModel.AllocationReasonQuotaExhausted, *res.Outcomes[2].AllocationReason)
	assert.Equal(t, rankModel.AllocationReasonNoMatchingCell, *res.Outcomes[3].AllocationReason)
	for _, out := range res.Outcomes {
		assert.Equal(t, rankModel.RankingItemStatusRejected, out.Status)
	}
}

func TestRunMatrixAllocation_ApprovedSubTypesGateEligibility(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells: map[string]map[string]int{
			"merit": {"A": 1},
			"need":  {"A": 1},
		},
		HasCollegeQuota: true,
	}
	cand := newCandidate(1, "A", "merit", "need")
	cand.ApprovedSubTypes = []string{"need"} // reviewer hanya menyetujui need

	res := RunMatrixAllocation([]AllocationCandidate{cand}, matrix)
	assert.Equal(t, "need", *res.Outcomes[0].AllocatedSubType)
}

func TestRunMatrixAllocation_NoCollegeQuotaUsesSharedCell(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells:           map[string]map[string]int{"merit": {"all": 1}},
		HasCollegeQuota: false,
	}
	cands := []AllocationCandidate{
		newCandidate(1, "A", "merit"),
		newCandidate(2, "B", "merit"), // fakultas beda, cell sama
	}
	res := RunMatrixAllocation(cands, matrix)

	assert.True(t, res.Outcomes[0].IsAllocated)
	assert.False(t, res.Outcomes[1].IsAllocated)
	assert.Equal(t, "all", res.Outcomes[1].Backups[0].College)
}

func TestRunMatrixAllocation_ZeroQuotaCellGoesToBackup(t *testing.T) {
	matrix := &quotaService.QuotaMatrix{
		Cells:           map[string]map[string]int{"merit": {"A": 0}},
		HasCollegeQuota: true,
	}
	res := RunMatrixAllocation([]AllocationCandidate{newCandidate(1, "A", "merit")}, matrix)

	out := res.Outcomes[0]
	assert.False(t, out.IsAllocated)
	assert.Equal(t, rankModel.RankingItemStatusRanked, out.Status)
	assert.Equal(t, 1, *out.BackupPosition)
}
