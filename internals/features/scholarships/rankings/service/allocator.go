// file: internals/features/scholarships/rankings/service/allocator.go
package service

import (
	"sort"

	"github.com/google/uuid"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
	quotaService "beasiswaku_backend/internals/features/scholarships/scholarship_configs/service"
)

// AllocationCandidate: satu item ranking yang sudah digabung dengan snapshot
// aplikasi + review-nya. Murni in-memory; engine tidak menyentuh storage.
type AllocationCandidate struct {
	ItemID            uuid.UUID
	ApplicationID     uuid.UUID
	RankPosition      int
	CollegeCode       string
	AppliedSubTypes   []string
	ApprovedSubTypes  []string
	ApplicationStatus string
	Deleted           bool
}

// AllocationOutcome: hasil per item setelah satu pass distribusi.
type AllocationOutcome struct {
	ItemID           uuid.UUID
	RankPosition     int
	Status           string
	IsAllocated      bool
	AllocatedSubType *string
	AllocationReason *string
	BackupPosition   *int
	Backups          []rankModel.BackupAllocation
}

// CellUsage: breakdown satu cell (sub_type, college) setelah pass.
type CellUsage struct {
	Quota     int `json:"quota"`
	Allocated int `json:"allocated"`
	Backups   int `json:"backups"`
}

// AllocationResult: keluaran lengkap satu run engine.
type AllocationResult struct {
	Outcomes       []AllocationOutcome
	TotalAllocated int
	AdmittedCount  int
	BackupCount    int
	RejectedCount  int
	CellBreakdown  map[string]map[string]CellUsage
}

// RunMatrixAllocation menjalankan satu pass distribusi matriks secara
// deterministik. Kandidat diproses ketat urut rank_position (fairness:
// kandidat berperingkat lebih buruk tidak boleh dapat slot primary di
// sebuah cell selagi kandidat lebih baik ditolak dari cell yang sama).
// Fungsi murni: dua kali jalan dengan input sama menghasilkan output sama.
func RunMatrixAllocation(candidates []AllocationCandidate, matrix *quotaService.QuotaMatrix) AllocationResult {
	sorted := append([]AllocationCandidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RankPosition < sorted[j].RankPosition
	})

	used := map[string]map[string]int{}       // primary terpakai per cell
	backupLens := map[string]map[string]int{} // panjang antrean backup per cell

	res := AllocationResult{
		Outcomes:      make([]AllocationOutcome, 0, len(sorted)),
		CellBreakdown: map[string]map[string]CellUsage{},
	}

	for _, cand := range sorted {
		out := AllocationOutcome{
			ItemID:       cand.ItemID,
			RankPosition: cand.RankPosition,
		}

		switch {
		case cand.Deleted:
			rejectOutcome(&out, rankModel.AllocationReasonApplicationDeleted)
			res.RejectedCount++
		case cand.ApplicationStatus == appModel.ApplicationStatusRejected:
			rejectOutcome(&out, rankModel.AllocationReasonReviewRejected)
			res.RejectedCount++
		default:
			allocateCandidate(&out, cand, matrix, used, backupLens)
			switch {
			case out.IsAllocated:
				res.AdmittedCount++
				res.TotalAllocated++
			case len(out.Backups) > 0:
				res.BackupCount++
			default:
				res.RejectedCount++
			}
		}

		res.Outcomes = append(res.Outcomes, out)
	}

	res.CellBreakdown = buildCellBreakdown(matrix, used, backupLens)
	return res
}

// allocateCandidate mencoba memberi satu primary; cell penuh menambah antrean
// backup dan pencarian lanjut ke sub-type prioritas berikutnya.
func allocateCandidate(
	out *AllocationOutcome,
	cand AllocationCandidate,
	matrix *quotaService.QuotaMatrix,
	used map[string]map[string]int,
	backupLens map[string]map[string]int,
) {
	eligible := matrix.OrderSubTypes(intersectSubTypes(cand.AppliedSubTypes, cand.ApprovedSubTypes))
	cellKey := matrix.CellKey(cand.CollegeCode)

	sawSubTypeRow := false
	for _, subType := range eligible {
		capacity, cellExists := matrix.Capacity(subType, cand.CollegeCode)
		if _, rowExists := matrix.Cells[subType]; rowExists {
			sawSubTypeRow = true
		}
		if !cellExists {
			continue
		}

		if bump(used, subType, cellKey, 0) < capacity {
			// primary: konsumsi satu unit lalu berhenti mencari primary lain
			bump(used, subType, cellKey, 1)
			st := subType
			reason := rankModel.AllocationReasonMatrix
			out.Status = rankModel.RankingItemStatusAllocated
			out.IsAllocated = true
			out.AllocatedSubType = &st
			out.AllocationReason = &reason
			return
		}

		// cell penuh (termasuk kuota 0): masuk antrean backup cell ini,
		// posisi 1-based mengikuti urutan rank
		pos := bump(backupLens, subType, cellKey, 1)
		out.Backups = append(out.Backups, rankModel.BackupAllocation{
			SubType:        subType,
			College:        cellKey,
			BackupPosition: pos,
		})
	}

	if len(out.Backups) > 0 {
		out.Status = rankModel.RankingItemStatusRanked
		bp := out.Backups[0].BackupPosition
		out.BackupPosition = &bp
		return
	}

	if sawSubTypeRow {
		// sub-type-nya dikonfigurasi tapi tidak ada cell untuk fakultas kandidat
		rejectOutcome(out, rankModel.AllocationReasonQuotaExhausted)
		return
	}
	rejectOutcome(out, rankModel.AllocationReasonNoMatchingCell)
}

func rejectOutcome(out *AllocationOutcome, reason string) {
	r := reason
	out.Status = rankModel.RankingItemStatusRejected
	out.IsAllocated = false
	out.AllocationReason = &r
}

// bump menaikkan counter dua-level dan mengembalikan nilai barunya
// (delta 0 = baca saja).
func bump(m map[string]map[string]int, k1, k2 string, delta int) int {
	row, ok := m[k1]
	if !ok {
		row = map[string]int{}
		m[k1] = row
	}
	row[k2] += delta
	return row[k2]
}

func intersectSubTypes(applied, approved []string) []string {
	if len(applied) == 0 || len(approved) == 0 {
		return nil
	}
	ok := make(map[string]bool, len(approved))
	for _, st := range approved {
		ok[st] = true
	}
	var out []string
	seen := map[string]bool{}
	for _, st := range applied {
		if ok[st] && !seen[st] {
			out = append(out, st)
			seen[st] = true
		}
	}
	return out
}

func buildCellBreakdown(
	matrix *quotaService.QuotaMatrix,
	used map[string]map[string]int,
	backupLens map[string]map[string]int,
) map[string]map[string]CellUsage {
	breakdown := map[string]map[string]CellUsage{}
	for subType, colleges := range matrix.Cells {
		row := map[string]CellUsage{}
		for college, quota := range colleges {
			row[college] = CellUsage{
				Quota:     quota,
				Allocated: used[subType][college],
				Backups:   backupLens[subType][college],
			}
		}
		breakdown[subType] = row
	}
	return breakdown
}
