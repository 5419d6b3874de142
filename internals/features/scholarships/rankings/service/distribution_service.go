// file: internals/features/scholarships/rankings/service/distribution_service.go
package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
	quotaService "beasiswaku_backend/internals/features/scholarships/scholarship_configs/service"
)

// DistributionSummary: agregat satu run engine (dikembalikan ke caller,
// snapshot lengkapnya tersimpan di scholarship_distributions).
type DistributionSummary struct {
	RankingID      uuid.UUID                       `json:"ranking_id"`
	TotalAllocated int                             `json:"total_allocated"`
	AdmittedCount  int                             `json:"admitted_count"`
	BackupCount    int                             `json:"backup_count"`
	RejectedCount  int                             `json:"rejected_count"`
	CellBreakdown  map[string]map[string]CellUsage `json:"cell_breakdown"`
}

type DistributionService interface {
	Execute(db *gorm.DB, rankingID uuid.UUID, executedBy *uuid.UUID, exclusive bool) (*DistributionSummary, error)
}

type distributionSvc struct {
	quota quotaService.QuotaMatrixService
}

func NewDistributionService(quota quotaService.QuotaMatrixService) DistributionService {
	if quota == nil {
		quota = quotaService.NewQuotaMatrixService()
	}
	return &distributionSvc{quota: quota}
}

// Execute menjalankan distribusi matriks untuk satu ranking dalam satu
// transaksi: kunci baris ranking, muat item urut rank_position, baca ulang
// QuotaMatrix (tidak pernah pakai cache), jalankan pass murni in-memory,
// lalu tulis semua field alokasi + snapshot audit. Setiap run menghitung
// ulang penuh dari state sekarang — tidak pernah menambal alokasi lama.
func (s *distributionSvc) Execute(db *gorm.DB, rankingID uuid.UUID, executedBy *uuid.UUID, exclusive bool) (*DistributionSummary, error) {
	var summary *DistributionSummary

	err := db.Transaction(func(tx *gorm.DB) error {
		var ranking rankModel.ScholarshipRankingModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("scholarship_rankings_id = ?", rankingID).
			First(&ranking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Ranking tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil ranking")
		}

		if exclusive && ranking.ScholarshipRankingsDistributionExecuted {
			return fiber.NewError(fiber.StatusConflict, "Distribusi sudah pernah dijalankan untuk ranking ini")
		}

		var items []rankModel.ScholarshipRankingItemModel
		if err := tx.
			Where("scholarship_ranking_items_ranking_id = ?", rankingID).
			Order("scholarship_ranking_items_rank_position ASC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil item ranking")
		}

		semester := ranking.ScholarshipRankingsSemester
		matrix, err := s.quota.Resolve(tx, ranking.ScholarshipRankingsScholarshipTypeID,
			ranking.ScholarshipRankingsAcademicYear, &semester)
		if err != nil {
			return err
		}

		cands, err := s.buildCandidates(tx, ranking, items)
		if err != nil {
			return err
		}

		result := RunMatrixAllocation(cands, matrix)

		now := time.Now()
		for _, out := range result.Outcomes {
			updates := map[string]any{
				"scholarship_ranking_items_status":             out.Status,
				"scholarship_ranking_items_is_allocated":       out.IsAllocated,
				"scholarship_ranking_items_allocated_sub_type": out.AllocatedSubType,
				"scholarship_ranking_items_allocation_reason":  out.AllocationReason,
				"scholarship_ranking_items_backup_position":    out.BackupPosition,
				"scholarship_ranking_items_backup_allocations": rankModel.MarshalBackups(out.Backups),
				"scholarship_ranking_items_updated_at":         now,
			}
			if err := tx.Model(&rankModel.ScholarshipRankingItemModel{}).
				Where("scholarship_ranking_items_id = ?", out.ItemID).
				Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan hasil alokasi")
			}
		}

		snapshot := rankModel.ScholarshipDistributionModel{
			ScholarshipDistributionsRankingID:      rankingID,
			ScholarshipDistributionsTotalAllocated: result.TotalAllocated,
			ScholarshipDistributionsAdmittedCount:  result.AdmittedCount,
			ScholarshipDistributionsBackupCount:    result.BackupCount,
			ScholarshipDistributionsRejectedCount:  result.RejectedCount,
			ScholarshipDistributionsCellBreakdown:  marshalBreakdown(result.CellBreakdown),
			ScholarshipDistributionsExecutedBy:     executedBy,
		}
		if err := tx.Create(&snapshot).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan snapshot distribusi")
		}

		if err := tx.Model(&rankModel.ScholarshipRankingModel{}).
			Where("scholarship_rankings_id = ?", rankingID).
			Updates(map[string]any{
				"scholarship_rankings_allocated_count":       result.TotalAllocated,
				"scholarship_rankings_distribution_executed": true,
				"scholarship_rankings_distribution_date":     now,
				"scholarship_rankings_updated_at":            now,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui ranking")
		}

		summary = &DistributionSummary{
			RankingID:      rankingID,
			TotalAllocated: result.TotalAllocated,
			AdmittedCount:  result.AdmittedCount,
			BackupCount:    result.BackupCount,
			RejectedCount:  result.RejectedCount,
			CellBreakdown:  result.CellBreakdown,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Distribution] SUCCESS ranking=%s allocated=%d backup=%d rejected=%d",
		rankingID, summary.TotalAllocated, summary.BackupCount, summary.RejectedCount)
	return summary, nil
}

// buildCandidates menggabungkan item dengan snapshot aplikasi + review.
// Aplikasi soft-deleted tetap dimuat (Unscoped) supaya item-nya bisa
// ditandai, bukan dihilangkan diam-diam.
func (s *distributionSvc) buildCandidates(
	tx *gorm.DB,
	ranking rankModel.ScholarshipRankingModel,
	items []rankModel.ScholarshipRankingItemModel,
) ([]AllocationCandidate, error) {
	if len(items) == 0 {
		return nil, nil
	}

	appIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		appIDs = append(appIDs, it.ScholarshipRankingItemsApplicationID)
	}

	var apps []appModel.ScholarshipApplicationModel
	if err := tx.Unscoped().
		Where("scholarship_applications_id IN ?", appIDs).
		Find(&apps).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil aplikasi kandidat")
	}
	appByID := make(map[uuid.UUID]appModel.ScholarshipApplicationModel, len(apps))
	for _, a := range apps {
		appByID[a.ScholarshipApplicationsID] = a
	}

	var reviews []appModel.ApplicationReviewModel
	if err := tx.
		Where("application_reviews_application_id IN ?", appIDs).
		Find(&reviews).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil review kandidat")
	}
	reviewByApp := make(map[uuid.UUID]appModel.ApplicationReviewModel, len(reviews))
	for _, r := range reviews {
		reviewByApp[r.ApplicationReviewsApplicationID] = r
	}

	cands := make([]AllocationCandidate, 0, len(items))
	for _, it := range items {
		cand := AllocationCandidate{
			ItemID:        it.ScholarshipRankingItemsID,
			ApplicationID: it.ScholarshipRankingItemsApplicationID,
			RankPosition:  it.ScholarshipRankingItemsRankPosition,
		}

		app, ok := appByID[it.ScholarshipRankingItemsApplicationID]
		if !ok || app.ScholarshipApplicationsDeletedAt.Valid {
			cand.Deleted = true
			cands = append(cands, cand)
			continue
		}

		cand.CollegeCode = app.ScholarshipApplicationsCollegeCode
		cand.ApplicationStatus = app.ScholarshipApplicationsStatus
		cand.AppliedSubTypes = app.ScholarshipApplicationsSubTypeCodes
		// ranking per sub-type hanya mengalokasikan di sub-type itu
		if ranking.ScholarshipRankingsSubTypeCode != rankModel.SubTypeDefault {
			cand.AppliedSubTypes = intersectSubTypes(
				app.ScholarshipApplicationsSubTypeCodes,
				[]string{ranking.ScholarshipRankingsSubTypeCode},
			)
		}

		if review, ok := reviewByApp[app.ScholarshipApplicationsID]; ok {
			cand.ApprovedSubTypes = review.ApplicationReviewsApprovedSubTypes
		}
		cands = append(cands, cand)
	}
	return cands, nil
}

func marshalBreakdown(breakdown map[string]map[string]CellUsage) datatypes.JSON {
	b, err := json.Marshal(breakdown)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
