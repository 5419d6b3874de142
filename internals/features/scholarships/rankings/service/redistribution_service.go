// file: internals/features/scholarships/rankings/service/redistribution_service.go
package service

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
	rosterModel "beasiswaku_backend/internals/features/scholarships/rosters/model"
	quotaService "beasiswaku_backend/internals/features/scholarships/scholarship_configs/service"
)

// Alasan skip per ranking pada redistribusi.
const (
	RedistributionSkipRosterExists = "roster_exists"
)

// RedistributionOutcome: hasil satu ranking dalam satu putaran redistribusi.
type RedistributionOutcome struct {
	RankingID      uuid.UUID `json:"ranking_id"`
	Executed       bool      `json:"executed"`
	SkipReason     string    `json:"skip_reason,omitempty"`
	Error          string    `json:"error,omitempty"`
	TotalAllocated int       `json:"total_allocated"`
}

// RedistributionSummary: agregat satu putaran redistribusi.
type RedistributionSummary struct {
	RankingsProcessed int                     `json:"rankings_processed"`
	SuccessfulCount   int                     `json:"successful_count"`
	TotalAllocated    int                     `json:"total_allocated"`
	Results           []RedistributionOutcome `json:"results"`
}

type RedistributionService interface {
	RedistributeForApplication(db *gorm.DB, applicationID uuid.UUID, triggeredBy *uuid.UUID) (*RedistributionSummary, error)
}

type redistributionSvc struct {
	distribution DistributionService
}

func NewRedistributionService(distribution DistributionService) RedistributionService {
	if distribution == nil {
		distribution = NewDistributionService(nil)
	}
	return &redistributionSvc{distribution: distribution}
}

// RedistributeForApplication menjalankan ulang engine distribusi untuk semua
// ranking yang berbagi (scholarship_type, tahun, semester) dengan aplikasi
// yang review-nya berubah — bisa beberapa (per sub-type + "default").
// Ranking yang roster-nya sudah terkunci dilewati dengan alasan roster_exists
// (roster pembayaran yang sudah commit tidak boleh diinvalidasi). Kegagalan
// satu ranking tidak membatalkan ranking lain; tiap hasil dilaporkan sendiri.
// Aman dipanggil berulang: tiap run fungsi murni dari state sekarang, jadi
// pemanggilan berulang konvergen ke fixed point yang sama.
func (s *redistributionSvc) RedistributeForApplication(db *gorm.DB, applicationID uuid.UUID, triggeredBy *uuid.UUID) (*RedistributionSummary, error) {
	var app appModel.ScholarshipApplicationModel
	if err := db.Unscoped().
		Where("scholarship_applications_id = ?", applicationID).
		First(&app).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil aplikasi")
	}

	norm := quotaService.NormalizeSemester(app.ScholarshipApplicationsSemester)

	var rankings []rankModel.ScholarshipRankingModel
	if err := db.
		Where("scholarship_rankings_scholarship_type_id = ?", app.ScholarshipApplicationsScholarshipTypeID).
		Where("scholarship_rankings_academic_year = ?", app.ScholarshipApplicationsAcademicYear).
		Where("scholarship_rankings_semester = ?", norm).
		Order("scholarship_rankings_created_at ASC").
		Find(&rankings).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar ranking")
	}

	summary := &RedistributionSummary{
		Results: make([]RedistributionOutcome, 0, len(rankings)),
	}

	for _, ranking := range rankings {
		outcome := RedistributionOutcome{RankingID: ranking.ScholarshipRankingsID}
		summary.RankingsProcessed++

		locked, err := rankingRosterLocked(db, ranking.ScholarshipRankingsID)
		if err != nil {
			outcome.Error = err.Error()
			summary.Results = append(summary.Results, outcome)
			continue
		}
		if locked {
			outcome.SkipReason = RedistributionSkipRosterExists
			log.Printf("[Redistribution] SKIP ranking=%s reason=%s", ranking.ScholarshipRankingsID, RedistributionSkipRosterExists)
			summary.Results = append(summary.Results, outcome)
			continue
		}

		dist, err := s.distribution.Execute(db, ranking.ScholarshipRankingsID, triggeredBy, false)
		if err != nil {
			// satu ranking gagal → lanjut ke saudaranya, laporkan terpisah
			outcome.Error = err.Error()
			log.Printf("[Redistribution] ERROR ranking=%s err=%v", ranking.ScholarshipRankingsID, err)
			summary.Results = append(summary.Results, outcome)
			continue
		}

		outcome.Executed = true
		outcome.TotalAllocated = dist.TotalAllocated
		summary.SuccessfulCount++
		summary.TotalAllocated += dist.TotalAllocated
		summary.Results = append(summary.Results, outcome)
	}

	log.Printf("[Redistribution] DONE app=%s processed=%d success=%d allocated=%d",
		applicationID, summary.RankingsProcessed, summary.SuccessfulCount, summary.TotalAllocated)
	return summary, nil
}

// rankingRosterLocked memeriksa apakah ada roster pembayaran yang mengunci
// ranking ini. Dipakai koordinator (skip) dan state machine (tolak unfinalize).
func rankingRosterLocked(db *gorm.DB, rankingID uuid.UUID) (bool, error) {
	var rosters []rosterModel.PaymentRosterModel
	if err := db.
		Where("payment_rosters_ranking_id = ?", rankingID).
		Find(&rosters).Error; err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa roster pembayaran")
	}
	return rosterModel.AnyLocks(rosters), nil
}
