// file: internals/features/scholarships/rankings/service/ranking_builder_service.go
package service

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
	configModel "beasiswaku_backend/internals/features/scholarships/scholarship_configs/model"
	quotaService "beasiswaku_backend/internals/features/scholarships/scholarship_configs/service"
)

// RankingCandidate memasangkan aplikasi dengan review-nya (placeholder
// "unreviewed" bila belum ada review) untuk keperluan sorting builder.
type RankingCandidate struct {
	Application appModel.ScholarshipApplicationModel
	Review      appModel.ApplicationReviewModel
}

// SortRankingCandidates mengurutkan kandidat dengan kunci
// (final_rank asc — belum diperingkat = +inf, submitted_at asc).
// Rank 1 = terkuat.
func SortRankingCandidates(cands []RankingCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		ri := effectiveRank(cands[i].Review.ApplicationReviewsFinalRank)
		rj := effectiveRank(cands[j].Review.ApplicationReviewsFinalRank)
		if ri != rj {
			return ri < rj
		}
		return cands[i].Application.ScholarshipApplicationsSubmittedAt.
			Before(cands[j].Application.ScholarshipApplicationsSubmittedAt)
	})
}

func effectiveRank(r *int) float64 {
	if r == nil {
		return math.Inf(1)
	}
	return float64(*r)
}

// CreateRankingParams: input pembuatan ranking dari controller.
type CreateRankingParams struct {
	ScholarshipTypeID uuid.UUID
	SubTypeCode       string // "default" = semua sub-type digabung
	AcademicYear      string
	Semester          *string
	ForceNew          bool
	CollegeScope      string // batas fakultas aktor; kosong = semua
	CreatedBy         *uuid.UUID
}

type RankingBuilderService interface {
	CreateRanking(db *gorm.DB, p CreateRankingParams) (*rankModel.ScholarshipRankingModel, bool, error)
}

type rankingBuilderSvc struct {
	quota quotaService.QuotaMatrixService
}

func NewRankingBuilderService(quota quotaService.QuotaMatrixService) RankingBuilderService {
	if quota == nil {
		quota = quotaService.NewQuotaMatrixService()
	}
	return &rankingBuilderSvc{quota: quota}
}

// CreateRanking membangun ranking baru untuk satu tuple
// (type, sub_type|"default", tahun, semester ternormalisasi).
// Idempotent: tanpa force_new, ranking draft yang sudah ada untuk tuple
// yang sama dikembalikan apa adanya. Seluruh cek + insert berjalan dalam
// satu transaksi yang diserialisasi advisory lock per tuple, jadi dua
// panggilan bersamaan tidak bisa sama-sama insert. Set kandidat kosong
// tetap menghasilkan ranking valid (kosong), bukan error.
func (s *rankingBuilderSvc) CreateRanking(db *gorm.DB, p CreateRankingParams) (*rankModel.ScholarshipRankingModel, bool, error) {
	subType := p.SubTypeCode
	if subType == "" {
		subType = rankModel.SubTypeDefault
	}
	norm := quotaService.NormalizeSemester(p.Semester)

	var (
		ranking rankModel.ScholarshipRankingModel
		created bool
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))",
			rankingTupleLockKey(p.ScholarshipTypeID, subType, p.AcademicYear, norm)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil lock tuple ranking")
		}

		if !p.ForceNew {
			var existing rankModel.ScholarshipRankingModel
			err := tx.
				Where("scholarship_rankings_scholarship_type_id = ?", p.ScholarshipTypeID).
				Where("scholarship_rankings_sub_type_code = ?", subType).
				Where("scholarship_rankings_academic_year = ?", p.AcademicYear).
				Where("scholarship_rankings_semester = ?", norm).
				Where("scholarship_rankings_is_finalized = FALSE").
				First(&existing).Error
			if err == nil {
				log.Printf("[RankingBuilder] reuse ranking=%s tuple=(%s,%s,%s,%s)",
					existing.ScholarshipRankingsID, p.ScholarshipTypeID, subType, p.AcademicYear, norm)
				ranking = existing
				return nil
			}
			if err != gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa ranking yang sudah ada")
			}
		}

		cands, err := s.loadCandidates(tx, p, subType, norm)
		if err != nil {
			return err
		}
		SortRankingCandidates(cands)

		// Snapshot total kuota dari konfigurasi (boleh belum ada)
		cfg, cfgErr := s.quota.FindConfig(tx, p.ScholarshipTypeID, p.AcademicYear, p.Semester)
		totalQuota, err := totalQuotaFromConfig(cfg, cfgErr)
		if err != nil {
			return err
		}

		ranking = rankModel.ScholarshipRankingModel{
			ScholarshipRankingsScholarshipTypeID: p.ScholarshipTypeID,
			ScholarshipRankingsSubTypeCode:       subType,
			ScholarshipRankingsAcademicYear:      p.AcademicYear,
			ScholarshipRankingsSemester:          norm,
			ScholarshipRankingsName:              fmt.Sprintf("Peringkat %s %s %s", subType, p.AcademicYear, norm),
			ScholarshipRankingsStatus:            rankModel.RankingStatusDraft,
			ScholarshipRankingsTotalQuota:        totalQuota,
			ScholarshipRankingsCreatedBy:         p.CreatedBy,
		}
		if err := tx.Create(&ranking).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat ranking")
		}
		created = true

		if len(cands) == 0 {
			return nil
		}
		items := make([]rankModel.ScholarshipRankingItemModel, 0, len(cands))
		for i, cand := range cands {
			items = append(items, rankModel.ScholarshipRankingItemModel{
				ScholarshipRankingItemsRankingID:         ranking.ScholarshipRankingsID,
				ScholarshipRankingItemsApplicationID:     cand.Application.ScholarshipApplicationsID,
				ScholarshipRankingItemsRankPosition:      i + 1,
				ScholarshipRankingItemsStatus:            rankModel.RankingItemStatusRanked,
				ScholarshipRankingItemsBackupAllocations: rankModel.MarshalBackups(nil),
			})
		}
		if err := tx.CreateInBatches(&items, 200).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat item ranking")
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		log.Printf("[RankingBuilder] created ranking=%s tuple=(%s,%s,%s,%s)",
			ranking.ScholarshipRankingsID, p.ScholarshipTypeID, subType, p.AcademicYear, norm)
	}
	return &ranking, created, nil
}

// rankingTupleLockKey membentuk key advisory lock untuk satu tuple identitas.
// Tuple sama harus menghasilkan key sama supaya pembuatan bersamaan
// terserialisasi di Postgres.
func rankingTupleLockKey(scholarshipTypeID uuid.UUID, subType, year, norm string) string {
	return fmt.Sprintf("scholarship_rankings:%s:%s:%s:%s", scholarshipTypeID, subType, year, norm)
}

// totalQuotaFromConfig memetakan hasil FindConfig ke snapshot total kuota:
// konfigurasi yang belum ada bukan error, kegagalan storage tetap dipropagasi.
func totalQuotaFromConfig(cfg *configModel.ScholarshipConfigModel, err error) (*int, error) {
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return cfg.ScholarshipConfigsTotalQuota, nil
}

func (s *rankingBuilderSvc) loadCandidates(db *gorm.DB, p CreateRankingParams, subType, norm string) ([]RankingCandidate, error) {
	q := db.Model(&appModel.ScholarshipApplicationModel{}).
		Where("scholarship_applications_scholarship_type_id = ?", p.ScholarshipTypeID).
		Where("scholarship_applications_academic_year = ?", p.AcademicYear).
		Where("(scholarship_applications_semester IS NULL AND ? = ?) OR LOWER(scholarship_applications_semester) = ?",
			norm, quotaService.SemesterYearly, norm).
		Where("scholarship_applications_is_renewal = FALSE").
		Where("scholarship_applications_status IN ?", appModel.RankableStatuses)

	if subType != rankModel.SubTypeDefault {
		q = q.Where("? = ANY(scholarship_applications_sub_type_codes)", subType)
	}
	if p.CollegeScope != "" {
		q = q.Where("scholarship_applications_college_code = ?", p.CollegeScope)
	}

	var apps []appModel.ScholarshipApplicationModel
	if err := q.Find(&apps).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kandidat")
	}
	if len(apps) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ScholarshipApplicationsID)
	}

	var reviews []appModel.ApplicationReviewModel
	if err := db.
		Where("application_reviews_application_id IN ?", ids).
		Find(&reviews).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil review kandidat")
	}
	reviewByApp := make(map[uuid.UUID]appModel.ApplicationReviewModel, len(reviews))
	for _, r := range reviews {
		reviewByApp[r.ApplicationReviewsApplicationID] = r
	}

	cands := make([]RankingCandidate, 0, len(apps))
	for _, a := range apps {
		review, ok := reviewByApp[a.ScholarshipApplicationsID]
		if !ok {
			// aplikasi tanpa review tetap ikut: pakai placeholder eksplisit
			review = appModel.PlaceholderReview(a.ScholarshipApplicationsID)
		}
		cands = append(cands, RankingCandidate{Application: a, Review: review})
	}
	return cands, nil
}
