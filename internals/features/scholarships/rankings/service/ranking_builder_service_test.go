// file: internals/features/scholarships/rankings/service/ranking_builder_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	configModel "beasiswaku_backend/internals/features/scholarships/scholarship_configs/model"
)

func candWithRank(rank *int, submittedAt time.Time) RankingCandidate {
	return RankingCandidate{
		Application: appModel.ScholarshipApplicationModel{
			ScholarshipApplicationsSubmittedAt: submittedAt,
		},
		Review: appModel.ApplicationReviewModel{
			ApplicationReviewsFinalRank: rank,
		},
	}
}

func intPtr(v int) *int { return &v }

func TestSortRankingCandidates_FinalRankWins(t *testing.T) {
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	cands := []RankingCandidate{
		candWithRank(intPtr(5), base),
		candWithRank(intPtr(1), base.Add(time.Hour)),
		candWithRank(intPtr(3), base),
	}
	SortRankingCandidates(cands)

	assert.Equal(t, 1, *cands[0].Review.ApplicationReviewsFinalRank)
	assert.Equal(t, 3, *cands[1].Review.ApplicationReviewsFinalRank)
	assert.Equal(t, 5, *cands[2].Review.ApplicationReviewsFinalRank)
}

func TestSortRankingCandidates_UnrankedGoLast(t *testing.T) {
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	cands := []RankingCandidate{
		candWithRank(nil, base), // belum diperingkat reviewer
		candWithRank(intPtr(2), base.Add(2*time.Hour)),
	}
	SortRankingCandidates(cands)

	assert.NotNil(t, cands[0].Review.ApplicationReviewsFinalRank)
	assert.Nil(t, cands[1].Review.ApplicationReviewsFinalRank)
}

func TestSortRankingCandidates_SubmittedAtBreaksTies(t *testing.T) {
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	early := candWithRank(intPtr(1), base)
	late := candWithRank(intPtr(1), base.Add(time.Minute))

	cands := []RankingCandidate{late, early}
	SortRankingCandidates(cands)

	assert.Equal(t, base, cands[0].Application.ScholarshipApplicationsSubmittedAt)

	// dua-duanya unranked: submit lebih awal tetap menang
	cands = []RankingCandidate{
		candWithRank(nil, base.Add(time.Hour)),
		candWithRank(nil, base),
	}
	SortRankingCandidates(cands)
	assert.Equal(t, base, cands[0].Application.ScholarshipApplicationsSubmittedAt)
}

func TestRankingTupleLockKey(t *testing.T) {
	typeID := uuid.New()

	// tuple sama → key sama (serialisasi pembuatan bersamaan)
	assert.Equal(t,
		rankingTupleLockKey(typeID, "merit", "2026", "ganjil"),
		rankingTupleLockKey(typeID, "merit", "2026", "ganjil"))

	base := rankingTupleLockKey(typeID, "merit", "2026", "ganjil")
	assert.NotEqual(t, base, rankingTupleLockKey(uuid.New(), "merit", "2026", "ganjil"))
	assert.NotEqual(t, base, rankingTupleLockKey(typeID, "need", "2026", "ganjil"))
	assert.NotEqual(t, base, rankingTupleLockKey(typeID, "merit", "2025", "ganjil"))
	assert.NotEqual(t, base, rankingTupleLockKey(typeID, "merit", "2026", "yearly"))
}

func TestTotalQuotaFromConfig(t *testing.T) {
	quota := 15
	cfg := &configModel.ScholarshipConfigModel{ScholarshipConfigsTotalQuota: &quota}

	got, err := totalQuotaFromConfig(cfg, nil)
	assert.NoError(t, err)
	assert.Equal(t, 15, *got)

	// konfigurasi belum ada → snapshot kosong, bukan error
	got, err = totalQuotaFromConfig(nil, fiber.NewError(fiber.StatusNotFound, "tidak ditemukan"))
	assert.NoError(t, err)
	assert.Nil(t, got)

	// kegagalan storage tetap dipropagasi
	_, err = totalQuotaFromConfig(nil, fiber.NewError(fiber.StatusInternalServerError, "db mati"))
	assert.Error(t, err)
}
