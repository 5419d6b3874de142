// file: internals/features/scholarships/rankings/service/ranking_finalize_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
)

func rankingForTuple(typeID uuid.UUID, subType, year, semester string, finalized bool) rankModel.ScholarshipRankingModel {
	return rankModel.ScholarshipRankingModel{
		ScholarshipRankingsID:                uuid.New(),
		ScholarshipRankingsScholarshipTypeID: typeID,
		ScholarshipRankingsSubTypeCode:       subType,
		ScholarshipRankingsAcademicYear:      year,
		ScholarshipRankingsSemester:          semester,
		ScholarshipRankingsIsFinalized:       finalized,
	}
}

func TestFinalizedSiblings_ExactlyOneFinalizedRemains(t *testing.T) {
	typeID := uuid.New()
	target := rankingForTuple(typeID, "merit", "2026", "ganjil", false)
	other := rankingForTuple(typeID, "merit", "2026", "ganjil", true)

	// finalize(target) saat other finalized: other-lah yang harus dilepas,
	// sehingga setelahnya tepat satu finalized per tuple
	out := finalizedSiblings(target, []rankModel.ScholarshipRankingModel{other})
	assert.Len(t, out, 1)
	assert.Equal(t, other.ScholarshipRankingsID, out[0].ScholarshipRankingsID)
}

func TestFinalizedSiblings_DraftSiblingsUntouched(t *testing.T) {
	typeID := uuid.New()
	target := rankingForTuple(typeID, "merit", "2026", "ganjil", false)
	draft := rankingForTuple(typeID, "merit", "2026", "ganjil", false)

	assert.Empty(t, finalizedSiblings(target, []rankModel.ScholarshipRankingModel{draft}))
}

func TestFinalizedSiblings_OtherTuplesUntouched(t *testing.T) {
	typeID := uuid.New()
	target := rankingForTuple(typeID, "merit", "2026", "ganjil", false)

	others := []rankModel.ScholarshipRankingModel{
		rankingForTuple(uuid.New(), "merit", "2026", "ganjil", true), // type beda
		rankingForTuple(typeID, "need", "2026", "ganjil", true),      // sub-type beda
		rankingForTuple(typeID, "merit", "2025", "ganjil", true),     // tahun beda
		rankingForTuple(typeID, "merit", "2026", "yearly", true),     // semester beda
	}
	assert.Empty(t, finalizedSiblings(target, others))
}

func TestFinalizedSiblings_TargetExcluded(t *testing.T) {
	target := rankingForTuple(uuid.New(), "merit", "2026", "ganjil", true)

	// target sendiri tidak pernah ikut dilepas
	assert.Empty(t, finalizedSiblings(target, []rankModel.ScholarshipRankingModel{target}))
}
