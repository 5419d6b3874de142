// file: internals/features/scholarships/rankings/service/ranking_finalize_service.go
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

	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
)

// FinalizeService: state machine draft ↔ finalized + delete (draft saja).
type FinalizeService interface {
	Finalize(db *gorm.DB, rankingID, actor uuid.UUID) (*rankModel.ScholarshipRankingModel, error)
	Unfinalize(db *gorm.DB, rankingID uuid.UUID) (*rankModel.ScholarshipRankingModel, error)
	Delete(db *gorm.DB, rankingID uuid.UUID, actor *uuid.UUID) error
}

type finalizeSvc struct{}

func NewFinalizeService() FinalizeService {
	return &finalizeSvc{}
}

// Finalize mengunci ranking target dan, dalam transaksi yang sama, melepas
// finalisasi saudara se-tuple (FOR UPDATE pada keduanya) — invariant
// "maksimal satu finalized per tuple" tidak pernah punya jendela 0 atau 2.
func (s *finalizeSvc) Finalize(db *gorm.DB, rankingID, actor uuid.UUID) (*rankModel.ScholarshipRankingModel, error) {
	var ranking rankModel.ScholarshipRankingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("scholarship_rankings_id = ?", rankingID).
			First(&ranking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Ranking tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil ranking")
		}

		if ranking.ScholarshipRankingsIsFinalized {
			return fiber.NewError(fiber.StatusConflict, "Ranking sudah difinalisasi")
		}

		// kunci semua ranking se-tuple, lalu lepas finalisasi yang masih finalized
		// (bisa ada maksimal satu)
		var siblings []rankModel.ScholarshipRankingModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("scholarship_rankings_scholarship_type_id = ?", ranking.ScholarshipRankingsScholarshipTypeID).
			Where("scholarship_rankings_sub_type_code = ?", ranking.ScholarshipRankingsSubTypeCode).
			Where("scholarship_rankings_academic_year = ?", ranking.ScholarshipRankingsAcademicYear).
			Where("scholarship_rankings_semester = ?", ranking.ScholarshipRankingsSemester).
			Where("scholarship_rankings_id <> ?", rankingID).
			Find(&siblings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil ranking saudara")
		}

		now := time.Now()
		for _, sib := range finalizedSiblings(ranking, siblings) {
			if err := tx.Model(&rankModel.ScholarshipRankingModel{}).
				Where("scholarship_rankings_id = ?", sib.ScholarshipRankingsID).
				Updates(map[string]any{
					"scholarship_rankings_is_finalized": false,
					"scholarship_rankings_status":       rankModel.RankingStatusDraft,
					"scholarship_rankings_finalized_at": nil,
					"scholarship_rankings_finalized_by": nil,
					"scholarship_rankings_updated_at":   now,
				}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal melepas finalisasi ranking saudara")
			}
			log.Printf("[Finalize] unfinalized sibling=%s karena finalize=%s", sib.ScholarshipRankingsID, rankingID)
		}

		if err := tx.Model(&rankModel.ScholarshipRankingModel{}).
			Where("scholarship_rankings_id = ?", rankingID).
			Updates(map[string]any{
				"scholarship_rankings_is_finalized": true,
				"scholarship_rankings_status":       rankModel.RankingStatusFinalized,
				"scholarship_rankings_finalized_at": now,
				"scholarship_rankings_finalized_by": actor,
				"scholarship_rankings_updated_at":   now,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memfinalisasi ranking")
		}

		ranking.ScholarshipRankingsIsFinalized = true
		ranking.ScholarshipRankingsStatus = rankModel.RankingStatusFinalized
		ranking.ScholarshipRankingsFinalizedAt = &now
		ranking.ScholarshipRankingsFinalizedBy = &actor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

// finalizedSiblings memilih ranking finalized lain yang berbagi tuple identitas
// dengan target — inilah yang harus dilepas agar invariant "maksimal satu
// finalized per tuple" tetap berlaku setelah target difinalisasi.
func finalizedSiblings(target rankModel.ScholarshipRankingModel, rankings []rankModel.ScholarshipRankingModel) []rankModel.ScholarshipRankingModel {
	var out []rankModel.ScholarshipRankingModel
	for _, r := range rankings {
		if r.ScholarshipRankingsID == target.ScholarshipRankingsID || !r.ScholarshipRankingsIsFinalized {
			continue
		}
		if r.ScholarshipRankingsScholarshipTypeID != target.ScholarshipRankingsScholarshipTypeID ||
			r.ScholarshipRankingsSubTypeCode != target.ScholarshipRankingsSubTypeCode ||
			r.ScholarshipRankingsAcademicYear != target.ScholarshipRankingsAcademicYear ||
			r.ScholarshipRankingsSemester != target.ScholarshipRankingsSemester {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *finalizeSvc) Unfinalize(db *gorm.DB, rankingID uuid.UUID) (*rankModel.ScholarshipRankingModel, error) {
	var ranking rankModel.ScholarshipRankingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("scholarship_rankings_id = ?", rankingID).
			First(&ranking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Ranking tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil ranking")
		}

		if !ranking.ScholarshipRankingsIsFinalized {
			return fiber.NewError(fiber.StatusConflict, "Ranking belum difinalisasi")
		}

		// roster pembayaran yang sudah commit membekukan ranking di bawahnya
		locked, err := rankingRosterLocked(tx, rankingID)
		if err != nil {
			return err
		}
		if locked {
			return fiber.NewError(fiber.StatusConflict, "Roster pembayaran untuk ranking ini sudah terkunci — finalisasi tidak bisa dilepas")
		}

		now := time.Now()
		if err := tx.Model(&rankModel.ScholarshipRankingModel{}).
			Where("scholarship_rankings_id = ?", rankingID).
			Updates(map[string]any{
				"scholarship_rankings_is_finalized": false,
				"scholarship_rankings_status":       rankModel.RankingStatusDraft,
				"scholarship_rankings_finalized_at": nil,
				"scholarship_rankings_finalized_by": nil,
				"scholarship_rankings_updated_at":   now,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal melepas finalisasi ranking")
		}

		ranking.ScholarshipRankingsIsFinalized = false
		ranking.ScholarshipRankingsStatus = rankModel.RankingStatusDraft
		ranking.ScholarshipRankingsFinalizedAt = nil
		ranking.ScholarshipRankingsFinalizedBy = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

// Delete menghapus ranking draft: tulis snapshot audit dulu, hapus item,
// baru ranking-nya. Ranking finalized harus di-unfinalize lebih dulu.
func (s *finalizeSvc) Delete(db *gorm.DB, rankingID uuid.UUID, actor *uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
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

		if ranking.ScholarshipRankingsIsFinalized {
			return fiber.NewError(fiber.StatusConflict, "Ranking sudah difinalisasi — lepaskan finalisasi dulu")
		}

		var items []rankModel.ScholarshipRankingItemModel
		if err := tx.
			Where("scholarship_ranking_items_ranking_id = ?", rankingID).
			Order("scholarship_ranking_items_rank_position ASC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil item ranking")
		}

		audit := rankModel.RankingAuditLogModel{
			RankingAuditLogsRankingID: rankingID,
			RankingAuditLogsAction:    rankModel.RankingAuditActionDelete,
			RankingAuditLogsActorID:   actor,
			RankingAuditLogsSnapshot:  marshalDeleteSnapshot(ranking, items),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menulis audit penghapusan")
		}

		if err := tx.
			Where("scholarship_ranking_items_ranking_id = ?", rankingID).
			Delete(&rankModel.ScholarshipRankingItemModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus item ranking")
		}
		if err := tx.Delete(&ranking).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus ranking")
		}

		log.Printf("[Finalize] deleted ranking=%s items=%d", rankingID, len(items))
		return nil
	})
}

func marshalDeleteSnapshot(ranking rankModel.ScholarshipRankingModel, items []rankModel.ScholarshipRankingItemModel) datatypes.JSON {
	b, err := json.Marshal(map[string]any{
		"ranking": ranking,
		"items":   items,
	})
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
