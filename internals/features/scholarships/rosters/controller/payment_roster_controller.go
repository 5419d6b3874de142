// file: internals/features/scholarships/rosters/controller/payment_roster_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
	dto "beasiswaku_backend/internals/features/scholarships/rosters/dto"
	rosterModel "beasiswaku_backend/internals/features/scholarships/rosters/model"
	helper "beasiswaku_backend/internals/helpers"
	helperAuth "beasiswaku_backend/internals/helpers/auth"
)

type PaymentRosterController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPaymentRosterController(db *gorm.DB, v *validator.Validate) *PaymentRosterController {
	if v == nil {
		v = validator.New()
	}
	return &PaymentRosterController{DB: db, Validator: v}
}

/* ============================================
   CREATE (sinyal kunci untuk proses hilir)
   POST /api/a/payment-rosters
============================================ */

func (ctl *PaymentRosterController) Create(c *fiber.Ctx) error {
	var p dto.CreatePaymentRosterRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	actor, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
	}

	var ranking rankModel.ScholarshipRankingModel
	if err := ctl.DB.
		Where("scholarship_rankings_id = ?", p.RankingID).
		First(&ranking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Ranking tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ranking")
	}
	// roster hanya boleh dibangun dari ranking yang sudah dibekukan
	if !ranking.ScholarshipRankingsIsFinalized {
		return helper.JsonError(c, fiber.StatusConflict, "Ranking belum difinalisasi — finalisasi dulu sebelum membuat roster")
	}

	ent := rosterModel.PaymentRosterModel{
		PaymentRostersRankingID: p.RankingID,
		PaymentRostersStatus:    rosterModel.RosterStatusDraft,
		PaymentRostersCreatedBy: &actor,
	}
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat roster")
	}
	return helper.JsonCreated(c, "Berhasil membuat roster pembayaran", dto.FromRosterModel(ent))
}

/* ============================================
   UPDATE STATUS
   PATCH /api/a/payment-rosters/:id/status
============================================ */

func (ctl *PaymentRosterController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var p dto.UpdatePaymentRosterStatusRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var ent rosterModel.PaymentRosterModel
	if err := ctl.DB.
		Where("payment_rosters_id = ?", id).
		First(&ent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Roster tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil roster")
	}

	// roster yang sudah dibayar tidak boleh mundur status
	if ent.PaymentRostersStatus == rosterModel.RosterStatusPaid && p.Status != rosterModel.RosterStatusPaid {
		return helper.JsonError(c, fiber.StatusConflict, "Roster sudah dibayar — status tidak bisa diubah")
	}

	if err := ctl.DB.Model(&ent).
		Update("payment_rosters_status", p.Status).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status roster")
	}
	ent.PaymentRostersStatus = p.Status
	return helper.JsonUpdated(c, "Berhasil memperbarui status roster", dto.FromRosterModel(ent))
}

/* ============================================
   LIST PER RANKING
   GET /api/a/payment-rosters?ranking_id=
============================================ */

func (ctl *PaymentRosterController) ListByRanking(c *fiber.Ctx) error {
	rankingID, err := uuid.Parse(c.Query("ranking_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ranking_id tidak valid")
	}

	var rosters []rosterModel.PaymentRosterModel
	if err := ctl.DB.
		Where("payment_rosters_ranking_id = ?", rankingID).
		Order("payment_rosters_created_at DESC").
		Find(&rosters).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil roster")
	}

	out := make([]dto.PaymentRosterResponse, 0, len(rosters))
	for _, r := range rosters {
		out = append(out, dto.FromRosterModel(r))
	}
	return helper.JsonOK(c, "Daftar roster", out)
}
