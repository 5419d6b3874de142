// file: internals/features/scholarships/rankings/controller/ranking_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	dto "beasiswaku_backend/internals/features/scholarships/rankings/dto"
	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
	rankService "beasiswaku_backend/internals/features/scholarships/rankings/service"
	helper "beasiswaku_backend/internals/helpers"
	helperAuth "beasiswaku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type RankingController struct {
	DB        *gorm.DB
	Validator *validator.Validate

	Builder        rankService.RankingBuilderService
	Finalizer      rankService.FinalizeService
	Distribution   rankService.DistributionService
	Redistribution rankService.RedistributionService
}

func NewRankingController(db *gorm.DB, v *validator.Validate) *RankingController {
	if v == nil {
		v = validator.New()
	}
	distribution := rankService.NewDistributionService(nil)
	return &RankingController{
		DB:             db,
		Validator:      v,
		Builder:        rankService.NewRankingBuilderService(nil),
		Finalizer:      rankService.NewFinalizeService(),
		Distribution:   distribution,
		Redistribution: rankService.NewRedistributionService(distribution),
	}
}

func httpErr(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

func parseUUIDParam(c *fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	return id, nil
}

/* ============================================
   CREATE
   POST /api/a/rankings
============================================ */

func (ctl *RankingController) Create(c *fiber.Ctx) error {
	var p dto.CreateRankingRequest
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err)
	}

	actor, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, err)
	}

	ranking, created, err := ctl.Builder.CreateRanking(ctl.DB, rankService.CreateRankingParams{
		ScholarshipTypeID: p.ScholarshipTypeID,
		SubTypeCode:       p.SubTypeCode,
		AcademicYear:      p.AcademicYear,
		Semester:          p.Semester,
		ForceNew:          p.ForceNew,
		CollegeScope:      helperAuth.GetCollegeScopeFromToken(c),
		CreatedBy:         &actor,
	})
	if err != nil {
		return httpErr(c, err)
	}

	total, err := ctl.countItems(ranking.ScholarshipRankingsID)
	if err != nil {
		return httpErr(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Berhasil membuat ranking", dto.FromRankingModel(*ranking, total))
	}
	return helper.JsonOK(c, "Ranking untuk tuple ini sudah ada", dto.FromRankingModel(*ranking, total))
}

/* ============================================
   LIST + DETAIL
   GET /api/a/rankings
   GET /api/a/rankings/:id
============================================ */

func (ctl *RankingController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&rankModel.ScholarshipRankingModel{})
	if v := c.Query("scholarship_type_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "scholarship_type_id tidak valid")
		}
		q = q.Where("scholarship_rankings_scholarship_type_id = ?", id)
	}
	if v := c.Query("academic_year"); v != "" {
		q = q.Where("scholarship_rankings_academic_year = ?", v)
	}
	if v := c.Query("sub_type_code"); v != "" {
		q = q.Where("scholarship_rankings_sub_type_code = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung ranking")
	}

	var rankings []rankModel.ScholarshipRankingModel
	if err := q.
		Order("scholarship_rankings_created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&rankings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar ranking")
	}

	out := make([]dto.RankingSummaryDTO, 0, len(rankings))
	for _, r := range rankings {
		cnt, err := ctl.countItems(r.ScholarshipRankingsID)
		if err != nil {
			return httpErr(c, err)
		}
		out = append(out, dto.FromRankingModel(r, cnt))
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar ranking", out, &pagination)
}

func (ctl *RankingController) Detail(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, err)
	}

	var ranking rankModel.ScholarshipRankingModel
	if err := ctl.DB.
		Where("scholarship_rankings_id = ?", id).
		First(&ranking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Ranking tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ranking")
	}

	var items []rankModel.ScholarshipRankingItemModel
	if err := ctl.DB.
		Where("scholarship_ranking_items_ranking_id = ?", id).
		Order("scholarship_ranking_items_rank_position ASC").
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil item ranking")
	}

	detail := dto.RankingDetailDTO{
		RankingSummaryDTO: dto.FromRankingModel(ranking, len(items)),
		Items:             dto.FromRankingItemModels(items),
	}
	return helper.JsonOK(c, "Detail ranking", detail)
}

/* ============================================
   REORDER (mutator)
   PATCH /api/a/rankings/:id/order
============================================ */

func (ctl *RankingController) UpdateOrder(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, err)
	}

	var p dto.UpdateRankingOrderRequest
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err)
	}

	entries := make([]rankService.OrderEntry, 0, len(p.Items))
	for _, e := range p.Items {
		entries = append(entries, rankService.OrderEntry{ItemID: e.ItemID, Position: e.Position})
	}

	var detail dto.RankingDetailDTO
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE pada ranking menserialisasi reorder yang datang bersamaan
		var ranking rankModel.ScholarshipRankingModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("scholarship_rankings_id = ?", id).
			First(&ranking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Ranking tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil ranking")
		}

		if ranking.ScholarshipRankingsIsFinalized {
			return fiber.NewError(fiber.StatusConflict, "Ranking sudah difinalisasi — tidak bisa diubah urutannya")
		}

		var items []rankModel.ScholarshipRankingItemModel
		if err := tx.
			Where("scholarship_ranking_items_ranking_id = ?", id).
			Order("scholarship_ranking_items_rank_position ASC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil item ranking")
		}

		reordered, err := rankService.ApplyNewOrder(items, entries)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, it := range reordered {
			if err := tx.Model(&rankModel.ScholarshipRankingItemModel{}).
				Where("scholarship_ranking_items_id = ?", it.ScholarshipRankingItemsID).
				Updates(map[string]any{
					"scholarship_ranking_items_rank_position": it.ScholarshipRankingItemsRankPosition,
					"scholarship_ranking_items_updated_at":    now,
				}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan posisi baru")
			}
			// propagasi posisi ke aplikasi untuk konsumen lintas subsistem
			if err := tx.Model(&appModel.ScholarshipApplicationModel{}).
				Where("scholarship_applications_id = ?", it.ScholarshipRankingItemsApplicationID).
				Update("scholarship_applications_rank_position", it.ScholarshipRankingItemsRankPosition).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal propagasi posisi ke aplikasi")
			}
		}

		detail = dto.RankingDetailDTO{
			RankingSummaryDTO: dto.FromRankingModel(ranking, len(reordered)),
			Items:             dto.FromRankingItemModels(reordered),
		}
		return nil
	})
	if err != nil {
		return httpErr(c, err)
	}

	return helper.JsonUpdated(c, "Berhasil mengubah urutan ranking", detail)
}

/* ============================================
   FINALIZE / UNFINALIZE / DELETE
============================================ */

func (ctl *RankingController) Finalize(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, err)
	}
	actor, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, err)
	}

	ranking, err := ctl.Finalizer.Finalize(ctl.DB, id, actor)
	if err != nil {
		return httpErr(c, err)
	}
	total, err := ctl.countItems(id)
	if err != nil {
		return httpErr(c, err)
	}
	return helper.JsonUpdated(c, "Berhasil memfinalisasi ranking", dto.FromRankingModel(*ranking, total))
}

func (ctl *RankingController) Unfinalize(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, err)
	}

	ranking, err := ctl.Finalizer.Unfinalize(ctl.DB, id)
	if err != nil {
		return httpErr(c, err)
	}
	total, err := ctl.countItems(id)
	if err != nil {
		return httpErr(c, err)
	}
	return helper.JsonUpdated(c, "Berhasil melepas finalisasi ranking", dto.FromRankingModel(*ranking, total))
}

func (ctl *RankingController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, err)
	}
	actor, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, err)
	}

	if err := ctl.Finalizer.Delete(ctl.DB, id, &actor); err != nil {
		return httpErr(c, err)
	}
	return helper.JsonDeleted(c, "Berhasil menghapus ranking", fiber.Map{"ranking_id": id})
}

/* ============================================
   DISTRIBUTE
   POST /api/a/rankings/:id/distribute
============================================ */

func (ctl *RankingController) Distribute(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, err)
	}

	var p dto.DistributeRequest
	// body opsional: tanpa body = re-run biasa
	_ = c.BodyParser(&p)

	actor, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, err)
	}

	summary, err := ctl.Distribution.Execute(ctl.DB, id, &actor, p.Exclusive)
	if err != nil {
		return httpErr(c, err)
	}
	return helper.JsonOK(c, "Distribusi selesai", summary)
}

/* ============================================
   MANUAL REDISTRIBUTE
   POST /api/a/rankings/redistribute/:application_id
============================================ */

func (ctl *RankingController) Redistribute(c *fiber.Ctx) error {
	appID, err := parseUUIDParam(c, "application_id")
	if err != nil {
		return httpErr(c, err)
	}

	actor, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, err)
	}

	summary, err := ctl.Redistribution.RedistributeForApplication(ctl.DB, appID, &actor)
	if err != nil {
		return httpErr(c, err)
	}
	return helper.JsonOK(c, "Redistribusi selesai", summary)
}

func (ctl *RankingController) countItems(rankingID uuid.UUID) (int, error) {
	var cnt int64
	if err := ctl.DB.Model(&rankModel.ScholarshipRankingItemModel{}).
		Where("scholarship_ranking_items_ranking_id = ?", rankingID).
		Count(&cnt).Error; err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung item ranking")
	}
	return int(cnt), nil
}
