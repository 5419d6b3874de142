// file: internals/features/scholarships/scholarship_configs/controller/scholarship_config_controller.go
package controller

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
	dto "beasiswaku_backend/internals/features/scholarships/scholarship_configs/dto"
	configModel "beasiswaku_backend/internals/features/scholarships/scholarship_configs/model"
	configService "beasiswaku_backend/internals/features/scholarships/scholarship_configs/service"
	helper "beasiswaku_backend/internals/helpers"
)

type ScholarshipConfigController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Quota     configService.QuotaMatrixService
}

func NewScholarshipConfigController(db *gorm.DB, v *validator.Validate) *ScholarshipConfigController {
	if v == nil {
		v = validator.New()
	}
	return &ScholarshipConfigController{
		DB:        db,
		Validator: v,
		Quota:     configService.NewQuotaMatrixService(),
	}
}

/* ============================================
   UPSERT (admin only)
   POST /api/a/scholarship-configs
============================================ */

func (ctl *ScholarshipConfigController) Upsert(c *fiber.Ctx) error {
	var p dto.UpsertScholarshipConfigRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	quotasJSON, err := json.Marshal(p.Quotas)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format kuota tidak valid")
	}

	hasCollegeQuota := true
	if p.HasCollegeQuota != nil {
		hasCollegeQuota = *p.HasCollegeQuota
	}

	var cfg configModel.ScholarshipConfigModel
	existing, findErr := ctl.Quota.FindConfig(ctl.DB, p.ScholarshipTypeID, p.AcademicYear, p.Semester)
	switch {
	case findErr == nil:
		cfg = *existing
		updates := map[string]any{
			"scholarship_configs_quotas":            datatypes.JSON(quotasJSON),
			"scholarship_configs_total_quota":       p.TotalQuota,
			"scholarship_configs_has_college_quota": hasCollegeQuota,
			"scholarship_configs_sub_type_priority": pq.StringArray(p.SubTypePriority),
		}
		if err := ctl.DB.Model(&cfg).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui konfigurasi")
		}
		if err := ctl.DB.First(&cfg, "scholarship_configs_id = ?", cfg.ScholarshipConfigsID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal refresh konfigurasi")
		}
		return helper.JsonUpdated(c, "Berhasil memperbarui konfigurasi beasiswa", dto.FromConfigModel(cfg))

	case isNotFound(findErr):
		cfg = configModel.ScholarshipConfigModel{
			ScholarshipConfigsScholarshipTypeID: p.ScholarshipTypeID,
			ScholarshipConfigsAcademicYear:      p.AcademicYear,
			ScholarshipConfigsSemester:          p.Semester,
			ScholarshipConfigsQuotas:            datatypes.JSON(quotasJSON),
			ScholarshipConfigsTotalQuota:        p.TotalQuota,
			ScholarshipConfigsHasCollegeQuota:   hasCollegeQuota,
			ScholarshipConfigsSubTypePriority:   p.SubTypePriority,
		}
		if err := ctl.DB.Create(&cfg).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat konfigurasi")
		}
		return helper.JsonCreated(c, "Berhasil membuat konfigurasi beasiswa", dto.FromConfigModel(cfg))

	default:
		if fe, ok := findErr.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa konfigurasi")
	}
}

func isNotFound(err error) bool {
	fe, ok := err.(*fiber.Error)
	return ok && fe.Code == fiber.StatusNotFound
}

/* ============================================
   GET BY PERIOD
   GET /api/a/scholarship-configs?scholarship_type_id=&academic_year=&semester=
============================================ */

func (ctl *ScholarshipConfigController) GetByPeriod(c *fiber.Ctx) error {
	typeID, year, semester, err := periodFromQuery(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	cfg, err := ctl.Quota.FindConfig(ctl.DB, typeID, year, semester)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca konfigurasi")
	}
	return helper.JsonOK(c, "Konfigurasi beasiswa", dto.FromConfigModel(*cfg))
}

/* ============================================
   QUOTA STATUS (reporter, read-only)
   GET /api/a/scholarship-configs/quota-status
============================================ */

func (ctl *ScholarshipConfigController) QuotaStatus(c *fiber.Ctx) error {
	typeID, year, semester, err := periodFromQuery(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	matrix, err := ctl.Quota.Resolve(ctl.DB, typeID, year, semester)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca konfigurasi")
	}

	norm := configService.NormalizeSemester(semester)
	allocated, err := ctl.allocatedPerCell(typeID, year, norm, matrix)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung alokasi")
	}

	resp := dto.QuotaStatusResponse{
		ScholarshipTypeID: typeID,
		AcademicYear:      year,
		Semester:          norm,
		Cells:             []dto.QuotaStatusCellDTO{},
	}
	for _, subType := range matrix.OrderSubTypes(subTypeKeys(matrix)) {
		for college, quota := range matrix.Cells[subType] {
			used := allocated[subType][college]
			remaining := quota - used
			if remaining < 0 {
				remaining = 0
			}
			resp.Cells = append(resp.Cells, dto.QuotaStatusCellDTO{
				SubType:   subType,
				College:   college,
				Quota:     quota,
				Allocated: used,
				Remaining: remaining,
			})
		}
	}
	return helper.JsonOK(c, "Status kuota", resp)
}

// allocatedPerCell menghitung primary yang terpakai dari ranking terpilih
// per sub-type (finalized diutamakan, kalau tidak ada pakai yang terbaru).
func (ctl *ScholarshipConfigController) allocatedPerCell(
	typeID uuid.UUID, year, norm string, matrix *configService.QuotaMatrix,
) (map[string]map[string]int, error) {
	var rankings []rankModel.ScholarshipRankingModel
	if err := ctl.DB.
		Where("scholarship_rankings_scholarship_type_id = ?", typeID).
		Where("scholarship_rankings_academic_year = ?", year).
		Where("scholarship_rankings_semester = ?", norm).
		Order("scholarship_rankings_created_at ASC").
		Find(&rankings).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil ranking")
	}

	// satu ranking representatif per sub_type_code
	chosen := map[string]rankModel.ScholarshipRankingModel{}
	for _, r := range rankings {
		cur, ok := chosen[r.ScholarshipRankingsSubTypeCode]
		if !ok || (!cur.ScholarshipRankingsIsFinalized && r.ScholarshipRankingsIsFinalized) ||
			(cur.ScholarshipRankingsIsFinalized == r.ScholarshipRankingsIsFinalized &&
				r.ScholarshipRankingsCreatedAt.After(cur.ScholarshipRankingsCreatedAt)) {
			chosen[r.ScholarshipRankingsSubTypeCode] = r
		}
	}
	if len(chosen) == 0 {
		return map[string]map[string]int{}, nil
	}

	ids := make([]uuid.UUID, 0, len(chosen))
	for _, r := range chosen {
		ids = append(ids, r.ScholarshipRankingsID)
	}

	var items []rankModel.ScholarshipRankingItemModel
	if err := ctl.DB.
		Where("scholarship_ranking_items_ranking_id IN ?", ids).
		Where("scholarship_ranking_items_is_allocated = TRUE").
		Find(&items).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil item teralokasi")
	}
	if len(items) == 0 {
		return map[string]map[string]int{}, nil
	}

	appIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		appIDs = append(appIDs, it.ScholarshipRankingItemsApplicationID)
	}
	var apps []appModel.ScholarshipApplicationModel
	if err := ctl.DB.Unscoped().
		Where("scholarship_applications_id IN ?", appIDs).
		Find(&apps).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil aplikasi")
	}
	collegeByApp := make(map[uuid.UUID]string, len(apps))
	for _, a := range apps {
		collegeByApp[a.ScholarshipApplicationsID] = a.ScholarshipApplicationsCollegeCode
	}

	allocated := map[string]map[string]int{}
	for _, it := range items {
		if it.ScholarshipRankingItemsAllocatedSubType == nil {
			continue
		}
		subType := *it.ScholarshipRankingItemsAllocatedSubType
		college := matrix.CellKey(collegeByApp[it.ScholarshipRankingItemsApplicationID])
		if allocated[subType] == nil {
			allocated[subType] = map[string]int{}
		}
		allocated[subType][college]++
	}
	return allocated, nil
}

func subTypeKeys(matrix *configService.QuotaMatrix) []string {
	keys := make([]string, 0, len(matrix.Cells))
	for k := range matrix.Cells {
		keys = append(keys, k)
	}
	return keys
}

func periodFromQuery(c *fiber.Ctx) (uuid.UUID, string, *string, error) {
	typeID, err := uuid.Parse(c.Query("scholarship_type_id"))
	if err != nil {
		return uuid.Nil, "", nil, fiber.NewError(fiber.StatusBadRequest, "scholarship_type_id tidak valid")
	}
	year := c.Query("academic_year")
	if year == "" {
		return uuid.Nil, "", nil, fiber.NewError(fiber.StatusBadRequest, "academic_year wajib diisi")
	}
	var semester *string
	if v := c.Query("semester"); v != "" {
		semester = &v
	}
	return typeID, year, semester, nil
}
