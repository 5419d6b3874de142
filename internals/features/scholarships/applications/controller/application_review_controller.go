// file: internals/features/scholarships/applications/controller/application_review_controller.go
package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dto "beasiswaku_backend/internals/features/scholarships/applications/dto"
	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	rankService "beasiswaku_backend/internals/features/scholarships/rankings/service"
	helper "beasiswaku_backend/internals/helpers"
	helperAuth "beasiswaku_backend/internals/helpers/auth"
)

type ApplicationReviewController struct {
	DB             *gorm.DB
	Validator      *validator.Validate
	Redistribution rankService.RedistributionService
}

func NewApplicationReviewController(db *gorm.DB, v *validator.Validate) *ApplicationReviewController {
	if v == nil {
		v = validator.New()
	}
	return &ApplicationReviewController{
		DB:             db,
		Validator:      v,
		Redistribution: rankService.NewRedistributionService(nil),
	}
}

/* ============================================
   INGEST SNAPSHOT APLIKASI
   POST /api/a/scholarship-applications
============================================ */

func (ctl *ApplicationReviewController) CreateApplication(c *fiber.Ctx) error {
	var p dto.CreateApplicationRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	ent := appModel.ScholarshipApplicationModel{
		ScholarshipApplicationsStudentID:         p.StudentID,
		ScholarshipApplicationsScholarshipTypeID: p.ScholarshipTypeID,
		ScholarshipApplicationsAcademicYear:      p.AcademicYear,
		ScholarshipApplicationsSemester:          p.Semester,
		ScholarshipApplicationsCollegeCode:       p.CollegeCode,
		ScholarshipApplicationsSubTypeCodes:      p.SubTypeCodes,
		ScholarshipApplicationsStatus:            appModel.ApplicationStatusUnderReview,
		ScholarshipApplicationsIsRenewal:         p.IsRenewal,
		ScholarshipApplicationsSubmittedAt:       p.SubmittedAt,
	}
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan aplikasi")
	}
	return helper.JsonCreated(c, "Berhasil menyimpan aplikasi", dto.FromApplicationModel(ent))
}

/* ============================================
   KESIMPULAN REVIEW → AUTO-REDISTRIBUSI
   POST /api/a/application-reviews
============================================ */

func (ctl *ApplicationReviewController) ConcludeReview(c *fiber.Ctx) error {
	var p dto.ConcludeReviewRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	reviewer, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
	}

	var app appModel.ScholarshipApplicationModel
	if err := ctl.DB.
		Where("scholarship_applications_id = ?", p.ApplicationID).
		First(&app).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil aplikasi")
	}

	// reviewer hanya boleh menyimpulkan aplikasi di fakultas scope-nya
	if err := helperAuth.EnsureCollegeScope(c, app.ScholarshipApplicationsCollegeCode); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusForbidden, "Aktor di luar scope fakultas ini")
	}

	now := time.Now()
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var review appModel.ApplicationReviewModel
		findErr := tx.
			Where("application_reviews_application_id = ?", p.ApplicationID).
			First(&review).Error

		switch findErr {
		case nil:
			if err := tx.Model(&review).Updates(map[string]any{
				"application_reviews_recommendation":     p.Recommendation,
				"application_reviews_final_rank":         p.FinalRank,
				"application_reviews_approved_sub_types": pq.StringArray(p.ApprovedSubTypes),
				"application_reviews_reviewed_by":        reviewer,
				"application_reviews_reviewed_at":        now,
			}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui review")
			}
		case gorm.ErrRecordNotFound:
			review = appModel.ApplicationReviewModel{
				ApplicationReviewsApplicationID:    p.ApplicationID,
				ApplicationReviewsRecommendation:   p.Recommendation,
				ApplicationReviewsFinalRank:        p.FinalRank,
				ApplicationReviewsApprovedSubTypes: p.ApprovedSubTypes,
				ApplicationReviewsReviewedBy:       &reviewer,
				ApplicationReviewsReviewedAt:       &now,
			}
			if err := tx.Create(&review).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan review")
			}
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa review")
		}

		// status aplikasi mengikuti rekomendasi terakhir
		if err := tx.Model(&appModel.ScholarshipApplicationModel{}).
			Where("scholarship_applications_id = ?", p.ApplicationID).
			Update("scholarship_applications_status", p.Recommendation).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui status aplikasi")
		}
		app.ScholarshipApplicationsStatus = p.Recommendation
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kesimpulan review")
	}

	// redistribusi otomatis: ranking yang roster-nya terkunci dilewati,
	// kegagalan redistribusi tidak membatalkan review yang sudah tersimpan
	resp := dto.ConcludeReviewResponse{Application: dto.FromApplicationModel(app)}
	if summary, rerr := ctl.Redistribution.RedistributeForApplication(ctl.DB, p.ApplicationID, &reviewer); rerr != nil {
		log.Printf("[ReviewConclusion] WARN redistribusi gagal app=%s err=%v", p.ApplicationID, rerr)
	} else {
		resp.AutoRedistributed = summary.SuccessfulCount > 0
		resp.Redistribution = summary
	}

	return helper.JsonOK(c, "Kesimpulan review tersimpan", resp)
}
