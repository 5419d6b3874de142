// file: internals/features/scholarships/scholarship_configs/dto/scholarship_config_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	configModel "beasiswaku_backend/internals/features/scholarships/scholarship_configs/model"
	"beasiswaku_backend/internals/features/scholarships/scholarship_configs/service"
)

// =======================
// Request DTO
// =======================

type UpsertScholarshipConfigRequest struct {
	ScholarshipTypeID uuid.UUID                 `json:"scholarship_type_id" validate:"required"`
	AcademicYear      string                    `json:"academic_year" validate:"required,min=4,max=16"`
	Semester          *string                   `json:"semester,omitempty" validate:"omitempty,max=16"`
	Quotas            map[string]map[string]int `json:"quotas" validate:"required"`
	TotalQuota        *int                      `json:"total_quota,omitempty" validate:"omitempty,min=0"`
	HasCollegeQuota   *bool                     `json:"has_college_quota,omitempty"`
	SubTypePriority   []string                  `json:"sub_type_priority" validate:"required,min=1,dive,min=1"`
}

// =======================
// Response DTO
// =======================

type ScholarshipConfigResponse struct {
	ID                uuid.UUID                 `json:"id"`
	ScholarshipTypeID uuid.UUID                 `json:"scholarship_type_id"`
	AcademicYear      string                    `json:"academic_year"`
	Semester          *string                   `json:"semester,omitempty"`
	Quotas            map[string]map[string]int `json:"quotas"`
	TotalQuota        *int                      `json:"total_quota,omitempty"`
	HasCollegeQuota   bool                      `json:"has_college_quota"`
	SubTypePriority   []string                  `json:"sub_type_priority"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

func FromConfigModel(m configModel.ScholarshipConfigModel) ScholarshipConfigResponse {
	return ScholarshipConfigResponse{
		ID:                m.ScholarshipConfigsID,
		ScholarshipTypeID: m.ScholarshipConfigsScholarshipTypeID,
		AcademicYear:      m.ScholarshipConfigsAcademicYear,
		Semester:          m.ScholarshipConfigsSemester,
		Quotas:            service.ParseQuotaCells(m.ScholarshipConfigsQuotas),
		TotalQuota:        m.ScholarshipConfigsTotalQuota,
		HasCollegeQuota:   m.ScholarshipConfigsHasCollegeQuota,
		SubTypePriority:   m.ScholarshipConfigsSubTypePriority,
		UpdatedAt:         m.ScholarshipConfigsUpdatedAt,
	}
}

// QuotaStatusCellDTO: sisa kapasitas satu cell (sub_type, college).
type QuotaStatusCellDTO struct {
	SubType   string `json:"sub_type"`
	College   string `json:"college"`
	Quota     int    `json:"quota"`
	Allocated int    `json:"allocated"`
	Remaining int    `json:"remaining"`
}

type QuotaStatusResponse struct {
	ScholarshipTypeID uuid.UUID            `json:"scholarship_type_id"`
	AcademicYear      string               `json:"academic_year"`
	Semester          string               `json:"semester"`
	Cells             []QuotaStatusCellDTO `json:"cells"`
}
