// file: internals/features/scholarships/applications/dto/application_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	appModel "beasiswaku_backend/internals/features/scholarships/applications/model"
	rankService "beasiswaku_backend/internals/features/scholarships/rankings/service"
)

// =======================
// Request DTO
// =======================

// CreateApplicationRequest: ingest snapshot aplikasi dari subsistem pendaftaran.
type CreateApplicationRequest struct {
	StudentID         uuid.UUID `json:"student_id" validate:"required"`
	ScholarshipTypeID uuid.UUID `json:"scholarship_type_id" validate:"required"`
	AcademicYear      string    `json:"academic_year" validate:"required,min=4,max=16"`
	Semester          *string   `json:"semester,omitempty" validate:"omitempty,max=16"`
	CollegeCode       string    `json:"college_code" validate:"required,max=32"`
	SubTypeCodes      []string  `json:"sub_type_codes" validate:"required,min=1,dive,min=1"`
	IsRenewal         bool      `json:"is_renewal"`
	SubmittedAt       time.Time `json:"submitted_at" validate:"required"`
}

// ConcludeReviewRequest: feed kesimpulan review {application_id, recommendation, rank}.
type ConcludeReviewRequest struct {
	ApplicationID    uuid.UUID `json:"application_id" validate:"required"`
	Recommendation   string    `json:"recommendation" validate:"required,oneof=recommended under_review approved rejected"`
	FinalRank        *int      `json:"final_rank,omitempty" validate:"omitempty,min=1"`
	ApprovedSubTypes []string  `json:"approved_sub_types,omitempty"`
}

// =======================
// Response DTO
// =======================

type ApplicationResponse struct {
	ID                uuid.UUID `json:"id"`
	StudentID         uuid.UUID `json:"student_id"`
	ScholarshipTypeID uuid.UUID `json:"scholarship_type_id"`
	AcademicYear      string    `json:"academic_year"`
	Semester          *string   `json:"semester,omitempty"`
	CollegeCode       string    `json:"college_code"`
	SubTypeCodes      []string  `json:"sub_type_codes"`
	Status            string    `json:"status"`
	IsRenewal         bool      `json:"is_renewal"`
	SubmittedAt       time.Time `json:"submitted_at"`
	RankPosition      *int      `json:"rank_position,omitempty"`
}

func FromApplicationModel(m appModel.ScholarshipApplicationModel) ApplicationResponse {
	return ApplicationResponse{
		ID:                m.ScholarshipApplicationsID,
		StudentID:         m.ScholarshipApplicationsStudentID,
		ScholarshipTypeID: m.ScholarshipApplicationsScholarshipTypeID,
		AcademicYear:      m.ScholarshipApplicationsAcademicYear,
		Semester:          m.ScholarshipApplicationsSemester,
		CollegeCode:       m.ScholarshipApplicationsCollegeCode,
		SubTypeCodes:      m.ScholarshipApplicationsSubTypeCodes,
		Status:            m.ScholarshipApplicationsStatus,
		IsRenewal:         m.ScholarshipApplicationsIsRenewal,
		SubmittedAt:       m.ScholarshipApplicationsSubmittedAt,
		RankPosition:      m.ScholarshipApplicationsRankPosition,
	}
}

// ConcludeReviewResponse: hasil review + ringkasan redistribusi otomatis.
type ConcludeReviewResponse struct {
	Application       ApplicationResponse                `json:"application"`
	AutoRedistributed bool                               `json:"auto_redistributed"`
	Redistribution    *rankService.RedistributionSummary `json:"redistribution,omitempty"`
}
