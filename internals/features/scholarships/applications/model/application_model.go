// file: internals/features/scholarships/applications/model/application_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Status aplikasi mengikuti hasil review terakhir (feed dari subsistem review).
const (
	ApplicationStatusRecommended = "recommended"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusApproved    = "approved"
	ApplicationStatusRejected    = "rejected"
)

// RankableStatuses: status aplikasi yang boleh masuk ke sebuah ranking.
var RankableStatuses = []string{
	ApplicationStatusRecommended,
	ApplicationStatusUnderReview,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
}

// ScholarshipApplicationModel merepresentasikan tabel `scholarship_applications`.
// Ini snapshot pendaftaran: kolom bebas (sub-type, fakultas) sudah dipetakan
// ke kolom bertipe di boundary ingest, bukan map bebas yang diparse ulang per run.
type ScholarshipApplicationModel struct {
	ScholarshipApplicationsID                uuid.UUID `json:"scholarship_applications_id" gorm:"column:scholarship_applications_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ScholarshipApplicationsStudentID         uuid.UUID `json:"scholarship_applications_student_id" gorm:"column:scholarship_applications_student_id;type:uuid;not null"`
	ScholarshipApplicationsScholarshipTypeID uuid.UUID `json:"scholarship_applications_scholarship_type_id" gorm:"column:scholarship_applications_scholarship_type_id;type:uuid;not null"`

	ScholarshipApplicationsAcademicYear string  `json:"scholarship_applications_academic_year" gorm:"column:scholarship_applications_academic_year;type:varchar(16);not null"`
	ScholarshipApplicationsSemester     *string `json:"scholarship_applications_semester,omitempty" gorm:"column:scholarship_applications_semester;type:varchar(16)"`

	ScholarshipApplicationsCollegeCode  string         `json:"scholarship_applications_college_code" gorm:"column:scholarship_applications_college_code;type:varchar(32);not null"`
	ScholarshipApplicationsSubTypeCodes pq.StringArray `json:"scholarship_applications_sub_type_codes" gorm:"column:scholarship_applications_sub_type_codes;type:text[]"`

	ScholarshipApplicationsStatus      string    `json:"scholarship_applications_status" gorm:"column:scholarship_applications_status;type:varchar(24);not null;default:'under_review'"`
	ScholarshipApplicationsIsRenewal   bool      `json:"scholarship_applications_is_renewal" gorm:"column:scholarship_applications_is_renewal;not null;default:false"`
	ScholarshipApplicationsSubmittedAt time.Time `json:"scholarship_applications_submitted_at" gorm:"column:scholarship_applications_submitted_at;not null"`

	// Denormalisasi posisi ranking untuk konsumen lintas subsistem (di-update oleh mutator ranking)
	ScholarshipApplicationsRankPosition *int `json:"scholarship_applications_rank_position,omitempty" gorm:"column:scholarship_applications_rank_position"`

	ScholarshipApplicationsCreatedAt time.Time      `json:"scholarship_applications_created_at" gorm:"column:scholarship_applications_created_at;autoCreateTime"`
	ScholarshipApplicationsUpdatedAt time.Time      `json:"scholarship_applications_updated_at" gorm:"column:scholarship_applications_updated_at;autoUpdateTime"`
	ScholarshipApplicationsDeletedAt gorm.DeletedAt `json:"scholarship_applications_deleted_at,omitempty" gorm:"column:scholarship_applications_deleted_at;index"`
}

func (ScholarshipApplicationModel) TableName() string { return "scholarship_applications" }
