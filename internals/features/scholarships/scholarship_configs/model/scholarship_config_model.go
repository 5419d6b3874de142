// file: internals/features/scholarships/scholarship_configs/model/scholarship_config_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScholarshipConfigModel merepresentasikan tabel `scholarship_configs`.
// Kuota disimpan sebagai JSONB {sub_type: {college: int}}; satu baris per
// (scholarship_type, tahun akademik, semester|null).
type ScholarshipConfigModel struct {
	ScholarshipConfigsID                uuid.UUID `json:"scholarship_configs_id" gorm:"column:scholarship_configs_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ScholarshipConfigsScholarshipTypeID uuid.UUID `json:"scholarship_configs_scholarship_type_id" gorm:"column:scholarship_configs_scholarship_type_id;type:uuid;not null"`

	ScholarshipConfigsAcademicYear string  `json:"scholarship_configs_academic_year" gorm:"column:scholarship_configs_academic_year;type:varchar(16);not null"`
	ScholarshipConfigsSemester     *string `json:"scholarship_configs_semester,omitempty" gorm:"column:scholarship_configs_semester;type:varchar(16)"`

	ScholarshipConfigsQuotas          datatypes.JSON `json:"scholarship_configs_quotas" gorm:"column:scholarship_configs_quotas;type:jsonb;not null;default:'{}'"`
	ScholarshipConfigsTotalQuota      *int           `json:"scholarship_configs_total_quota,omitempty" gorm:"column:scholarship_configs_total_quota"`
	ScholarshipConfigsHasCollegeQuota bool           `json:"scholarship_configs_has_college_quota" gorm:"column:scholarship_configs_has_college_quota;not null;default:true"`

	// Urutan prioritas sub-type saat engine distribusi berjalan (eksplisit, bukan hard-coded)
	ScholarshipConfigsSubTypePriority pq.StringArray `json:"scholarship_configs_sub_type_priority" gorm:"column:scholarship_configs_sub_type_priority;type:text[]"`

	ScholarshipConfigsCreatedAt time.Time      `json:"scholarship_configs_created_at" gorm:"column:scholarship_configs_created_at;autoCreateTime"`
	ScholarshipConfigsUpdatedAt time.Time      `json:"scholarship_configs_updated_at" gorm:"column:scholarship_configs_updated_at;autoUpdateTime"`
	ScholarshipConfigsDeletedAt gorm.DeletedAt `json:"scholarship_configs_deleted_at,omitempty" gorm:"column:scholarship_configs_deleted_at;index"`
}

func (ScholarshipConfigModel) TableName() string { return "scholarship_configs" }
