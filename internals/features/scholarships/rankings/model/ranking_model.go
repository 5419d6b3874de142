// file: internals/features/scholarships/rankings/model/ranking_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RankingStatusDraft     = "draft"
	RankingStatusFinalized = "finalized"
)

// SubTypeDefault menandai ranking gabungan (semua sub-type sekaligus).
const SubTypeDefault = "default"

// ScholarshipRankingModel merepresentasikan tabel `scholarship_rankings`.
// Identitas: (scholarship_type, sub_type_code|"default", tahun, semester ternormalisasi).
// Invariant: maksimal satu ranking is_finalized=true per tuple identitas.
type ScholarshipRankingModel struct {
	ScholarshipRankingsID                uuid.UUID `json:"scholarship_rankings_id" gorm:"column:scholarship_rankings_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ScholarshipRankingsScholarshipTypeID uuid.UUID `json:"scholarship_rankings_scholarship_type_id" gorm:"column:scholarship_rankings_scholarship_type_id;type:uuid;not null"`

	ScholarshipRankingsSubTypeCode  string `json:"scholarship_rankings_sub_type_code" gorm:"column:scholarship_rankings_sub_type_code;type:varchar(32);not null;default:'default'"`
	ScholarshipRankingsAcademicYear string `json:"scholarship_rankings_academic_year" gorm:"column:scholarship_rankings_academic_year;type:varchar(16);not null"`
	// Semester selalu disimpan ternormalisasi ('yearly' saat null) supaya tuple tidak bentrok
	ScholarshipRankingsSemester string `json:"scholarship_rankings_semester" gorm:"column:scholarship_rankings_semester;type:varchar(16);not null;default:'yearly'"`

	ScholarshipRankingsName string `json:"scholarship_rankings_name" gorm:"column:scholarship_rankings_name;type:varchar(128);not null"`

	ScholarshipRankingsStatus      string     `json:"scholarship_rankings_status" gorm:"column:scholarship_rankings_status;type:varchar(16);not null;default:'draft'"`
	ScholarshipRankingsIsFinalized bool       `json:"scholarship_rankings_is_finalized" gorm:"column:scholarship_rankings_is_finalized;not null;default:false"`
	ScholarshipRankingsFinalizedAt *time.Time `json:"scholarship_rankings_finalized_at,omitempty" gorm:"column:scholarship_rankings_finalized_at"`
	ScholarshipRankingsFinalizedBy *uuid.UUID `json:"scholarship_rankings_finalized_by,omitempty" gorm:"column:scholarship_rankings_finalized_by;type:uuid"`

	ScholarshipRankingsTotalQuota     *int `json:"scholarship_rankings_total_quota,omitempty" gorm:"column:scholarship_rankings_total_quota"`
	ScholarshipRankingsAllocatedCount int  `json:"scholarship_rankings_allocated_count" gorm:"column:scholarship_rankings_allocated_count;not null;default:0"`

	ScholarshipRankingsDistributionExecuted bool       `json:"scholarship_rankings_distribution_executed" gorm:"column:scholarship_rankings_distribution_executed;not null;default:false"`
	ScholarshipRankingsDistributionDate     *time.Time `json:"scholarship_rankings_distribution_date,omitempty" gorm:"column:scholarship_rankings_distribution_date"`

	ScholarshipRankingsCreatedBy *uuid.UUID `json:"scholarship_rankings_created_by,omitempty" gorm:"column:scholarship_rankings_created_by;type:uuid"`

	ScholarshipRankingsCreatedAt time.Time      `json:"scholarship_rankings_created_at" gorm:"column:scholarship_rankings_created_at;autoCreateTime"`
	ScholarshipRankingsUpdatedAt time.Time      `json:"scholarship_rankings_updated_at" gorm:"column:scholarship_rankings_updated_at;autoUpdateTime"`
	ScholarshipRankingsDeletedAt gorm.DeletedAt `json:"scholarship_rankings_deleted_at,omitempty" gorm:"column:scholarship_rankings_deleted_at;index"`
}

func (ScholarshipRankingModel) TableName() string { return "scholarship_rankings" }
