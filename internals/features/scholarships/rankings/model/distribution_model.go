// file: internals/features/scholarships/rankings/model/distribution_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScholarshipDistributionModel merepresentasikan tabel `scholarship_distributions`:
// snapshot append-only per run engine (jejak audit). Run ulang menambah baris
// baru, tidak pernah menghapus snapshot lama.
type ScholarshipDistributionModel struct {
	ScholarshipDistributionsID        uuid.UUID `json:"scholarship_distributions_id" gorm:"column:scholarship_distributions_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ScholarshipDistributionsRankingID uuid.UUID `json:"scholarship_distributions_ranking_id" gorm:"column:scholarship_distributions_ranking_id;type:uuid;not null;index"`

	ScholarshipDistributionsTotalAllocated int `json:"scholarship_distributions_total_allocated" gorm:"column:scholarship_distributions_total_allocated;not null;default:0"`
	ScholarshipDistributionsAdmittedCount  int `json:"scholarship_distributions_admitted_count" gorm:"column:scholarship_distributions_admitted_count;not null;default:0"`
	ScholarshipDistributionsBackupCount    int `json:"scholarship_distributions_backup_count" gorm:"column:scholarship_distributions_backup_count;not null;default:0"`
	ScholarshipDistributionsRejectedCount  int `json:"scholarship_distributions_rejected_count" gorm:"column:scholarship_distributions_rejected_count;not null;default:0"`

	// Breakdown per cell: {sub_type: {college: {quota, allocated, backups}}}
	ScholarshipDistributionsCellBreakdown datatypes.JSON `json:"scholarship_distributions_cell_breakdown" gorm:"column:scholarship_distributions_cell_breakdown;type:jsonb;not null;default:'{}'"`

	ScholarshipDistributionsExecutedBy *uuid.UUID `json:"scholarship_distributions_executed_by,omitempty" gorm:"column:scholarship_distributions_executed_by;type:uuid"`
	ScholarshipDistributionsCreatedAt  time.Time  `json:"scholarship_distributions_created_at" gorm:"column:scholarship_distributions_created_at;autoCreateTime"`
}

func (ScholarshipDistributionModel) TableName() string { return "scholarship_distributions" }
