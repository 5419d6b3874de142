// file: internals/features/scholarships/rankings/model/ranking_item_model.go
package model

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RankingItemStatusRanked    = "ranked"
	RankingItemStatusAllocated = "allocated"
	RankingItemStatusRejected  = "rejected"
)

// Alasan alokasi/penolakan yang ditulis engine distribusi.
const (
	AllocationReasonMatrix             = "matrix_allocation"
	AllocationReasonQuotaExhausted     = "quota_exhausted"
	AllocationReasonNoMatchingCell     = "no_matching_cell"
	AllocationReasonReviewRejected     = "review_rejected"
	AllocationReasonApplicationDeleted = "application_deleted"
)

// BackupAllocation adalah satu posisi waiting-list pada cell (sub_type, college).
type BackupAllocation struct {
	SubType        string `json:"sub_type"`
	College        string `json:"college"`
	BackupPosition int    `json:"backup_position"`
}

// ScholarshipRankingItemModel merepresentasikan tabel `scholarship_ranking_items`.
// rank_position padat 1..N dalam satu ranking. Field alokasi hanya ditulis oleh
// engine distribusi; posisi hanya diubah oleh mutator.
type ScholarshipRankingItemModel struct {
	ScholarshipRankingItemsID            uuid.UUID `json:"scholarship_ranking_items_id" gorm:"column:scholarship_ranking_items_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ScholarshipRankingItemsRankingID     uuid.UUID `json:"scholarship_ranking_items_ranking_id" gorm:"column:scholarship_ranking_items_ranking_id;type:uuid;not null;index"`
	ScholarshipRankingItemsApplicationID uuid.UUID `json:"scholarship_ranking_items_application_id" gorm:"column:scholarship_ranking_items_application_id;type:uuid;not null"`

	ScholarshipRankingItemsRankPosition int    `json:"scholarship_ranking_items_rank_position" gorm:"column:scholarship_ranking_items_rank_position;not null"`
	ScholarshipRankingItemsStatus       string `json:"scholarship_ranking_items_status" gorm:"column:scholarship_ranking_items_status;type:varchar(16);not null;default:'ranked'"`

	ScholarshipRankingItemsIsAllocated      bool    `json:"scholarship_ranking_items_is_allocated" gorm:"column:scholarship_ranking_items_is_allocated;not null;default:false"`
	ScholarshipRankingItemsAllocatedSubType *string `json:"scholarship_ranking_items_allocated_sub_type,omitempty" gorm:"column:scholarship_ranking_items_allocated_sub_type;type:varchar(32)"`
	ScholarshipRankingItemsAllocationReason *string `json:"scholarship_ranking_items_allocation_reason,omitempty" gorm:"column:scholarship_ranking_items_allocation_reason;type:varchar(64)"`

	ScholarshipRankingItemsBackupPosition    *int           `json:"scholarship_ranking_items_backup_position,omitempty" gorm:"column:scholarship_ranking_items_backup_position"`
	ScholarshipRankingItemsBackupAllocations datatypes.JSON `json:"scholarship_ranking_items_backup_allocations" gorm:"column:scholarship_ranking_items_backup_allocations;type:jsonb;not null;default:'[]'"`

	ScholarshipRankingItemsCreatedAt time.Time `json:"scholarship_ranking_items_created_at" gorm:"column:scholarship_ranking_items_created_at;autoCreateTime"`
	ScholarshipRankingItemsUpdatedAt time.Time `json:"scholarship_ranking_items_updated_at" gorm:"column:scholarship_ranking_items_updated_at;autoUpdateTime"`
}

func (ScholarshipRankingItemModel) TableName() string { return "scholarship_ranking_items" }

// Backups mengurai kolom JSONB backup_allocations.
func (m *ScholarshipRankingItemModel) Backups() []BackupAllocation {
	if len(m.ScholarshipRankingItemsBackupAllocations) == 0 {
		return nil
	}
	var out []BackupAllocation
	if err := json.Unmarshal(m.ScholarshipRankingItemsBackupAllocations, &out); err != nil {
		log.Printf("[RankingItem] WARN backup_allocations tidak bisa diparse item=%s err=%v",
			m.ScholarshipRankingItemsID, err)
		return nil
	}
	return out
}

// MarshalBackups menyiapkan kolom JSONB dari daftar backup (list kosong = '[]').
func MarshalBackups(backups []BackupAllocation) datatypes.JSON {
	if backups == nil {
		backups = []BackupAllocation{}
	}
	b, err := json.Marshal(backups)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}
