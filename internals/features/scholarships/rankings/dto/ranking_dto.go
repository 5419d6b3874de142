// file: internals/features/scholarships/rankings/dto/ranking_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
)

// =======================
// Request DTO
// =======================

type CreateRankingRequest struct {
	ScholarshipTypeID uuid.UUID `json:"scholarship_type_id" validate:"required"`
	SubTypeCode       string    `json:"sub_type_code" validate:"omitempty,max=32"`
	AcademicYear      string    `json:"academic_year" validate:"required,min=4,max=16"`
	Semester          *string   `json:"semester,omitempty" validate:"omitempty,max=16"`
	ForceNew          bool      `json:"force_new"`
}

type RankingOrderEntryDTO struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Position int       `json:"position" validate:"required,min=1"`
}

type UpdateRankingOrderRequest struct {
	Items []RankingOrderEntryDTO `json:"items" validate:"required,min=1,dive"`
}

type DistributeRequest struct {
	// exclusive=true → tolak bila distribusi sudah pernah dijalankan
	Exclusive bool `json:"exclusive"`
}

// =======================
// Response DTO
// =======================

type RankingSummaryDTO struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	ScholarshipTypeID    uuid.UUID  `json:"scholarship_type_id"`
	SubTypeCode          string     `json:"sub_type_code"`
	AcademicYear         string     `json:"academic_year"`
	Semester             string     `json:"semester"`
	TotalApplications    int        `json:"total_applications"`
	TotalQuota           *int       `json:"total_quota,omitempty"`
	AllocatedCount       int        `json:"allocated_count"`
	IsFinalized          bool       `json:"is_finalized"`
	RankingStatus        string     `json:"ranking_status"`
	DistributionExecuted bool       `json:"distribution_executed"`
	DistributionDate     *time.Time `json:"distribution_date,omitempty"`
	FinalizedAt          *time.Time `json:"finalized_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type RankingItemDTO struct {
	ID                uuid.UUID                    `json:"id"`
	ApplicationID     uuid.UUID                    `json:"application_id"`
	RankPosition      int                          `json:"rank_position"`
	Status            string                       `json:"status"`
	IsAllocated       bool                         `json:"is_allocated"`
	AllocatedSubType  *string                      `json:"allocated_sub_type,omitempty"`
	AllocationReason  *string                      `json:"allocation_reason,omitempty"`
	BackupPosition    *int                         `json:"backup_position,omitempty"`
	BackupAllocations []rankModel.BackupAllocation `json:"backup_allocations"`
}

type RankingDetailDTO struct {
	RankingSummaryDTO
	Items []RankingItemDTO `json:"items"`
}

// =======================
// Mappers
// =======================

func FromRankingModel(m rankModel.ScholarshipRankingModel, totalApplications int) RankingSummaryDTO {
	return RankingSummaryDTO{
		ID:                   m.ScholarshipRankingsID,
		Name:                 m.ScholarshipRankingsName,
		ScholarshipTypeID:    m.ScholarshipRankingsScholarshipTypeID,
		SubTypeCode:          m.ScholarshipRankingsSubTypeCode,
		AcademicYear:         m.ScholarshipRankingsAcademicYear,
		Semester:             m.ScholarshipRankingsSemester,
		TotalApplications:    totalApplications,
		TotalQuota:           m.ScholarshipRankingsTotalQuota,
		AllocatedCount:       m.ScholarshipRankingsAllocatedCount,
		IsFinalized:          m.ScholarshipRankingsIsFinalized,
		RankingStatus:        m.ScholarshipRankingsStatus,
		DistributionExecuted: m.ScholarshipRankingsDistributionExecuted,
		DistributionDate:     m.ScholarshipRankingsDistributionDate,
		FinalizedAt:          m.ScholarshipRankingsFinalizedAt,
		CreatedAt:            m.ScholarshipRankingsCreatedAt,
	}
}

func FromRankingItemModel(m rankModel.ScholarshipRankingItemModel) RankingItemDTO {
	backups := m.Backups()
	if backups == nil {
		backups = []rankModel.BackupAllocation{}
	}
	return RankingItemDTO{
		ID:                m.ScholarshipRankingItemsID,
		ApplicationID:     m.ScholarshipRankingItemsApplicationID,
		RankPosition:      m.ScholarshipRankingItemsRankPosition,
		Status:            m.ScholarshipRankingItemsStatus,
		IsAllocated:       m.ScholarshipRankingItemsIsAllocated,
		AllocatedSubType:  m.ScholarshipRankingItemsAllocatedSubType,
		AllocationReason:  m.ScholarshipRankingItemsAllocationReason,
		BackupPosition:    m.ScholarshipRankingItemsBackupPosition,
		BackupAllocations: backups,
	}
}

func FromRankingItemModels(models []rankModel.ScholarshipRankingItemModel) []RankingItemDTO {
	out := make([]RankingItemDTO, 0, len(models))
	for _, m := range models {
		out = append(out, FromRankingItemModel(m))
	}
	return out
}
