// file: internals/features/scholarships/rankings/model/ranking_audit_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RankingAuditActionDelete = "delete"
)

// RankingAuditLogModel menyimpan snapshot pra-aksi (mis. sebelum delete)
// supaya ranking yang dihapus tetap bisa ditelusuri.
type RankingAuditLogModel struct {
	RankingAuditLogsID        uuid.UUID      `json:"ranking_audit_logs_id" gorm:"column:ranking_audit_logs_id;type:uuid;default:gen_random_uuid();primaryKey"`
	RankingAuditLogsRankingID uuid.UUID      `json:"ranking_audit_logs_ranking_id" gorm:"column:ranking_audit_logs_ranking_id;type:uuid;not null;index"`
	RankingAuditLogsAction    string         `json:"ranking_audit_logs_action" gorm:"column:ranking_audit_logs_action;type:varchar(24);not null"`
	RankingAuditLogsActorID   *uuid.UUID     `json:"ranking_audit_logs_actor_id,omitempty" gorm:"column:ranking_audit_logs_actor_id;type:uuid"`
	RankingAuditLogsSnapshot  datatypes.JSON `json:"ranking_audit_logs_snapshot" gorm:"column:ranking_audit_logs_snapshot;type:jsonb;not null;default:'{}'"`
	RankingAuditLogsCreatedAt time.Time      `json:"ranking_audit_logs_created_at" gorm:"column:ranking_audit_logs_created_at;autoCreateTime"`
}

func (RankingAuditLogModel) TableName() string { return "ranking_audit_logs" }
