// file: internals/features/scholarships/rosters/model/payment_roster_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status roster pembayaran. Selain draft/failed berarti roster sudah
// "terkunci": ranking di bawahnya tidak boleh diredistribusi lagi.
const (
	RosterStatusDraft     = "draft"
	RosterStatusSubmitted = "submitted"
	RosterStatusApproved  = "approved"
	RosterStatusPaid      = "paid"
	RosterStatusFailed    = "failed"
)

// RosterStatusLocks menentukan apakah sebuah status roster mengunci ranking.
func RosterStatusLocks(status string) bool {
	switch status {
	case RosterStatusDraft, RosterStatusFailed:
		return false
	default:
		return status != ""
	}
}

// AnyLocks: true bila salah satu roster berstatus mengunci ranking-nya.
func AnyLocks(rosters []PaymentRosterModel) bool {
	for _, r := range rosters {
		if RosterStatusLocks(r.PaymentRostersStatus) {
			return true
		}
	}
	return false
}

// PaymentRosterModel merepresentasikan tabel `payment_rosters`.
// Di subsistem ini roster hanya sinyal kunci; pembuatan daftar bayar
// sesungguhnya terjadi di proses hilir.
type PaymentRosterModel struct {
	PaymentRostersID        uuid.UUID `json:"payment_rosters_id" gorm:"column:payment_rosters_id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentRostersRankingID uuid.UUID `json:"payment_rosters_ranking_id" gorm:"column:payment_rosters_ranking_id;type:uuid;not null;index"`

	PaymentRostersStatus string `json:"payment_rosters_status" gorm:"column:payment_rosters_status;type:varchar(16);not null;default:'draft'"`

	PaymentRostersCreatedBy *uuid.UUID `json:"payment_rosters_created_by,omitempty" gorm:"column:payment_rosters_created_by;type:uuid"`

	PaymentRostersCreatedAt time.Time      `json:"payment_rosters_created_at" gorm:"column:payment_rosters_created_at;autoCreateTime"`
	PaymentRostersUpdatedAt time.Time      `json:"payment_rosters_updated_at" gorm:"column:payment_rosters_updated_at;autoUpdateTime"`
	PaymentRostersDeletedAt gorm.DeletedAt `json:"payment_rosters_deleted_at,omitempty" gorm:"column:payment_rosters_deleted_at;index"`
}

func (PaymentRosterModel) TableName() string { return "payment_rosters" }
