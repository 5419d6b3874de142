// file: internals/features/scholarships/rosters/dto/payment_roster_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	rosterModel "beasiswaku_backend/internals/features/scholarships/rosters/model"
)

type CreatePaymentRosterRequest struct {
	RankingID uuid.UUID `json:"ranking_id" validate:"required"`
}

type UpdatePaymentRosterStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft submitted approved paid failed"`
}

type PaymentRosterResponse struct {
	ID        uuid.UUID `json:"id"`
	RankingID uuid.UUID `json:"ranking_id"`
	Status    string    `json:"status"`
	Locks     bool      `json:"locks"` // true = ranking di bawahnya tidak boleh diredistribusi
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromRosterModel(m rosterModel.PaymentRosterModel) PaymentRosterResponse {
	return PaymentRosterResponse{
		ID:        m.PaymentRostersID,
		RankingID: m.PaymentRostersRankingID,
		Status:    m.PaymentRostersStatus,
		Locks:     rosterModel.RosterStatusLocks(m.PaymentRostersStatus),
		CreatedAt: m.PaymentRostersCreatedAt,
		UpdatedAt: m.PaymentRostersUpdatedAt,
	}
}
