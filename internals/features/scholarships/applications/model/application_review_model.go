// file: internals/features/scholarships/applications/model/application_review_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Rekomendasi review. ReviewUnreviewed adalah varian placeholder eksplisit
// untuk aplikasi yang belum punya review — dipakai builder supaya sorting
// tidak pernah jatuh di data kosong.
const (
	ReviewRecommended = "recommended"
	ReviewUnderReview = "under_review"
	ReviewApproved    = "approved"
	ReviewRejected    = "rejected"
	ReviewUnreviewed  = "unreviewed"
)

// ApplicationReviewModel merepresentasikan tabel `application_reviews`
// (satu review terminal per aplikasi, feed dari subsistem kelayakan).
type ApplicationReviewModel struct {
	ApplicationReviewsID            uuid.UUID `json:"application_reviews_id" gorm:"column:application_reviews_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ApplicationReviewsApplicationID uuid.UUID `json:"application_reviews_application_id" gorm:"column:application_reviews_application_id;type:uuid;not null;uniqueIndex"`

	ApplicationReviewsRecommendation string `json:"application_reviews_recommendation" gorm:"column:application_reviews_recommendation;type:varchar(24);not null"`

	// Peringkat hasil review; 1 = terkuat. NULL = belum diperingkat (urut paling akhir).
	ApplicationReviewsFinalRank *int `json:"application_reviews_final_rank,omitempty" gorm:"column:application_reviews_final_rank"`

	ApplicationReviewsApprovedSubTypes pq.StringArray `json:"application_reviews_approved_sub_types" gorm:"column:application_reviews_approved_sub_types;type:text[]"`

	ApplicationReviewsReviewedBy *uuid.UUID `json:"application_reviews_reviewed_by,omitempty" gorm:"column:application_reviews_reviewed_by;type:uuid"`
	ApplicationReviewsReviewedAt *time.Time `json:"application_reviews_reviewed_at,omitempty" gorm:"column:application_reviews_reviewed_at"`

	ApplicationReviewsCreatedAt time.Time `json:"application_reviews_created_at" gorm:"column:application_reviews_created_at;autoCreateTime"`
	ApplicationReviewsUpdatedAt time.Time `json:"application_reviews_updated_at" gorm:"column:application_reviews_updated_at;autoUpdateTime"`
}

func (ApplicationReviewModel) TableName() string { return "application_reviews" }

// PlaceholderReview membuat review "unreviewed" sintetis untuk aplikasi
// yang belum direview (tidak pernah dipersist).
func PlaceholderReview(applicationID uuid.UUID) ApplicationReviewModel {
	return ApplicationReviewModel{
		ApplicationReviewsApplicationID:  applicationID,
		ApplicationReviewsRecommendation: ReviewUnreviewed,
	}
}
