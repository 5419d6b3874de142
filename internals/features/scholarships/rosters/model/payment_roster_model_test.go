// file: internals/features/scholarships/rosters/model/payment_roster_model_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRosterStatusLocks(t *testing.T) {
	// hanya draft/failed (dan roster tanpa status) yang tidak mengunci ranking
	assert.False(t, RosterStatusLocks(RosterStatusDraft))
	assert.False(t, RosterStatusLocks(RosterStatusFailed))
	assert.False(t, RosterStatusLocks(""))

	assert.True(t, RosterStatusLocks(RosterStatusSubmitted))
	assert.True(t, RosterStatusLocks(RosterStatusApproved))
	assert.True(t, RosterStatusLocks(RosterStatusPaid))
}

func TestAnyLocks(t *testing.T) {
	assert.False(t, AnyLocks(nil))
	assert.False(t, AnyLocks([]PaymentRosterModel{
		{PaymentRostersStatus: RosterStatusDraft},
		{PaymentRostersStatus: RosterStatusFailed},
	}))

	// satu roster paid cukup untuk mengunci ranking-nya
	assert.True(t, AnyLocks([]PaymentRosterModel{
		{PaymentRostersStatus: RosterStatusDraft},
		{PaymentRostersStatus: RosterStatusPaid},
	}))
}
