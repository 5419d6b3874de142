// file: internals/features/scholarships/rankings/service/ranking_order_test.go
package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
)

func makeItems(n int) []rankModel.ScholarshipRankingItemModel {
	items := make([]rankModel.ScholarshipRankingItemModel, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, rankModel.ScholarshipRankingItemModel{
			ScholarshipRankingItemsID:           uuid.New(),
			ScholarshipRankingItemsRankPosition: i,
		})
	}
	return items
}

func positionsOf(items []rankModel.ScholarshipRankingItemModel) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ScholarshipRankingItemsRankPosition
	}
	return out
}

func TestApplyNewOrder_MoveLastToFront(t *testing.T) {
	items := makeItems(4)
	last := items[3].ScholarshipRankingItemsID

	out, err := ApplyNewOrder(items, []OrderEntry{{ItemID: last, Position: 1}})
	assert.NoError(t, err)

	assert.Equal(t, last, out[0].ScholarshipRankingItemsID)
	// sisanya mempertahankan urutan relatif lama
	assert.Equal(t, items[0].ScholarshipRankingItemsID, out[1].ScholarshipRankingItemsID)
	assert.Equal(t, items[1].ScholarshipRankingItemsID, out[2].ScholarshipRankingItemsID)
	assert.Equal(t, items[2].ScholarshipRankingItemsID, out[3].ScholarshipRankingItemsID)
	assert.Equal(t, []int{1, 2, 3, 4}, positionsOf(out))
}

func TestApplyNewOrder_FullPermutation(t *testing.T) {
	items := makeItems(3)
	out, err := ApplyNewOrder(items, []OrderEntry{
		{ItemID: items[0].ScholarshipRankingItemsID, Position: 3},
		{ItemID: items[1].ScholarshipRankingItemsID, Position: 1},
		{ItemID: items[2].ScholarshipRankingItemsID, Position: 2},
	})
	assert.NoError(t, err)

	assert.Equal(t, items[1].ScholarshipRankingItemsID, out[0].ScholarshipRankingItemsID)
	assert.Equal(t, items[2].ScholarshipRankingItemsID, out[1].ScholarshipRankingItemsID)
	assert.Equal(t, items[0].ScholarshipRankingItemsID, out[2].ScholarshipRankingItemsID)
	assert.Equal(t, []int{1, 2, 3}, positionsOf(out))
}

func TestApplyNewOrder_AlwaysDense(t *testing.T) {
	items := makeItems(3)
	// posisi diminta jauh di luar N: hasil tetap padat 1..N
	out, err := ApplyNewOrder(items, []OrderEntry{
		{ItemID: items[0].ScholarshipRankingItemsID, Position: 99},
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, positionsOf(out))
	assert.Equal(t, items[0].ScholarshipRankingItemsID, out[2].ScholarshipRankingItemsID)
}

func TestApplyNewOrder_InvalidPayloads(t *testing.T) {
	items := makeItems(2)
	a := items[0].ScholarshipRankingItemsID
	b := items[1].ScholarshipRankingItemsID

	cases := []struct {
		name    string
		entries []OrderEntry
	}{
		{"empty", nil},
		{"position below one", []OrderEntry{{ItemID: a, Position: 0}}},
		{"unknown item", []OrderEntry{{ItemID: uuid.New(), Position: 1}}},
		{"duplicate item", []OrderEntry{{ItemID: a, Position: 1}, {ItemID: a, Position: 2}}},
		{"duplicate position", []OrderEntry{{ItemID: a, Position: 1}, {ItemID: b, Position: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplyNewOrder(items, tc.entries)
			assert.Error(t, err)
			fe, ok := err.(*fiber.Error)
			assert.True(t, ok)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		})
	}
}
