// file: internals/features/scholarships/rankings/service/ranking_order.go
package service

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	rankModel "beasiswaku_backend/internals/features/scholarships/rankings/model"
)

// OrderEntry: permintaan posisi baru untuk satu item.
type OrderEntry struct {
	ItemID   uuid.UUID
	Position int
}

// ApplyNewOrder menerapkan reorder manual di memori dan mengembalikan item
// dengan rank_position baru. Item yang tidak disebut mempertahankan urutan
// lamanya; hasil akhir selalu barisan padat 1..N tanpa duplikat.
// Payload tidak valid (kosong, posisi/item duplikat, item tak dikenal,
// posisi < 1) ditolak dengan 400.
func ApplyNewOrder(items []rankModel.ScholarshipRankingItemModel, entries []OrderEntry) ([]rankModel.ScholarshipRankingItemModel, error) {
	if len(entries) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Payload reorder kosong")
	}

	known := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		known[it.ScholarshipRankingItemsID] = true
	}

	requested := make(map[uuid.UUID]int, len(entries))
	seenPos := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.Position < 1 {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Posisi %d tidak valid (harus >= 1)", e.Position))
		}
		if !known[e.ItemID] {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Item "+e.ItemID.String()+" tidak ada di ranking ini")
		}
		if _, dup := requested[e.ItemID]; dup {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Item "+e.ItemID.String()+" disebut lebih dari sekali")
		}
		if seenPos[e.Position] {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Posisi %d duplikat", e.Position))
		}
		requested[e.ItemID] = e.Position
		seenPos[e.Position] = true
	}

	out := append([]rankModel.ScholarshipRankingItemModel(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iReq := effectivePosition(out[i], requested)
		pj, jReq := effectivePosition(out[j], requested)
		if pi != pj {
			return pi < pj
		}
		// posisi sama: item yang diminta eksplisit menang, sisanya urutan lama
		if iReq != jReq {
			return iReq
		}
		return out[i].ScholarshipRankingItemsRankPosition < out[j].ScholarshipRankingItemsRankPosition
	})

	// re-densify ke 1..N
	for i := range out {
		out[i].ScholarshipRankingItemsRankPosition = i + 1
	}
	return out, nil
}

func effectivePosition(it rankModel.ScholarshipRankingItemModel, requested map[uuid.UUID]int) (int, bool) {
	if p, ok := requested[it.ScholarshipRankingItemsID]; ok {
		return p, true
	}
	return it.ScholarshipRankingItemsRankPosition, false
}
