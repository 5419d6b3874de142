// file: internals/features/scholarships/scholarship_configs/service/quota_matrix_service.go
package service

import (
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	configModel "beasiswaku_backend/internals/features/scholarships/scholarship_configs/model"
)

// SemesterYearly dipakai saat semester null/"" supaya ranking tahunan
// tidak bentrok dengan ranking semester bertanggal.
const SemesterYearly = "yearly"

// NormalizeSemester menstandarkan nilai semester untuk tuple identitas ranking.
func NormalizeSemester(semester *string) string {
	if semester == nil {
		return SemesterYearly
	}
	s := strings.ToLower(strings.TrimSpace(*semester))
	if s == "" {
		return SemesterYearly
	}
	return s
}

// QuotaMatrix adalah snapshot kuota per (sub_type, college) untuk satu periode.
// Selalu dibaca ulang per run — tidak pernah di-cache lintas request.
type QuotaMatrix struct {
	Cells           map[string]map[string]int
	SubTypePriority []string
	TotalQuota      *int
	HasCollegeQuota bool
}

// Capacity mengembalikan kuota cell beserta flag apakah cell-nya memang ada.
// Saat has_college_quota=false, seluruh fakultas digabung ke key "all".
func (m *QuotaMatrix) Capacity(subType, college string) (int, bool) {
	colleges, ok := m.Cells[subType]
	if !ok {
		return 0, false
	}
	q, ok := colleges[m.CellKey(college)]
	return q, ok
}

// CellKey memetakan kode fakultas ke key cell efektif.
func (m *QuotaMatrix) CellKey(college string) string {
	if m.HasCollegeQuota {
		return college
	}
	return "all"
}

// OrderSubTypes mengurutkan sub-type kandidat sesuai prioritas konfigurasi.
// Sub-type yang tidak terdaftar di prioritas diproses setelahnya, urut kode
// supaya pass tetap deterministik.
func (m *QuotaMatrix) OrderSubTypes(subTypes []string) []string {
	rank := make(map[string]int, len(m.SubTypePriority))
	for i, st := range m.SubTypePriority {
		rank[st] = i
	}
	out := append([]string(nil), subTypes...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iOK := rank[out[i]]
		rj, jOK := rank[out[j]]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// ParseQuotaCells mem-parse JSONB kuota. Nilai cell non-numerik didegradasi
// ke kapasitas 0 (fail-open): dicatat di log, tidak menggagalkan run.
func ParseQuotaCells(raw datatypes.JSON) map[string]map[string]int {
	cells := map[string]map[string]int{}
	if len(raw) == 0 {
		return cells
	}

	var parsed map[string]map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("[QuotaMatrix] WARN quotas jsonb tidak bisa diparse, dianggap kosong: %v", err)
		return cells
	}

	for subType, colleges := range parsed {
		row := map[string]int{}
		for college, v := range colleges {
			row[college] = coerceQuota(subType, college, v)
		}
		cells[subType] = row
	}
	return cells
}

func coerceQuota(subType, college string, v any) int {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return 0
		}
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil && n >= 0 {
			return n
		}
	}
	log.Printf("[QuotaMatrix] WARN cell (%s,%s) bernilai non-numerik %v, kapasitas dianggap 0", subType, college, v)
	return 0
}

// QuotaMatrixService me-resolve konfigurasi kuota untuk satu periode.
type QuotaMatrixService interface {
	Resolve(tx *gorm.DB, scholarshipTypeID uuid.UUID, academicYear string, semester *string) (*QuotaMatrix, error)
	FindConfig(tx *gorm.DB, scholarshipTypeID uuid.UUID, academicYear string, semester *string) (*configModel.ScholarshipConfigModel, error)
}

type quotaMatrixSvc struct{}

func NewQuotaMatrixService() QuotaMatrixService {
	return &quotaMatrixSvc{}
}

func (s *quotaMatrixSvc) FindConfig(tx *gorm.DB, scholarshipTypeID uuid.UUID, academicYear string, semester *string) (*configModel.ScholarshipConfigModel, error) {
	norm := NormalizeSemester(semester)

	var cfg configModel.ScholarshipConfigModel
	err := tx.
		Where("scholarship_configs_scholarship_type_id = ?", scholarshipTypeID).
		Where("scholarship_configs_academic_year = ?", academicYear).
		Where("(scholarship_configs_semester IS NULL AND ? = ?) OR LOWER(scholarship_configs_semester) = ?",
			norm, SemesterYearly, norm).
		First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Konfigurasi beasiswa tidak ditemukan untuk periode ini")
		}
		log.Printf("[QuotaMatrix] ERROR FindConfig type=%s year=%s err=%v", scholarshipTypeID, academicYear, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca konfigurasi beasiswa")
	}
	return &cfg, nil
}

func (s *quotaMatrixSvc) Resolve(tx *gorm.DB, scholarshipTypeID uuid.UUID, academicYear string, semester *string) (*QuotaMatrix, error) {
	cfg, err := s.FindConfig(tx, scholarshipTypeID, academicYear, semester)
	if err != nil {
		return nil, err
	}
	return &QuotaMatrix{
		Cells:           ParseQuotaCells(cfg.ScholarshipConfigsQuotas),
		SubTypePriority: cfg.ScholarshipConfigsSubTypePriority,
		TotalQuota:      cfg.ScholarshipConfigsTotalQuota,
		HasCollegeQuota: cfg.ScholarshipConfigsHasCollegeQuota,
	}, nil
}
