// file: internals/helpers/auth/actor.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken mengambil user_id dari c.Locals("user_id").
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
}

// GetCollegeScopeFromToken mengambil batas fakultas reviewer.
// Kosong berarti aktor boleh melihat semua fakultas (admin pusat).
func GetCollegeScopeFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("college_scope").(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// EnsureCollegeScope menolak aktor yang mencoba mengakses fakultas di luar scope-nya.
func EnsureCollegeScope(c *fiber.Ctx, collegeCode string) error {
	scope := GetCollegeScopeFromToken(c)
	if scope == "" || collegeCode == "" || strings.EqualFold(scope, collegeCode) {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, "Aktor di luar scope fakultas ini")
}
