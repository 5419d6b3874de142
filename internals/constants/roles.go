package constants

// Role pengguna pada token (dikelola subsistem auth eksternal)
const (
	RoleAdmin    = "admin"    // pengelola beasiswa pusat
	RoleReviewer = "reviewer" // reviewer per fakultas (dibatasi college_scope)
)

var AdminAndAbove = []string{RoleAdmin}
var ReviewerAndAbove = []string{RoleAdmin, RoleReviewer}

func RoleErrorAdmin(aksi string) string {
	return "Hanya admin yang boleh " + aksi
}

func RoleErrorReviewer(aksi string) string {
	return "Hanya admin/reviewer yang boleh " + aksi
}
