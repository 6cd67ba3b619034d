package constants

import "fmt"

// Roles globales del sistema (valor exacto del claim `role` en el JWT).
const (
	RoleAdmin       = "ADMIN"
	RoleSchoolAdmin = "SCHOOL_ADMIN"
	RoleInstructor  = "INSTRUCTOR"
	RoleStudent     = "STUDENT"
)

// Template de mensajes de error por rol
const (
	ErrOnlyAdminsCanAccess = "Solo un administrador global puede acceder a %s."
	ErrOnlyStaffCanAccess  = "Solo el staff de la escuela puede acceder a %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleSchoolAdmin,
		RoleInstructor,
		RoleStudent,
	}

	StaffRoles = []string{
		RoleAdmin,
		RoleSchoolAdmin,
		RoleInstructor,
	}

	SchoolAdminAndAbove = []string{
		RoleAdmin,
		RoleSchoolAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
