package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

const (
	ErrOnlyAdminsCanAccess = "Only admins may access %s."
	ErrOnlyStaffCanAccess  = "Only admins or teachers may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(r string) bool {
	for _, v := range AllRoles {
		if v == r {
			return true
		}
	}
	return false
}
