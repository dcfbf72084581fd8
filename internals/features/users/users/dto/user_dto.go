package dto

import (
	"time"

	authModel "copo_backend/internals/features/users/auth/model"
	helper "copo_backend/internals/helpers"
)

type AccountResponse struct {
	ID                   uint      `json:"id"`
	UserName             string    `json:"user_name"`
	Email                string    `json:"email"`
	Role                 string    `json:"role"`
	IsActive             bool      `json:"is_active"`
	MustResetCredentials bool      `json:"must_reset_credentials"`
	FacultyID            *uint     `json:"faculty_id"`
	FacultyName          *string   `json:"faculty_name"`
	CreatedAt            time.Time `json:"created_at"`
}

// UpdateAccountRequest is what an admin may change on an account.
type UpdateAccountRequest struct {
	IsActive             helper.PatchField[bool]   `json:"is_active"`
	Role                 helper.PatchField[string] `json:"role"`
	MustResetCredentials helper.PatchField[bool]   `json:"must_reset_credentials"`
}

func (r UpdateAccountRequest) Apply(u *authModel.UserModel, validRole func(string) bool) error {
	if r.IsActive.Set() {
		u.IsActive = *r.IsActive.Value
	}
	if r.MustResetCredentials.Set() {
		u.MustResetCredentials = *r.MustResetCredentials.Value
	}
	if r.Role.Present {
		if !r.Role.Set() || !validRole(*r.Role.Value) {
			return helper.NewFieldError("role", "Must be one of: admin teacher.")
		}
		u.Role = *r.Role.Value
	}
	return nil
}
