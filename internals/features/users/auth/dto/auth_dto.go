package dto

import (
	"strings"
	"time"

	facultyModel "copo_backend/internals/features/people/faculty/model"
	authModel "copo_backend/internals/features/users/auth/model"
	authService "copo_backend/internals/features/users/auth/service"
)

// LoginRequest accepts username, email or a generic identifier.
type LoginRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Identifier string `json:"identifier"`
	Password   string `json:"password" validate:"required"`
}

func (r LoginRequest) Login() string {
	for _, s := range []string{r.Identifier, r.Username, r.Email} {
		if v := strings.TrimSpace(s); v != "" {
			return v
		}
	}
	return ""
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type ResetCredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=admin teacher"`
	FacultyID *uint  `json:"faculty_id"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UserResponse struct {
	ID                   uint   `json:"id"`
	UserName             string `json:"user_name"`
	Email                string `json:"email"`
	Role                 string `json:"role"`
	FacultyID            *uint  `json:"faculty_id"`
	MustResetCredentials bool   `json:"must_reset_credentials"`
}

func FromUserModel(u authModel.UserModel) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		UserName:             u.UserName,
		Email:                u.Email,
		Role:                 u.Role,
		FacultyID:            u.FacultyID,
		MustResetCredentials: u.MustResetCredentials,
	}
}

type ProfileResponse struct {
	UserResponse
	Faculty *facultyModel.FacultyModel `json:"faculty"`
}

// TokenResponse is the login/refresh body. is_first_login drives the reset-credentials screen.
type TokenResponse struct {
	Access           string       `json:"access"`
	Refresh          string       `json:"refresh"`
	AccessExpiresAt  time.Time    `json:"access_expires_at"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
	Role             string       `json:"role"`
	IsFirstLogin     bool         `json:"is_first_login"`
	User             UserResponse `json:"user"`
}

func NewTokenResponse(p authService.TokenPair, u authModel.UserModel) TokenResponse {
	return TokenResponse{
		Access:           p.Access,
		Refresh:          p.Refresh,
		AccessExpiresAt:  p.AccessExpiresAt,
		RefreshExpiresAt: p.RefreshExpiresAt,
		Role:             u.Role,
		IsFirstLogin:     u.MustResetCredentials,
		User:             FromUserModel(u),
	}
}
