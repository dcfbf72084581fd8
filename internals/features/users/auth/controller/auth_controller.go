package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	facultyModel "copo_backend/internals/features/people/faculty/model"
	authDTO "copo_backend/internals/features/users/auth/dto"
	authModel "copo_backend/internals/features/users/auth/model"
	authService "copo_backend/internals/features/users/auth/service"
	helper "copo_backend/internals/helpers"
)

type AuthController struct {
	DB             *gorm.DB
	Validate       *validator.Validate
	Tokens         authService.TokenIssuer
	Google         authService.GoogleVerifier
	GoogleClientID string
	Log            *zap.Logger
}

func NewAuthController(db *gorm.DB, tokens authService.TokenIssuer, google authService.GoogleVerifier, googleClientID string, log *zap.Logger) *AuthController {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthController{
		DB:             db,
		Validate:       helper.NewValidator(),
		Tokens:         tokens,
		Google:         google,
		GoogleClientID: googleClientID,
		Log:            log,
	}
}

func clientMeta(c *fiber.Ctx) authService.ClientMeta {
	return authService.ClientMeta{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

// authError maps service sentinels onto status codes.
func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, authService.ErrBadCredentials),
		errors.Is(err, authService.ErrInvalidToken),
		errors.Is(err, authService.ErrRefreshRevoked),
		errors.Is(err, authService.ErrGoogleToken):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, authService.ErrInactiveAccount):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, authService.ErrAlreadyReset):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, authService.ErrUserNameTaken):
		return helper.JsonValidationError(c, map[string][]string{"username": {err.Error()}})
	}
	return helper.FromError(c, err)
}

/* =========================================================
   LOGIN / REFRESH / LOGOUT
   ========================================================= */

// POST /api/auth/token
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Login() == "" {
		return helper.JsonValidationError(c, map[string][]string{"username": {"This field is required."}})
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	user, err := authService.Authenticate(h.DB, req.Login(), req.Password)
	if err != nil {
		h.Log.Info("login rejected", zap.String("identifier", req.Login()), zap.Error(err))
		return authError(c, err)
	}
	pair, err := h.Tokens.IssuePair(h.DB, *user, clientMeta(c))
	if err != nil {
		h.Log.Error("issue tokens", zap.Uint("user_id", user.ID), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return helper.JsonOK(c, "Login successful", authDTO.NewTokenResponse(pair, *user))
}

// POST /api/auth/token/refresh
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	pair, user, err := h.Tokens.Rotate(h.DB, strings.TrimSpace(req.Refresh), clientMeta(c))
	if err != nil {
		return authError(c, err)
	}
	return helper.JsonOK(c, "Token refreshed", authDTO.NewTokenResponse(pair, *user))
}

// POST /api/auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	var req authDTO.LogoutRequest
	_ = c.BodyParser(&req)

	access := helper.GetRawAccessToken(c)
	if access == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Authentication required.")
	}
	if err := h.Tokens.Logout(h.DB, access, strings.TrimSpace(req.Refresh)); err != nil {
		h.Log.Error("logout", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to logout")
	}
	return helper.JsonOK(c, "Logged out successfully", nil)
}

/* =========================================================
   ACCOUNT
   ========================================================= */

// POST /api/auth/reset-credentials
func (h *AuthController) ResetCredentials(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req authDTO.ResetCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	user, err := authService.ResetCredentials(h.DB, uid, req.Username, req.Password)
	if err != nil {
		return authError(c, err)
	}
	return helper.JsonOK(c, "Credentials updated", authDTO.FromUserModel(*user))
}

// GET /api/auth/user-profile
func (h *AuthController) Me(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var u authModel.UserModel
	if err := h.DB.First(&u, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.FromError(c, err)
	}
	resp := authDTO.ProfileResponse{UserResponse: authDTO.FromUserModel(u)}
	if u.FacultyID != nil {
		var f facultyModel.FacultyModel
		if err := h.DB.First(&f, *u.FacultyID).Error; err == nil {
			resp.Faculty = &f
		}
	}
	return helper.JsonOK(c, "ok", resp)
}

// POST /api/auth/register (admin)
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	if req.Role == "" {
		req.Role = constants.RoleTeacher
	}
	email, err := authService.NormalizeEmail(req.Email)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"email": {"Enter a valid email address."}})
	}

	var user authModel.UserModel
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&authModel.UserModel{}).
			Where("user_name = ? OR LOWER(email) = ?", strings.TrimSpace(req.Username), email).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Username or email already registered")
		}
		if req.FacultyID != nil {
			var f int64
			if err := tx.Table("faculty").Where("id = ?", *req.FacultyID).Count(&f).Error; err != nil {
				return err
			}
			if f == 0 {
				return helper.UnknownReference("faculty_id", *req.FacultyID)
			}
		}
		hash, err := authService.HashPassword(req.Password)
		if err != nil {
			return err
		}
		user = authModel.UserModel{
			UserName:  strings.TrimSpace(req.Username),
			Email:     email,
			Password:  hash,
			Role:      req.Role,
			IsActive:  true,
			FacultyID: req.FacultyID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "User registered", authDTO.FromUserModel(user))
}

// POST /api/auth/login-google
func (h *AuthController) LoginGoogle(c *fiber.Ctx) error {
	if h.Google == nil || h.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusNotImplemented, "Google login is not configured")
	}
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	email, err := h.Google.VerifyEmail(req.IDToken, h.GoogleClientID)
	if err != nil {
		return authError(c, err)
	}
	user, err := authService.UserByGoogleEmail(h.DB, email)
	if err != nil {
		return authError(c, err)
	}
	pair, err := h.Tokens.IssuePair(h.DB, *user, clientMeta(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return helper.JsonOK(c, "Login successful", authDTO.NewTokenResponse(pair, *user))
}
