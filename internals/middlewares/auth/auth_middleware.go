package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authModel "copo_backend/internals/features/users/auth/model"
	authService "copo_backend/internals/features/users/auth/service"
	helper "copo_backend/internals/helpers"
)

type AuthJWTOpts struct {
	DB     *gorm.DB
	Tokens authService.TokenIssuer
	Log    *zap.Logger
	// SkipPaths are served without a token.
	SkipPaths []string
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authz == "" {
		return "", errors.New("Authentication credentials were not provided.")
	}
	fields := strings.Fields(authz)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Invalid token format.")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("Empty token.")
	}
	return tok, nil
}

// AuthJWT verifies the bearer access token, rejects blacklisted tokens and
// inactive accounts, then stores the claims in Locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	if o.DB == nil {
		panic("AuthJWT: DB is required")
	}
	log := o.Log
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(o.SkipPaths))
	for _, p := range o.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}

		raw, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		claims, err := o.Tokens.ParseAccess(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Given token not valid for any token type")
		}
		uid, err := claims.UserID()
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid or missing user ID")
		}

		black, err := authService.IsBlacklisted(o.DB, raw)
		if err != nil {
			log.Error("blacklist lookup", zap.Error(err))
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if black {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token is blacklisted")
		}

		var user authModel.UserModel
		if err := o.DB.Select("id", "role", "user_name", "is_active", "faculty_id").First(&user, uid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
			}
			log.Error("load user", zap.Uint("user_id", uid), zap.Error(err))
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.IsActive {
			return helper.JsonError(c, fiber.StatusForbidden, "This account has been deactivated.")
		}

		helper.SetRawAccessToken(c, raw)
		c.Locals(helper.LocUserID, user.ID)
		// role comes from the row so a demotion applies before the token expires
		c.Locals(helper.LocUserRole, user.Role)
		c.Locals(helper.LocUserName, user.UserName)
		if user.FacultyID != nil {
			c.Locals(helper.LocFacultyID, *user.FacultyID)
		}
		return c.Next()
	}
}
