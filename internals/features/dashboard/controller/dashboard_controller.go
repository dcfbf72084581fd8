package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/dashboard/dto"
	helper "copo_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

const statsSQL = `SELECT
	(SELECT COUNT(*) FROM faculty)    AS faculty,
	(SELECT COUNT(*) FROM courses)    AS courses,
	(SELECT COUNT(*) FROM batches)    AS batches,
	(SELECT COUNT(*) FROM students)   AS students,
	(SELECT COUNT(*) FROM levels)     AS levels,
	(SELECT COUNT(*) FROM programmes) AS programmes`

// Stats returns exact row counts in one round trip.
func Stats(db *gorm.DB) (dto.DashboardStats, error) {
	var out dto.DashboardStats
	err := db.Raw(statsSQL).Scan(&out).Error
	return out, err
}

/* GET /api/dashboard-stats */
func (h *DashboardController) Get(c *fiber.Ctx) error {
	out, err := Stats(h.DB.WithContext(helper.ReqCtx(c)))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", out)
}
