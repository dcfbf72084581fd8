package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	coRoute "copo_backend/internals/features/outcomes/course_outcomes/route"
	poRoute "copo_backend/internals/features/outcomes/program_outcomes/route"
	psoRoute "copo_backend/internals/features/outcomes/program_specific_outcomes/route"
)

func OutcomesRoutes(api fiber.Router, db *gorm.DB) {
	coRoute.CourseOutcomeRoutes(api, db)
	poRoute.ProgramOutcomeRoutes(api, db)
	psoRoute.PSORoutes(api, db)
}
