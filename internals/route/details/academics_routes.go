package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchRoute "copo_backend/internals/features/academics/batches/route"
	courseRoute "copo_backend/internals/features/academics/courses/route"
	departmentRoute "copo_backend/internals/features/academics/departments/route"
	levelRoute "copo_backend/internals/features/academics/levels/route"
	programmeRoute "copo_backend/internals/features/academics/programmes/route"
)

func AcademicsRoutes(api fiber.Router, db *gorm.DB) {
	departmentRoute.DepartmentRoutes(api, db)
	levelRoute.LevelRoutes(api, db)
	programmeRoute.ProgrammeRoutes(api, db)
	courseRoute.CourseRoutes(api, db)
	batchRoute.BatchRoutes(api, db)
}
