package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	importRoute "copo_backend/internals/features/imports/route"
	facultyRoute "copo_backend/internals/features/people/faculty/route"
	studentRoute "copo_backend/internals/features/people/students/route"
)

// PeopleRoutes also carries the uploads, which sit under /students, /courses and /faculty.
func PeopleRoutes(api fiber.Router, db *gorm.DB, log *zap.Logger) {
	importRoute.ImportRoutes(api, db, log)
	facultyRoute.FacultyRoutes(api, db, log)
	studentRoute.StudentRoutes(api, db)
}
