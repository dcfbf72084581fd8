package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/features/imports/service"
	helper "copo_backend/internals/helpers"
	"copo_backend/internals/observability"
)

type ImportController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewImportController(db *gorm.DB, log *zap.Logger) *ImportController {
	return &ImportController{DB: db, Log: log}
}

// readUpload parses the multipart "file" straight from the request.
func readUpload(c *fiber.Ctx) (*service.Table, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, helper.MissingField("file")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Could not open upload: "+err.Error())
	}
	defer f.Close()
	return service.ReadTable(fh.Filename, f)
}

func (h *ImportController) tabular(c *fiber.Ctx, kind string, run func(*gorm.DB, *service.Table) (service.Summary, error)) error {
	t, err := readUpload(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var sum service.Summary
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var err error
		sum, err = run(tx, t)
		return err
	})
	if err != nil {
		h.Log.Warn("import failed", zap.String("kind", kind), zap.Error(err))
		return helper.FromError(c, err)
	}
	observability.ObserveImport(kind, "created", sum.Created)
	observability.ObserveImport(kind, "updated", sum.Updated)
	observability.ObserveImport(kind, "skipped", sum.Skipped)
	h.Log.Info("import finished", zap.String("kind", kind),
		zap.Int("created", sum.Created), zap.Int("updated", sum.Updated), zap.Int("skipped", sum.Skipped))
	return helper.JsonOK(c, "Import finished", sum)
}

// POST /api/students/upload
func (h *ImportController) Students(c *fiber.Ctx) error {
	return h.tabular(c, "students", service.ImportStudents)
}

// POST /api/courses/upload
func (h *ImportController) Courses(c *fiber.Ctx) error {
	return h.tabular(c, "courses", service.ImportCourses)
}

// POST /api/faculty/upload
func (h *ImportController) Faculty(c *fiber.Ctx) error {
	t, err := readUpload(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var sum service.FacultySummary
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var err error
		sum, err = service.ImportFaculty(tx, t, h.Log)
		return err
	})
	if err != nil {
		h.Log.Warn("faculty import failed", zap.Error(err))
		return helper.FromError(c, err)
	}
	observability.ObserveImport("faculty", "created", len(sum.Created))
	observability.ObserveImport("faculty", "skipped", len(sum.Skipped))
	return helper.JsonOK(c, "Import finished", sum)
}
