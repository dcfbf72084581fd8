// Package references resolves cross-entity references sent as an id or,
// for older clients, as a display name.
package references

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	batchModel "copo_backend/internals/features/academics/batches/model"
	courseModel "copo_backend/internals/features/academics/courses/model"
	departmentModel "copo_backend/internals/features/academics/departments/model"
	levelModel "copo_backend/internals/features/academics/levels/model"
	programmeModel "copo_backend/internals/features/academics/programmes/model"
	coModel "copo_backend/internals/features/outcomes/course_outcomes/model"
	facultyModel "copo_backend/internals/features/people/faculty/model"
	studentModel "copo_backend/internals/features/people/students/model"
	helper "copo_backend/internals/helpers"
)

// Ref is an id-or-name pair as it arrives in a payload.
type Ref struct {
	ID   *uint
	Name *string
}

func (r Ref) Empty() bool {
	return r.ID == nil && (r.Name == nil || strings.TrimSpace(*r.Name) == "")
}

func (r Ref) value() any {
	if r.ID != nil {
		return *r.ID
	}
	if r.Name != nil {
		return strings.TrimSpace(*r.Name)
	}
	return nil
}

// resolve looks the row up by id, else by nameCol. A miss is a FieldError on field.
func resolve(tx *gorm.DB, model any, nameCol string, r Ref, field string) (uint, error) {
	return lookup(tx, model, nameCol+" = ?", r, field)
}

// resolveFold is resolve with a case-insensitive match on nameCol.
func resolveFold(tx *gorm.DB, model any, nameCol string, r Ref, field string) (uint, error) {
	return lookup(tx, model, "UPPER("+nameCol+") = UPPER(?)", r, field)
}

func lookup(tx *gorm.DB, model any, nameWhere string, r Ref, field string) (uint, error) {
	if r.Empty() {
		return 0, helper.MissingField(field)
	}
	var id uint
	q := tx.Model(model).Select("id")
	if r.ID != nil {
		q = q.Where("id = ?", *r.ID)
	} else {
		q = q.Where(nameWhere, strings.TrimSpace(*r.Name))
	}
	if err := q.Limit(1).Scan(&id).Error; err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, helper.UnknownReference(field, r.value())
	}
	return id, nil
}

func Department(tx *gorm.DB, r Ref, field string) (uint, error) {
	return resolve(tx, &departmentModel.DepartmentModel{}, "name", r, field)
}

func Level(tx *gorm.DB, r Ref, field string) (uint, error) {
	return resolve(tx, &levelModel.LevelModel{}, "name", r, field)
}

func Programme(tx *gorm.DB, r Ref, field string) (uint, error) {
	return resolve(tx, &programmeModel.ProgrammeModel{}, "name", r, field)
}

// Course resolves by id or by course code.
func Course(tx *gorm.DB, r Ref, field string) (uint, error) {
	return resolve(tx, &courseModel.CourseModel{}, "code", r, field)
}

// Faculty resolves by id or by email.
func Faculty(tx *gorm.DB, r Ref, field string) (uint, error) {
	return resolve(tx, &facultyModel.FacultyModel{}, "email", r, field)
}

// Student resolves by id or by register number, ignoring case.
func Student(tx *gorm.DB, r Ref, field string) (uint, error) {
	return resolveFold(tx, &studentModel.StudentModel{}, "register_no", r, field)
}

// CourseOutcome resolves by id or by label.
func CourseOutcome(tx *gorm.DB, r Ref, field string) (uint, error) {
	return resolve(tx, &coModel.CourseOutcomeModel{}, "label", r, field)
}

func Batch(tx *gorm.DB, id *uint, field string) (uint, error) {
	return resolve(tx, &batchModel.BatchModel{}, "id", Ref{ID: id}, field)
}

// Exists reports whether a row with id exists in table.
func Exists(tx *gorm.DB, table string, id uint) (bool, error) {
	var n int64
	if err := tx.Table(table).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// LevelGetOrCreate is used by bulk import where an unknown level is created on the fly.
func LevelGetOrCreate(tx *gorm.DB, name string) (uint, error) {
	name = strings.TrimSpace(name)
	var lv levelModel.LevelModel
	err := tx.Where("name = ?", name).First(&lv).Error
	if err == nil {
		return lv.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	lv = levelModel.LevelModel{Name: name}
	if err := tx.Create(&lv).Error; err != nil {
		return 0, err
	}
	return lv.ID, nil
}

// Unique fails with a duplicate FieldError when a row other than exceptID holds value in col.
func Unique(tx *gorm.DB, model any, col string, value any, exceptID uint, entity, field string) error {
	return unique(tx, model, col+" = ?", value, exceptID, entity, field)
}

// UniqueFold is Unique with a case-insensitive comparison on a text column.
func UniqueFold(tx *gorm.DB, model any, col string, value string, exceptID uint, entity, field string) error {
	return unique(tx, model, "UPPER("+col+") = UPPER(?)", value, exceptID, entity, field)
}

func unique(tx *gorm.DB, model any, where string, value any, exceptID uint, entity, field string) error {
	var n int64
	q := tx.Model(model).Where(where, value)
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return helper.Duplicate(entity, field)
	}
	return nil
}

// FromPatch builds a Ref from the id/name keys of an update payload.
// ok is false when neither key was sent.
func FromPatch(id helper.PatchField[uint], name helper.PatchField[string]) (ref Ref, ok bool) {
	if !id.Present && !name.Present {
		return Ref{}, false
	}
	return Ref{ID: id.Value, Name: name.Value}, true
}
