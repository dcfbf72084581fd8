package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	batchModel "copo_backend/internals/features/academics/batches/model"
	courseModel "copo_backend/internals/features/academics/courses/model"
	departmentModel "copo_backend/internals/features/academics/departments/model"
	levelModel "copo_backend/internals/features/academics/levels/model"
	programmeModel "copo_backend/internals/features/academics/programmes/model"
	assessmentModel "copo_backend/internals/features/exams/assessments/model"
	internalExamModel "copo_backend/internals/features/exams/internal_exams/model"
	markModel "copo_backend/internals/features/exams/marks/model"
	questionModel "copo_backend/internals/features/exams/question_bank/model"
	coModel "copo_backend/internals/features/outcomes/course_outcomes/model"
	poModel "copo_backend/internals/features/outcomes/program_outcomes/model"
	psoModel "copo_backend/internals/features/outcomes/program_specific_outcomes/model"
	facultyModel "copo_backend/internals/features/people/faculty/model"
	studentModel "copo_backend/internals/features/people/students/model"
	authModel "copo_backend/internals/features/users/auth/model"

	"copo_backend/internals/constants"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded goose migrations (Postgres).
func Migrate(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return MigrateSQL(sqlDB, log)
}

func MigrateSQL(sqlDB *sql.DB, log *zap.Logger) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

// AutoMigrate builds the same schema from the gorm models. Used by tests on SQLite.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&departmentModel.DepartmentModel{},
		&levelModel.LevelModel{},
		&programmeModel.ProgrammeModel{},
		&courseModel.CourseModel{},
		&facultyModel.FacultyModel{},
		&authModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},
		&batchModel.BatchModel{},
		&studentModel.StudentModel{},
		&coModel.CourseOutcomeModel{},
		&poModel.ProgramOutcomeModel{},
		&psoModel.ProgramSpecificOutcomeModel{},
		&internalExamModel.InternalExamModel{},
		&internalExamModel.ExamSectionModel{},
		&internalExamModel.ExamQuestionModel{},
		&questionModel.QuestionModel{},
	); err != nil {
		return err
	}
	for _, k := range constants.AssessmentKinds {
		if err := db.Table(k.ExamTable).AutoMigrate(&assessmentModel.AssessmentModel{}); err != nil {
			return err
		}
		if err := db.Exec(fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_batch ON %s (batch_id)", k.ExamTable, k.ExamTable)).Error; err != nil {
			return err
		}
	}
	for _, k := range constants.AllExamKinds {
		if err := db.Table(k.MarkTable).AutoMigrate(&markModel.MarkModel{}); err != nil {
			return err
		}
		if err := db.Exec(fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS uq_%s_student_exam ON %s (student_id, exam_id)", k.MarkTable, k.MarkTable)).Error; err != nil {
			return err
		}
	}
	return nil
}
