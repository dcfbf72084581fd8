// Package cascade deletes a row together with everything it owns.
// Every function expects to run inside a transaction.
package cascade

import (
	"gorm.io/gorm"

	"copo_backend/internals/constants"
)

func pluck(tx *gorm.DB, table, where string, args ...any) ([]uint, error) {
	var ids []uint
	err := tx.Table(table).Where(where, args...).Pluck("id", &ids).Error
	return ids, err
}

func exec(tx *gorm.DB, sql string, args ...any) error {
	return tx.Exec(sql, args...).Error
}

// deleteRow removes the row itself and reports 404 through gorm.ErrRecordNotFound.
func deleteRow(tx *gorm.DB, table string, id uint) error {
	res := tx.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func each(ids []uint, fn func(uint) error) error {
	for _, id := range ids {
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

/* =========================================================
   Leaves
   ========================================================= */

func Assessment(tx *gorm.DB, kind constants.ExamKind, id uint) error {
	if err := exec(tx, "DELETE FROM "+kind.MarkTable+" WHERE exam_id = ?", id); err != nil {
		return err
	}
	return deleteRow(tx, kind.ExamTable, id)
}

func ExamSection(tx *gorm.DB, id uint) error {
	if err := exec(tx, "DELETE FROM exam_questions WHERE section_id = ?", id); err != nil {
		return err
	}
	return deleteRow(tx, "exam_sections", id)
}

func InternalExam(tx *gorm.DB, id uint) error {
	sections, err := pluck(tx, "exam_sections", "internal_exam_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(sections, func(sid uint) error { return ExamSection(tx, sid) }); err != nil {
		return err
	}
	if err := exec(tx, "DELETE FROM "+constants.InternalExam.MarkTable+" WHERE exam_id = ?", id); err != nil {
		return err
	}
	return deleteRow(tx, constants.InternalExam.ExamTable, id)
}

func Question(tx *gorm.DB, id uint) error {
	if err := exec(tx, "DELETE FROM exam_questions WHERE question_id = ?", id); err != nil {
		return err
	}
	return deleteRow(tx, "question_bank", id)
}

func CourseOutcome(tx *gorm.DB, id uint) error {
	qs, err := pluck(tx, "question_bank", "co_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(qs, func(q uint) error { return Question(tx, q) }); err != nil {
		return err
	}
	return deleteRow(tx, "course_outcomes", id)
}

func Student(tx *gorm.DB, id uint) error {
	for _, k := range constants.AllExamKinds {
		if err := exec(tx, "DELETE FROM "+k.MarkTable+" WHERE student_id = ?", id); err != nil {
			return err
		}
	}
	return deleteRow(tx, "students", id)
}

/* =========================================================
   Owners
   ========================================================= */

func Batch(tx *gorm.DB, id uint) error {
	for _, k := range constants.AssessmentKinds {
		exams, err := pluck(tx, k.ExamTable, "batch_id = ?", id)
		if err != nil {
			return err
		}
		kind := k
		if err := each(exams, func(e uint) error { return Assessment(tx, kind, e) }); err != nil {
			return err
		}
	}
	internals, err := pluck(tx, constants.InternalExam.ExamTable, "batch_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(internals, func(e uint) error { return InternalExam(tx, e) }); err != nil {
		return err
	}
	return deleteRow(tx, "batches", id)
}

func Course(tx *gorm.DB, id uint) error {
	batches, err := pluck(tx, "batches", "course_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(batches, func(b uint) error { return Batch(tx, b) }); err != nil {
		return err
	}
	cos, err := pluck(tx, "course_outcomes", "course_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(cos, func(co uint) error { return CourseOutcome(tx, co) }); err != nil {
		return err
	}
	// questions filed under this course against another course's CO
	qs, err := pluck(tx, "question_bank", "course_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(qs, func(q uint) error { return Question(tx, q) }); err != nil {
		return err
	}
	return deleteRow(tx, "courses", id)
}

// Faculty removes the faculty row, its batches and its login account.
func Faculty(tx *gorm.DB, id uint) error {
	batches, err := pluck(tx, "batches", "faculty_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(batches, func(b uint) error { return Batch(tx, b) }); err != nil {
		return err
	}
	if err := UsersOfFaculty(tx, id); err != nil {
		return err
	}
	return deleteRow(tx, "faculty", id)
}

// UsersOfFaculty drops the linked accounts and their refresh tokens.
func UsersOfFaculty(tx *gorm.DB, facultyID uint) error {
	users, err := pluck(tx, "users", "faculty_id = ?", facultyID)
	if err != nil || len(users) == 0 {
		return err
	}
	if err := exec(tx, "DELETE FROM refresh_tokens WHERE user_id IN ?", users); err != nil {
		return err
	}
	return exec(tx, "DELETE FROM users WHERE id IN ?", users)
}

func Programme(tx *gorm.DB, id uint) error {
	courses, err := pluck(tx, "courses", "programme_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(courses, func(c uint) error { return Course(tx, c) }); err != nil {
		return err
	}
	students, err := pluck(tx, "students", "programme_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(students, func(s uint) error { return Student(tx, s) }); err != nil {
		return err
	}
	if err := exec(tx, "DELETE FROM program_specific_outcomes WHERE programme_id = ?", id); err != nil {
		return err
	}
	return deleteRow(tx, "programmes", id)
}

func Level(tx *gorm.DB, id uint) error {
	programmes, err := pluck(tx, "programmes", "level_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(programmes, func(p uint) error { return Programme(tx, p) }); err != nil {
		return err
	}
	if err := exec(tx, "DELETE FROM program_outcomes WHERE level_id = ?", id); err != nil {
		return err
	}
	return deleteRow(tx, "levels", id)
}

func Department(tx *gorm.DB, id uint) error {
	programmes, err := pluck(tx, "programmes", "department_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(programmes, func(p uint) error { return Programme(tx, p) }); err != nil {
		return err
	}
	courses, err := pluck(tx, "courses", "department_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(courses, func(c uint) error { return Course(tx, c) }); err != nil {
		return err
	}
	faculty, err := pluck(tx, "faculty", "department_id = ?", id)
	if err != nil {
		return err
	}
	if err := each(faculty, func(f uint) error { return Faculty(tx, f) }); err != nil {
		return err
	}
	return deleteRow(tx, "departments", id)
}
