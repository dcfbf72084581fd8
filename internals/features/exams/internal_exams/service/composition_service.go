package service

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"copo_backend/internals/features/exams/internal_exams/model"
	helper "copo_backend/internals/helpers"
)

// SyncResult reports what a sync changed.
type SyncResult struct {
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Current []uint `json:"question_ids"`
}

// NumberedQuestion is one question as placed in a section.
type NumberedQuestion struct {
	Number         string `json:"number"`
	ExamQuestionID uint   `json:"exam_question_id"`
	QuestionID     uint   `json:"question_id"`
	Text           string `json:"text"`
	Marks          int    `json:"marks"`
	COID           uint   `json:"co_id"`
	COLabel        string `json:"co_label"`
}

type SectionDetails struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	QuestionCount int                `json:"question_count"`
	AnswerCount   int                `json:"answer_count"`
	CeilingMark   int                `json:"ceiling_mark"`
	Description   *string            `json:"description"`
	Questions     []NumberedQuestion `json:"questions"`
}

// ExamDetails is an internal exam with its batch/course context and composed sections.
type ExamDetails struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Duration      int              `json:"duration"`
	MaxMarks      int              `json:"max_marks"`
	ExamDate      *time.Time       `json:"exam_date"`
	BatchID       uint             `json:"batch_id"`
	Year          int              `json:"year"`
	Part          string           `json:"part"`
	CourseID      *uint            `json:"course_id"`
	CourseCode    *string          `json:"course_code"`
	CourseTitle   *string          `json:"course_title"`
	ProgrammeName *string          `json:"programme_name"`
	FacultyName   *string          `json:"faculty_name"`
	Sections      []SectionDetails `json:"sections" gorm:"-"`
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// lockSection takes a row lock on the section so concurrent syncs of it serialize.
func lockSection(tx *gorm.DB, sectionID uint) error {
	var s model.ExamSectionModel
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&s, sectionID).Error
}

func sectionExists(db *gorm.DB, sectionID uint) error {
	var s model.ExamSectionModel
	return db.Select("id").First(&s, sectionID).Error
}

// verifyQuestions fails with a question_ids FieldError naming unknown ids.
func verifyQuestions(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	if err := tx.Table("question_bank").Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	have := make(map[uint]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return helper.NewFieldError("question_ids", fmt.Sprintf("Unknown question id(s): %v.", missing))
}

func currentIDs(tx *gorm.DB, sectionID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.ExamQuestionModel{}).Where("section_id = ?", sectionID).
		Order("id ASC").Pluck("question_id", &ids).Error
	return ids, err
}

func insert(tx *gorm.DB, sectionID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	rows := make([]model.ExamQuestionModel, 0, len(ids))
	for _, q := range ids {
		rows = append(rows, model.ExamQuestionModel{SectionID: sectionID, QuestionID: q})
	}
	return tx.Create(&rows).Error
}

// Sync makes the section hold exactly target. Run it inside a transaction.
// Calling it twice with the same target changes nothing the second time.
func Sync(tx *gorm.DB, sectionID uint, target []uint) (SyncResult, error) {
	target = dedupe(target)
	if err := lockSection(tx, sectionID); err != nil {
		return SyncResult{}, err
	}
	if err := verifyQuestions(tx, target); err != nil {
		return SyncResult{}, err
	}

	del := tx.Where("section_id = ?", sectionID)
	if len(target) > 0 {
		del = del.Where("question_id NOT IN ?", target)
	}
	res := del.Delete(&model.ExamQuestionModel{})
	if res.Error != nil {
		return SyncResult{}, res.Error
	}

	existing, err := currentIDs(tx, sectionID)
	if err != nil {
		return SyncResult{}, err
	}
	have := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}
	var missing []uint
	for _, id := range target {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	if err := insert(tx, sectionID, missing); err != nil {
		return SyncResult{}, err
	}
	cur, err := currentIDs(tx, sectionID)
	if err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Added: len(missing), Removed: int(res.RowsAffected), Current: cur}, nil
}

// Add inserts only the ids not already in the section.
func Add(tx *gorm.DB, sectionID uint, ids []uint) (SyncResult, error) {
	ids = dedupe(ids)
	if err := lockSection(tx, sectionID); err != nil {
		return SyncResult{}, err
	}
	if err := verifyQuestions(tx, ids); err != nil {
		return SyncResult{}, err
	}
	existing, err := currentIDs(tx, sectionID)
	if err != nil {
		return SyncResult{}, err
	}
	have := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	if err := insert(tx, sectionID, missing); err != nil {
		return SyncResult{}, err
	}
	cur, err := currentIDs(tx, sectionID)
	if err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Added: len(missing), Current: cur}, nil
}

type questionRow struct {
	ExamQuestionID uint
	SectionID      uint
	QuestionID     uint
	Text           string
	Marks          int
	COID           uint   `gorm:"column:co_id"`
	COLabel        string `gorm:"column:co_label"`
}

func questionsOf(db *gorm.DB, sectionIDs []uint) (map[uint][]NumberedQuestion, error) {
	out := make(map[uint][]NumberedQuestion, len(sectionIDs))
	if len(sectionIDs) == 0 {
		return out, nil
	}
	var rows []questionRow
	err := db.Table("exam_questions AS eq").
		Select(`eq.id AS exam_question_id, eq.section_id, eq.question_id, q.text, q.marks,
			q.co_id AS co_id, co.label AS co_label`).
		Joins("JOIN question_bank q ON q.id = eq.question_id").
		Joins("LEFT JOIN course_outcomes co ON co.id = q.co_id").
		Where("eq.section_id IN ?", sectionIDs).
		Order("eq.section_id ASC, eq.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		list := out[r.SectionID]
		out[r.SectionID] = append(list, NumberedQuestion{
			Number:         fmt.Sprintf("Q%d", len(list)+1),
			ExamQuestionID: r.ExamQuestionID,
			QuestionID:     r.QuestionID,
			Text:           r.Text,
			Marks:          r.Marks,
			COID:           r.COID,
			COLabel:        r.COLabel,
		})
	}
	return out, nil
}

// ListQuestions returns the section's questions numbered Q1..Qn by placement order.
func ListQuestions(db *gorm.DB, sectionID uint) ([]NumberedQuestion, error) {
	if err := sectionExists(db, sectionID); err != nil {
		return nil, err
	}
	byID, err := questionsOf(db, []uint{sectionID})
	if err != nil {
		return nil, err
	}
	if list := byID[sectionID]; list != nil {
		return list, nil
	}
	return []NumberedQuestion{}, nil
}

// Details loads an exam with its sections ordered by id, each with numbered questions.
func Details(db *gorm.DB, examID uint) (ExamDetails, error) {
	var d ExamDetails
	res := db.Table("internal_exams AS e").
		Select(`e.id, e.name, e.duration, e.max_marks, e.exam_date, e.batch_id, b.year, b.part,
			b.course_id, c.code AS course_code, c.title AS course_title,
			p.name AS programme_name, f.name AS faculty_name`).
		Joins("LEFT JOIN batches b ON b.id = e.batch_id").
		Joins("LEFT JOIN courses c ON c.id = b.course_id").
		Joins("LEFT JOIN programmes p ON p.id = c.programme_id").
		Joins("LEFT JOIN faculty f ON f.id = b.faculty_id").
		Where("e.id = ?", examID).
		Limit(1).
		Scan(&d)
	if res.Error != nil {
		return d, res.Error
	}
	if res.RowsAffected == 0 {
		return d, gorm.ErrRecordNotFound
	}

	var sections []model.ExamSectionModel
	if err := db.Where("internal_exam_id = ?", examID).Order("id ASC").Find(&sections).Error; err != nil {
		return d, err
	}
	ids := make([]uint, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	qs, err := questionsOf(db, ids)
	if err != nil {
		return d, err
	}
	d.Sections = make([]SectionDetails, 0, len(sections))
	for _, s := range sections {
		list := qs[s.ID]
		if list == nil {
			list = []NumberedQuestion{}
		}
		d.Sections = append(d.Sections, SectionDetails{
			ID:            s.ID,
			Name:          s.Name,
			QuestionCount: s.QuestionCount,
			AnswerCount:   s.AnswerCount,
			CeilingMark:   s.CeilingMark,
			Description:   s.Description,
			Questions:     list,
		})
	}
	return d, nil
}
