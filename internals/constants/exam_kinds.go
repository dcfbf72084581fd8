package constants

// ExamKind maps a URL kind to the exam and mark tables that back it.
type ExamKind struct {
	Name      string
	ExamTable string
	MarkTable string
}

var (
	ExternalExam = ExamKind{Name: "external", ExamTable: "external_exams", MarkTable: "external_marks"}
	Viva         = ExamKind{Name: "viva", ExamTable: "vivas", MarkTable: "viva_marks"}
	Quiz         = ExamKind{Name: "quiz", ExamTable: "quizzes", MarkTable: "quiz_marks"}
	Assignment   = ExamKind{Name: "assignment", ExamTable: "assignments", MarkTable: "assignment_marks"}
	InternalExam = ExamKind{Name: "internal", ExamTable: "internal_exams", MarkTable: "internal_marks"}
)

// AssessmentKinds share the (batch, max_marks) shape; InternalExam has its own table layout.
var AssessmentKinds = []ExamKind{ExternalExam, Viva, Quiz, Assignment}

var AllExamKinds = []ExamKind{ExternalExam, Viva, Quiz, Assignment, InternalExam}

func ExamKindByName(name string, kinds []ExamKind) (ExamKind, bool) {
	for _, k := range kinds {
		if k.Name == name {
			return k, true
		}
	}
	return ExamKind{}, false
}
