package dto

import "copo_backend/internals/features/exams/exam_preview/service"

type PreviewQuestion struct {
	Text    string `json:"text" validate:"required"`
	COLabel string `json:"co_label"`
	Marks   int    `json:"marks" validate:"gte=0"`
}

type PreviewSection struct {
	Name         string            `json:"name" validate:"required"`
	Instructions string            `json:"instructions"`
	AnswerCount  int               `json:"answer_count" validate:"gte=0"`
	CeilingMark  int               `json:"ceiling_mark" validate:"gte=0"`
	Questions    []PreviewQuestion `json:"questions" validate:"dive"`
}

type PreviewRequest struct {
	CourseCode  string           `json:"course_code" validate:"required"`
	CourseTitle string           `json:"course_title"`
	ExamName    string           `json:"exam_name" validate:"required"`
	Programme   string           `json:"programme"`
	Duration    int              `json:"duration" validate:"gte=0"`
	MaxMarks    int              `json:"max_marks" validate:"gte=0"`
	ExamDate    string           `json:"exam_date"`
	Sections    []PreviewSection `json:"sections" validate:"dive"`
}

func (r PreviewRequest) ToPaper(format string) service.PaperInput {
	in := service.PaperInput{
		CourseCode:  r.CourseCode,
		CourseTitle: r.CourseTitle,
		ExamName:    r.ExamName,
		Programme:   r.Programme,
		Duration:    r.Duration,
		MaxMarks:    r.MaxMarks,
		ExamDate:    r.ExamDate,
		Format:      format,
		Sections:    make([]service.PaperSection, 0, len(r.Sections)),
	}
	for _, s := range r.Sections {
		ps := service.PaperSection{
			Name:         s.Name,
			Instructions: s.Instructions,
			AnswerCount:  s.AnswerCount,
			CeilingMark:  s.CeilingMark,
		}
		for _, q := range s.Questions {
			ps.Questions = append(ps.Questions, service.PaperQuestion{Text: q.Text, COLabel: q.COLabel, Marks: q.Marks})
		}
		in.Sections = append(in.Sections, ps)
	}
	return in
}

type PreviewResponse struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}
