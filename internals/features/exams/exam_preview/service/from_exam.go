package service

import (
	examService "copo_backend/internals/features/exams/internal_exams/service"
)

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// FromExamDetails lays out a composed internal exam as a paper.
func FromExamDetails(d examService.ExamDetails) PaperInput {
	in := PaperInput{
		CourseCode:  deref(d.CourseCode),
		CourseTitle: deref(d.CourseTitle),
		ExamName:    d.Name,
		Programme:   deref(d.ProgrammeName),
		Duration:    d.Duration,
		MaxMarks:    d.MaxMarks,
		Sections:    make([]PaperSection, 0, len(d.Sections)),
	}
	if d.ExamDate != nil {
		in.ExamDate = d.ExamDate.Format("02 Jan 2006")
	}
	for _, s := range d.Sections {
		ps := PaperSection{
			Name:         s.Name,
			Instructions: deref(s.Description),
			AnswerCount:  s.AnswerCount,
			CeilingMark:  s.CeilingMark,
			Questions:    make([]PaperQuestion, 0, len(s.Questions)),
		}
		for _, q := range s.Questions {
			ps.Questions = append(ps.Questions, PaperQuestion{Text: q.Text, COLabel: q.COLabel, Marks: q.Marks})
		}
		in.Sections = append(in.Sections, ps)
	}
	return in
}
