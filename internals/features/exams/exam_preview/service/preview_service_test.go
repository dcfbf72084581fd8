package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	examService "copo_backend/internals/features/exams/internal_exams/service"
)

func TestEscapeLatex(t *testing.T) {
	cases := map[string]string{
		"50% of marks":       `50\% of marks`,
		"a_b & c":            `a\_b \& c`,
		`C:\path{x}`:         `C:\textbackslash{}path\{x\}`,
		"  x^2 ~ y  ":        `x\textasciicircum{}2 \textasciitilde{} y`,
		"#include <stdio.h>": `\#include \textless{}stdio.h\textgreater{}`,
		"$5":                 `\$5`,
	}
	for in, want := range cases {
		assert.Equal(t, want, EscapeLatex(in), in)
	}
}

func TestRenderLatexFillsPaper(t *testing.T) {
	src, err := renderLatex(PaperInput{
		CourseCode:  "CS101",
		CourseTitle: "Programming in C",
		ExamName:    "CIA 1",
		Duration:    90,
		MaxMarks:    50,
		Sections: []PaperSection{{
			Name:        "Part A",
			AnswerCount: 5,
			CeilingMark: 2,
			Questions: []PaperQuestion{
				{Text: "What is 100% CPU?", COLabel: "CO1", Marks: 2},
				{Text: "Define a_b.", COLabel: "CO2", Marks: 2},
			},
		}},
	})
	require.NoError(t, err)
	tex := string(src)
	assert.Contains(t, tex, `CS101 -- Programming in C`)
	assert.Contains(t, tex, `Time: 90 minutes & Max. Marks: 50`)
	assert.Contains(t, tex, `Answer any 5 questions (5 $\times$ 2 marks).`)
	assert.Contains(t, tex, `1. & What is 100\% CPU? & CO1 & 2`)
	assert.Contains(t, tex, `2. & Define a\_b. & CO2 & 2`)
	assert.NotContains(t, tex, "Date:")
}

func pagePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodePage(t *testing.T) {
	raw := pagePNG(t, 400, 200)

	out, err := encodePage(raw, 100, FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.MimeType)
	img, err := png.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	out, err = encodePage(raw, 0, FormatWebP)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", out.MimeType)
	img, err = webp.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())

	_, err = encodePage([]byte("not a png"), 0, FormatPNG)
	assert.Error(t, err)
}

func TestPaperFormat(t *testing.T) {
	assert.Equal(t, FormatWebP, PaperInput{Format: "WEBP"}.format())
	assert.Equal(t, FormatPNG, PaperInput{Format: "gif"}.format())
	assert.Equal(t, FormatPNG, PaperInput{}.format())
}

func TestFromExamDetails(t *testing.T) {
	code, prog, desc := "CS101", "B.Sc Computer Science", "Answer all."
	date := time.Date(2024, 9, 12, 0, 0, 0, 0, time.UTC)
	in := FromExamDetails(examService.ExamDetails{
		Name:          "CIA 1",
		Duration:      90,
		MaxMarks:      50,
		ExamDate:      &date,
		CourseCode:    &code,
		ProgrammeName: &prog,
		Sections: []examService.SectionDetails{{
			Name:        "Part A",
			AnswerCount: 2,
			Description: &desc,
			Questions:   []examService.NumberedQuestion{{Number: "Q1", Text: "Define.", COLabel: "CO1", Marks: 2}},
		}},
	})
	assert.Equal(t, "CS101", in.CourseCode)
	assert.Empty(t, in.CourseTitle)
	assert.Equal(t, "12 Sep 2024", in.ExamDate)
	require.Len(t, in.Sections, 1)
	assert.Equal(t, "Answer all.", in.Sections[0].Instructions)
	assert.Equal(t, []PaperQuestion{{Text: "Define.", COLabel: "CO1", Marks: 2}}, in.Sections[0].Questions)
}

func TestLatexRendererMissingBinary(t *testing.T) {
	r := LatexRenderer{
		PdflatexBin: "/nonexistent/pdflatex",
		PdftoppmBin: "/nonexistent/pdftoppm",
		WorkRoot:    t.TempDir(),
		Timeout:     5 * time.Second,
	}
	_, err := r.Render(context.Background(), PaperInput{CourseCode: "CS101", ExamName: "CIA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdflatex")
}
