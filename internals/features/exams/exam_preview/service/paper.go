package service

import (
	"context"
	"encoding/base64"
	"strings"
)

const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

type PaperQuestion struct {
	Text    string
	COLabel string
	Marks   int
}

type PaperSection struct {
	Name         string
	Instructions string
	AnswerCount  int
	CeilingMark  int
	Questions    []PaperQuestion
}

// PaperInput is everything printed on the first page of a question paper.
type PaperInput struct {
	CourseCode  string
	CourseTitle string
	ExamName    string
	Programme   string
	Duration    int
	MaxMarks    int
	ExamDate    string
	Sections    []PaperSection
	Format      string
}

func (in PaperInput) format() string {
	if strings.EqualFold(in.Format, FormatWebP) {
		return FormatWebP
	}
	return FormatPNG
}

type PreviewImage struct {
	Data     []byte
	MimeType string
}

func (p PreviewImage) Base64() string { return base64.StdEncoding.EncodeToString(p.Data) }

// Renderer turns a paper into a page image.
type Renderer interface {
	Render(ctx context.Context, in PaperInput) (PreviewImage, error)
}
