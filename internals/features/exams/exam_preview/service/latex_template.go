package service

import (
	"bytes"
	"strings"
	"text/template"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
)

// EscapeLatex makes free text safe inside a LaTeX paragraph.
func EscapeLatex(s string) string {
	return latexEscaper.Replace(strings.TrimSpace(s))
}

// Delimiters are << >> so LaTeX braces need no quoting.
var paperTemplate = template.Must(template.New("paper").
	Delims("<<", ">>").
	Funcs(template.FuncMap{"tex": EscapeLatex, "inc": func(i int) int { return i + 1 }}).
	Parse(`\documentclass[11pt,a4paper]{article}
\usepackage[margin=2cm]{geometry}
\usepackage{array}
\usepackage{longtable}
\pagestyle{empty}
\setlength{\parindent}{0pt}
\begin{document}
\begin{center}
{\Large\bfseries << tex .CourseCode >><< if .CourseTitle >> -- << tex .CourseTitle >><< end >>}\\[4pt]
{\large << tex .ExamName >>}\\[2pt]
<< if .Programme >><< tex .Programme >>\\[2pt]<< end >>
\end{center}
\begin{tabular*}{\textwidth}{@{\extracolsep{\fill}}lr}
<< if .Duration >>Time: << .Duration >> minutes<< end >> & Max. Marks: << .MaxMarks >>\\
<< if .ExamDate >>Date: << tex .ExamDate >><< end >> & \\
\end{tabular*}
\hrule
\vspace{8pt}
<< range .Sections >>
\begin{center}\textbf{<< tex .Name >>}\end{center}
<< if .Instructions >>\textit{<< tex .Instructions >>}\par<< end >>
<< if .AnswerCount >>\textit{Answer any << .AnswerCount >> questions<< if .CeilingMark >> (<< .AnswerCount >> $\times$ << .CeilingMark >> marks)<< end >>.}\par<< end >>
\vspace{4pt}
\begin{longtable}{p{0.06\textwidth}p{0.70\textwidth}>{\centering\arraybackslash}p{0.08\textwidth}r}
<< range $i, $q := .Questions >><< inc $i >>. & << tex $q.Text >> & << tex $q.COLabel >> & << $q.Marks >>\\[4pt]
<< end >>\end{longtable}
<< end >>
\end{document}
`))

func renderLatex(in PaperInput) ([]byte, error) {
	var buf bytes.Buffer
	if err := paperTemplate.Execute(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
