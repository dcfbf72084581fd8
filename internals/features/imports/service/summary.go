package service

import "fmt"

// Summary is returned by the student and course importers.
type Summary struct {
	Created     int      `json:"created"`
	Updated     int      `json:"updated"`
	Skipped     int      `json:"skipped"`
	SkippedRows []int    `json:"skipped_rows"`
	Reasons     []string `json:"reasons,omitempty"`
}

func (s *Summary) skip(row int, reason string) {
	s.Skipped++
	s.SkippedRows = append(s.SkippedRows, row)
	s.Reasons = append(s.Reasons, fmt.Sprintf("row %d: %s", row, reason))
}

// FacultySummary lists faculty names rather than counts.
type FacultySummary struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}
