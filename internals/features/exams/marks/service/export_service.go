package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"copo_backend/internals/features/exams/marks/dto"
)

const exportSheet = "Marks"

var exportHeader = []any{"Register No", "Name", "Marks", "Max Marks"}

// Workbook renders one exam's marks as a single-sheet XLSX.
func Workbook(rows []dto.MarkResponse, maxMarks int) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{r.RegisterNo, r.StudentName, r.Marks, maxMarks}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", "D1", bold)
	}
	_ = f.AutoFilter(exportSheet, "A1:D1", nil)
	_ = f.SetColWidth(exportSheet, "A", "A", 16)
	_ = f.SetColWidth(exportSheet, "B", "B", 32)

	return f.WriteToBuffer()
}
