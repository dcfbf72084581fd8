package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"\ufeffAdmission Number": "register_no",
		"Student Name":           "name",
		" Phone-No ":             "phone",
		"Course Code":            "code",
		"No. of COs":             "outcome_count",
		"Year_Of_Admission":      "year_of_admission",
		"Programme":              "programme",
		"Something Else":         "something_else",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestReadTableCSV(t *testing.T) {
	src := "\ufeffRegister No,Student Name,Phone\nna24ecor050, Asha ,98400\n,,\nNA24ECOR051,Ravi\n"
	tbl, err := ReadTable("students.csv", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2, "blank lines are dropped")
	assert.True(t, tbl.Has("register_no"))
	assert.Equal(t, "Asha", tbl.Get(0, "name"))
	assert.Equal(t, "98400", tbl.Get(0, "phone"))
	assert.Equal(t, "", tbl.Get(1, "phone"), "short rows read as blank")
	assert.Equal(t, "", tbl.Get(0, "email"), "unknown columns read as blank")
}

func TestReadTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Course Code", "Course Title", "Sem", "Credits"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"CS102", "Data Structures", 2, 4}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tbl, err := ReadTable("courses.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "Data Structures", tbl.Get(0, "title"))
	n, err := tbl.Int(0, "semester")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReadTableRejects(t *testing.T) {
	_, err := ReadTable("students.docx", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = ReadTable("students.csv", strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadTable("courses.xlsx", strings.NewReader("not a zip"))
	assert.Error(t, err)
}

func TestTableInt(t *testing.T) {
	tbl := NewTable([]string{"credits"}, [][]string{{"3.0"}, {""}, {"three"}})
	n, err := tbl.Int(0, "credits")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = tbl.Int(1, "credits")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = tbl.Int(2, "credits")
	assert.Error(t, err)
}

func TestSummarySkip(t *testing.T) {
	s := Summary{SkippedRows: []int{}}
	s.skip(RowNumber(0), "name is blank")
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, []int{2}, s.SkippedRows)
	assert.Equal(t, []string{"row 2: name is blank"}, s.Reasons)
}
