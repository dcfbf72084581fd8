package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"copo_backend/internals/constants"
)

// headerAliases maps spreadsheet spellings onto the canonical column names.
var headerAliases = map[string]string{
	"admission_number": "register_no",
	"admission_no":     "register_no",
	"register_number":  "register_no",
	"registration_no":  "register_no",
	"reg_no":           "register_no",
	"student_name":     "name",
	"faculty_name":     "name",
	"phone_number":     "phone",
	"phone_no":         "phone",
	"mobile":           "phone",
	"email_id":         "email",
	"mail":             "email",
	"course_code":      "code",
	"course_title":     "title",
	"course_name":      "title",
	"no_of_cos":        "outcome_count",
	"number_of_cos":    "outcome_count",
	"dept":             "department",
	"department_name":  "department",
	"programme_name":   "programme",
	"program":          "programme",
	"program_name":     "programme",
	"sem":              "semester",
	"credit":           "credits",
	"syllabus":         "syllabus_year",
	"admission_year":   "year_of_admission",
}

func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(h)
	if canon, ok := headerAliases[h]; ok {
		return canon
	}
	return h
}

// Table is an uploaded sheet with normalized headers.
type Table struct {
	cols map[string]int
	Rows [][]string
}

func NewTable(header []string, rows [][]string) *Table {
	t := &Table{cols: map[string]int{}, Rows: rows}
	for i, h := range header {
		name := NormalizeHeader(h)
		if _, dup := t.cols[name]; !dup && name != "" {
			t.cols[name] = i
		}
	}
	return t
}

func (t *Table) Has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

// Get returns the trimmed cell or "" when the column or cell is absent.
func (t *Table) Get(row int, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// Int reads a whole number, accepting spreadsheet forms like "3.0". Blank is 0.
func (t *Table) Int(row int, col string) (int, error) {
	raw := t.Get(row, col)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", col, raw)
	}
	return int(f), nil
}

// RowNumber is the 1-based sheet row of data row i, counting the header.
func RowNumber(i int) int { return i + 2 }

// ReadTable reads a CSV or the first sheet of an XLSX workbook.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	switch constants.DetectUploadKind(filename) {
	case constants.UploadCSV:
		records, err = readCSV(r)
	case constants.UploadXLSX:
		records, err = readXLSX(r)
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unsupported file type; upload a .csv or .xlsx file.")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Could not read file: "+err.Error())
	}
	if len(records) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "The file is empty.")
	}
	body := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if !blank(rec) {
			body = append(body, rec)
		}
	}
	return NewTable(records[0], body), nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	var out [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
