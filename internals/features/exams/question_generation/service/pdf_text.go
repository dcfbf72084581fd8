package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text of every page. Malformed files
// make the parser panic, which is reported as an error.
func ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("unreadable pdf: %v", rec)
		}
	}()
	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(buf.String()), " "), nil
}
