package constants

import (
	"path/filepath"
	"strings"
)

type UploadKind int

const (
	UploadUnknown UploadKind = iota
	UploadCSV
	UploadXLSX
	UploadPDF
)

func DetectUploadKind(filename string) UploadKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return UploadCSV
	case ".xlsx", ".xlsm":
		return UploadXLSX
	case ".pdf":
		return UploadPDF
	default:
		return UploadUnknown
	}
}
