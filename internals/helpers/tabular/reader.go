// Package tabular reads and writes the spreadsheet-shaped files used by the
// admin import/export endpoints (CSV and XLSX).
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RowError: row mengikuti nomor baris file (header = 1).
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

type Row struct {
	Line   int
	Values map[string]string
}

func (r Row) Get(key string) string { return r.Values[key] }

type Table struct {
	Headers []string
	Rows    []Row
}

var ErrUnsupportedFormat = errors.New("unsupported file type")

const utf8BOM = "\ufeff"

// Format dari nama file: csv/txt → csv, xlsx → xlsx.
func FormatOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return "csv", nil
	case ".xlsx":
		return "xlsx", nil
	}
	return "", ErrUnsupportedFormat
}

// Read mem-parse file lalu memastikan semua required header ada. Header
// di-trim dan lowercase, BOM di kolom pertama dibuang. Baris kosong dilewati.
// Kegagalan level file dikembalikan sebagai RowError baris 1.
func Read(format string, r io.Reader, required []string) (*Table, []RowError) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case "csv":
		records, err = readCSV(r)
	case "xlsx":
		records, err = readXLSX(r)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, []RowError{{Row: 1, Errors: []string{"Unable to read file: " + err.Error()}}}
	}
	if len(records) == 0 {
		return nil, []RowError{{Row: 1, Errors: []string{"File is empty."}}}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, req := range required {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, []RowError{{Row: 1, Errors: []string{"Missing headers: " + strings.Join(missing, ", ")}}}
	}

	t := &Table{Headers: headers}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				values[h] = strings.TrimSpace(rec[i])
			} else {
				values[h] = ""
			}
		}
		// nomor baris = urutan baris data + 2 (header di baris 1)
		t.Rows = append(t.Rows, Row{Line: len(t.Rows) + 2, Values: values})
	}
	return t, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
