package tabular

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteCSV menulis BOM UTF-8 dulu supaya Excel membaca encoding dengan benar.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	if _, err := w.Write([]byte(utf8BOM)); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := writeXLSXRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, r := range rows {
		if err := writeXLSXRow(f, sheet, i+2, r); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeXLSXRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return f.SetSheetRow(sheet, cell, &vals)
}
