// README: Matrix-of-cells decoders for .xlsx and .csv rate sheets.
package ratesheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Decode dispatches on the file extension of name.
func Decode(name string, r io.Reader) ([]Sheet, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return DecodeXLSX(r)
	case ".csv", ".txt":
		return DecodeCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// DecodeXLSX reads every worksheet with raw (unformatted) cell values.
func DecodeXLSX(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: toCells(rows)})
	}
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return sheets, nil
}

// DecodeCSV reads a single sheet. The separator is sniffed from the header
// line: ';' wins over ',' since comma-decimal exports use it.
func DecodeCSV(r io.Reader) ([]Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyWorkbook
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffSeparator(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return []Sheet{{Name: "csv", Rows: toCells(rows)}}, nil
}

func sniffSeparator(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	if !sc.Scan() {
		return ','
	}
	line := sc.Text()
	switch {
	case strings.Count(line, ";") > 0 && strings.Count(line, ";") >= strings.Count(line, ","):
		return ';'
	case strings.Count(line, "\t") > strings.Count(line, ","):
		return '\t'
	default:
		return ','
	}
}

func toCells(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}
