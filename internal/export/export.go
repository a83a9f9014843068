// Package export renders quiz results as downloadable tables and archives them.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"quiz-admin-service/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	sheetName = "Results"
)

// Columns are the exported result fields, in order.
var Columns = []string{"regNumber", "fullName", "department", "score", "total", "timestamp"}

// Render serializes results as a header row followed by one row per result.
// An empty format selects CSV.
func Render(format string, results []domain.Result) (domain.ExportFile, error) {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		data, err := renderCSV(results)
		if err != nil {
			return domain.ExportFile{}, err
		}
		return domain.ExportFile{
			Name:        "quiz_results.csv",
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
			Rows:        len(results),
		}, nil
	case FormatXLSX:
		data, err := renderXLSX(results)
		if err != nil {
			return domain.ExportFile{}, err
		}
		return domain.ExportFile{
			Name:        "quiz_results.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
			Rows:        len(results),
		}, nil
	default:
		return domain.ExportFile{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

func row(r domain.Result) []string {
	return []string{
		r.RegNumber,
		r.FullName,
		r.Department,
		formatNumber(r.Score),
		formatNumber(r.Total),
		r.Timestamp.UTC().Format(time.RFC3339),
	}
}

func renderCSV(results []domain.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, r := range results {
		if err := w.Write(row(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(results []domain.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			r.RegNumber,
			r.FullName,
			r.Department,
			r.Score,
			r.Total,
			r.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
