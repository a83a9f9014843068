// Package roster reads registration numbers from spreadsheets for the roster file.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig describes where registration numbers live in the source file.
type ImportConfig struct {
	FilePath   string // Excel (.xlsx) or CSV file
	SheetName  string // Excel sheet; empty selects the first sheet
	Column     string // Column letter holding the registration number
	SkipHeader bool   // Skip the first row
}

// DefaultImportConfig reads column A and skips a header row.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		Column:     "A",
		SkipHeader: true,
	}
}

// ReadRegNumbers returns the trimmed, non-blank values of the configured column.
func ReadRegNumbers(cfg ImportConfig) ([]string, error) {
	col, err := excelize.ColumnNameToNumber(strings.ToUpper(cfg.Column))
	if err != nil {
		return nil, fmt.Errorf("invalid column %q: %w", cfg.Column, err)
	}

	var rows [][]string
	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		rows, err = readCSV(cfg.FilePath)
	} else {
		rows, err = readExcel(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}

	regNumbers := make([]string, 0, len(rows))
	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		if len(row) < col {
			continue
		}
		if reg := strings.TrimSpace(row[col-1]); reg != "" {
			regNumbers = append(regNumbers, reg)
		}
	}
	return regNumbers, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
