// Package excel reads tabular datasets from XLSX and CSV files into named
// numeric columns, feeding the raw-sample variants consumed by the CLI.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Dataset holds a parsed file: ordered headers and per-column string cells.
type Dataset struct {
	Headers []string
	Columns map[string][]string
}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadData reads the file into a column-oriented dataset
func (r *DataReader) ReadData() (*Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcel reads Sheet1 into a dataset
func (r *DataReader) readExcel() (*Dataset, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	log.Printf("[DataReader] Sheet1 read in %.2fms (%d rows)",
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return buildDataset(rows)
}

// readCSV reads CSV data into a dataset
func (r *DataReader) readCSV() (*Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return buildDataset(rows)
}

// buildDataset converts raw string rows into column-oriented form
func buildDataset(rows [][]string) (*Dataset, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have at least a header row and one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	columns := make(map[string][]string, len(headers))
	for _, row := range rows[1:] {
		for j, header := range headers {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			columns[header] = append(columns[header], cell)
		}
	}

	log.Printf("[DataReader] file processed (%d columns, %d rows)", len(headers), len(rows)-1)
	return &Dataset{Headers: headers, Columns: columns}, nil
}

// NumericColumn parses the named column as float64, skipping empty cells.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	cells, ok := d.Columns[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found (have: %s)", name, strings.Join(d.Headers, ", "))
	}

	values := make([]float64, 0, len(cells))
	for i, cell := range cells {
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %q is not numeric", name, i+2, cell)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("column %q has no numeric values", name)
	}
	return values, nil
}

// SplitBy partitions the values of one column by the distinct levels of a
// grouping column, preserving level order of first appearance.
func (d *Dataset) SplitBy(valueCol, groupCol string) (levels []string, groups map[string][]float64, err error) {
	values, ok := d.Columns[valueCol]
	if !ok {
		return nil, nil, fmt.Errorf("column %q not found", valueCol)
	}
	keys, ok := d.Columns[groupCol]
	if !ok {
		return nil, nil, fmt.Errorf("column %q not found", groupCol)
	}

	groups = make(map[string][]float64)
	for i, cell := range values {
		if cell == "" || keys[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("column %q row %d: %q is not numeric", valueCol, i+2, cell)
		}
		if _, seen := groups[keys[i]]; !seen {
			levels = append(levels, keys[i])
		}
		groups[keys[i]] = append(groups[keys[i]], v)
	}
	if len(levels) < 2 {
		return nil, nil, fmt.Errorf("grouping column %q has fewer than 2 levels", groupCol)
	}
	return levels, groups, nil
}
