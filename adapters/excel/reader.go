package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"statcalc/internal"
	"statcalc/internal/errors"
)

// DataReader reads one column of values from Excel or CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	column   string
	logger   *internal.Logger
}

// NewDataReader creates a reader for the configured file and column
func NewDataReader(cfg Config) *DataReader {
	ext := strings.ToLower(filepath.Ext(cfg.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: cfg.FilePath,
		fileType: fileType,
		column:   cfg.Column,
		logger:   internal.DefaultLogger.With("DataReader"),
	}
}

// WithLogger replaces the reader's logger
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger.With("DataReader")
	return r
}

// Name describes the source in error messages
func (r *DataReader) Name() string {
	if r.column == "" {
		return r.filePath
	}
	return fmt.Sprintf("%s column %q", r.filePath, r.column)
}

// Tokens returns the selected column's cells in row order, ready for parsing
func (r *DataReader) Tokens(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := r.ReadData()
	if err != nil {
		return nil, errors.SourceError(r.Name(), err)
	}

	tokens, err := r.selectColumn(table)
	if err != nil {
		return nil, errors.SourceError(r.Name(), err)
	}
	return tokens, nil
}

// ReadData reads the whole first sheet (or CSV file) as text
func (r *DataReader) ReadData() (*Table, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelData reads the first sheet of the workbook
func (r *DataReader) readExcelData() (*Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVData reads a CSV file; rows may have differing lengths
func (r *DataReader) readCSVData() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows splits off the header row and trims every cell
func (r *DataReader) processRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s file must have a header row", strings.ToUpper(r.fileType))
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		data = append(data, cells)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(data))
	return &Table{Headers: headers, Rows: data}, nil
}

// selectColumn extracts the configured column; short rows contribute an empty cell,
// which the parser skips
func (r *DataReader) selectColumn(table *Table) ([]string, error) {
	if len(table.Headers) == 0 {
		return nil, fmt.Errorf("no columns found")
	}

	idx := 0
	if r.column != "" {
		var ok bool
		idx, ok = table.ColumnIndex(r.column)
		if !ok {
			return nil, fmt.Errorf("column %q not found (available: %s)", r.column, strings.Join(table.Headers, ", "))
		}
	}

	tokens := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if idx < len(row) {
			tokens = append(tokens, row[idx])
		} else {
			tokens = append(tokens, "")
		}
	}
	return tokens, nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
