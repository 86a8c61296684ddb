// Package excel reads tabular datasets from Excel and CSV files into
// frames.
package excel

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"statkit/domain/dataset"
	"statkit/internal"
	"statkit/internal/errors"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	log      *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV
// files, picking the format from the extension
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, log: internal.DefaultLogger}
}

// ReadFrame reads the file into a frame. The first row supplies column
// names; columns whose every non-blank cell parses as a number become
// numeric columns with NaN for blanks, everything else stays categorical.
func (r *DataReader) ReadFrame() (*dataset.Frame, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound("dataset file " + r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	return r.buildFrame(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	r.log.Debug("read %d rows from sheet %s", len(rows), sheet)
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows tolerated, padded below
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse CSV file")
	}
	r.log.Debug("read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

func (r *DataReader) buildFrame(rows [][]string) (*dataset.Frame, error) {
	if len(rows) < 2 {
		return nil, errors.InvalidInput("dataset must have a header row and at least one data row")
	}

	header := rows[0]
	data := rows[1:]
	frame := dataset.NewFrame()

	for colIdx, rawName := range header {
		name := strings.TrimSpace(rawName)
		if name == "" {
			name = "column_" + strconv.Itoa(colIdx+1)
		}

		cells := make([]string, len(data))
		for rowIdx, row := range data {
			if colIdx < len(row) {
				cells[rowIdx] = strings.TrimSpace(row[colIdx])
			}
		}

		if values, numeric := coerceNumeric(cells); numeric {
			if err := frame.AddNumeric(name, values); err != nil {
				return nil, err
			}
		} else {
			if err := frame.AddCategorical(name, cells); err != nil {
				return nil, err
			}
		}
	}

	r.log.Info("loaded frame: %d columns, %d rows", frame.ColumnCount(), len(data))
	return frame, nil
}

// coerceNumeric converts the cells to floats when every non-blank cell
// parses; blanks become NaN (missing)
func coerceNumeric(cells []string) ([]float64, bool) {
	values := make([]float64, len(cells))
	sawValue := false
	for i, cell := range cells {
		if cell == "" {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
		sawValue = true
	}
	return values, sawValue
}
