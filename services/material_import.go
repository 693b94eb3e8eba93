package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("file must contain a header row and at least one data row")

// ImportError is a single field-level problem on one row of an uploaded
// material sheet.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MaterialImport is the outcome of reading a material sheet. Rows with
// errors are left out of Materials.
type MaterialImport struct {
	TotalRows int             `json:"totalRows"`
	Materials []MaterialInput `json:"materials"`
	Errors    []ImportError   `json:"errors"`
	Ignored   []string        `json:"ignoredColumns,omitempty"`
}

// Material sheet columns. Headers are matched case-insensitively against
// both the Spanish and English names.
const (
	colDescription = "description"
	colQuantity    = "quantity"
	colUnit        = "unit"
	colUnitPrice   = "unitPrice"
)

var materialHeaders = map[string]string{
	"descripción":     colDescription,
	"descripcion":     colDescription,
	"description":     colDescription,
	"cantidad":        colQuantity,
	"quantity":        colQuantity,
	"qty":             colQuantity,
	"unidad":          colUnit,
	"unit":            colUnit,
	"precio unitario": colUnitPrice,
	"precio unit.":    colUnitPrice,
	"unit price":      colUnitPrice,
}

// ImportMaterials reads material lines from a .csv or .xlsx upload.
func ImportMaterials(r io.Reader, fileName string) (*MaterialImport, error) {
	var headers []string
	var rows [][]string
	var err error

	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		headers, rows, err = readCSVSheet(r)
	case strings.HasSuffix(lower, ".xlsx"):
		headers, rows, err = readExcelSheet(r)
	default:
		return nil, fmt.Errorf("%w: must be .csv or .xlsx", ErrUnsupportedInput)
	}
	if err != nil {
		return nil, err
	}

	columns, ignored := mapMaterialHeaders(headers)
	result := &MaterialImport{TotalRows: len(rows), Ignored: ignored}

	for i, row := range rows {
		rowNum := i + 2 // 1-indexed, after the header row
		values := make(map[string]string, len(columns))
		for c, key := range columns {
			if key == "" || c >= len(row) {
				continue
			}
			values[key] = strings.TrimSpace(row[c])
		}
		if isEmptyRow(values) {
			result.TotalRows--
			continue
		}

		item, rowErrors := materialFromRow(rowNum, values)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}
		result.Materials = append(result.Materials, item)
	}
	return result, nil
}

func materialFromRow(rowNum int, values map[string]string) (MaterialInput, []ImportError) {
	var errs []ImportError
	item := MaterialInput{
		ID:          idOrNew(""),
		Description: values[colDescription],
		Quantity:    0.0,
		UnitPrice:   0.0,
	}

	for _, key := range []string{colQuantity, colUnitPrice} {
		raw := values[key]
		if raw == "" {
			continue
		}
		f, err := cast.ToFloat64E(raw)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			errs = append(errs, ImportError{Row: rowNum, Field: key, Message: fmt.Sprintf("%q is not a number", raw)})
			continue
		}
		if key == colQuantity {
			item.Quantity = f
		} else {
			item.UnitPrice = f
		}
	}

	unit, ok := resolveUnit(values[colUnit])
	if !ok {
		errs = append(errs, ImportError{Row: rowNum, Field: colUnit, Message: fmt.Sprintf("unknown unit %q", values[colUnit])})
	}
	item.Unit = unit
	return item, errs
}

// resolveUnit accepts a unit code or its display label. A blank cell means
// the default unit.
func resolveUnit(s string) (string, bool) {
	if s == "" {
		return DefaultUnit, true
	}
	if code := strings.ToLower(s); IsKnownUnit(code) {
		return code, true
	}
	for _, u := range UnitOptions {
		if strings.EqualFold(s, UnitLabel(u.Value)) {
			return u.Value, true
		}
	}
	return s, false
}

func isEmptyRow(values map[string]string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// mapMaterialHeaders returns the column key for every header, "" for
// unrecognized headers, along with the unrecognized header names.
func mapMaterialHeaders(headers []string) ([]string, []string) {
	mapped := make([]string, len(headers))
	var ignored []string
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		if key, ok := materialHeaders[norm]; ok {
			mapped[i] = key
		} else {
			ignored = append(ignored, h)
		}
	}
	return mapped, ignored
}

func readCSVSheet(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(all) < 2 {
		return nil, nil, ErrEmptySheet
	}
	return all[0], all[1:], nil
}

func readExcelSheet(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, ErrEmptySheet
	}
	return rows[0], rows[1:], nil
}
