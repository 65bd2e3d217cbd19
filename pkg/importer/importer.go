// Package importer reads lead spreadsheets uploaded by admins. It only turns
// rows into create requests; validation and storage belong to the leads
// service.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/models"
)

// MaxRows limits the data rows of a single upload.
const MaxRows = 10000

// Format is a supported spreadsheet format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// RequiredColumns must appear in the header row.
var RequiredColumns = []string{"first_name", "last_name", "email"}

// FormatOf picks the format from a file name.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", domain.NewValidationError("file", "file must be a .csv or .xlsx spreadsheet")
}

// Parse reads every data row of the spreadsheet in r.
func Parse(r io.Reader, format Format) ([]models.ImportRow, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r)
	}
	return nil, fmt.Errorf("importer: unsupported format %q", format)
}

// ParseCSV reads a comma separated file whose first line is the header.
func ParseCSV(r io.Reader) ([]models.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, domain.NewValidationError("file", fmt.Sprintf("malformed CSV on line %d: %v", perr.Line, perr.Err))
		}
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return fromRecords(records)
}

// ParseXLSX reads the first sheet of a workbook whose first row is the
// header.
func ParseXLSX(r io.Reader) ([]models.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "file is not a readable .xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewValidationError("file", "workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return fromRecords(records)
}

// NormalizeHeader maps a column title to a lead field name: accents and
// case are dropped, spaces and dashes become underscores.
// Example: "Último Contacto" → "ultimo_contacto", "Lead-Value" → "lead_value"
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(removeAccents(h)))
	h = strings.Join(strings.FieldsFunc(h, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || unicode.IsSpace(r)
	}), "_")
	return h
}

func removeAccents(s string) string {
	t := norm.NFD.String(s)
	result := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, t)
	return norm.NFC.String(result)
}

func fromRecords(records [][]string) ([]models.ImportRow, error) {
	if len(records) == 0 {
		return nil, domain.NewValidationError("file", "file is empty")
	}

	columns := make(map[string]int)
	for i, h := range records[0] {
		name := NormalizeHeader(h)
		if _, dup := columns[name]; name != "" && !dup {
			columns[name] = i
		}
	}
	var missing []domain.FieldError
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, domain.FieldError{Field: col, Message: "missing column " + col})
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationErrors(missing)
	}

	var rows []models.ImportRow
	var bad []domain.FieldError
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		if len(rows) == MaxRows {
			return nil, domain.NewValidationError("file", fmt.Sprintf("file has more than %d rows", MaxRows))
		}
		line := i + 2
		req, errs := toRequest(record, columns)
		for _, e := range errs {
			e.Field = fmt.Sprintf("row %d.%s", line, e.Field)
			bad = append(bad, e)
		}
		rows = append(rows, models.ImportRow{Line: line, Lead: req})
	}

	if len(bad) > 0 {
		return nil, domain.NewValidationErrors(bad)
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func toRequest(record []string, columns map[string]int) (models.CreateLeadRequest, []domain.FieldError) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	req := models.CreateLeadRequest{
		FirstName: cell("first_name"),
		LastName:  cell("last_name"),
		Email:     cell("email"),
		Phone:     cell("phone"),
		Company:   cell("company"),
		City:      cell("city"),
		State:     cell("state"),
		Source:    strings.ToLower(cell("source")),
		Status:    strings.ToLower(cell("status")),
	}

	var errs []domain.FieldError
	fail := func(field, value, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Value: value, Message: msg})
	}

	if v := cell("score"); v != "" {
		n, ok := parseNumber(v)
		if !ok {
			fail("score", v, "score must be a number")
		} else {
			req.Score = &n
		}
	}
	if v := cell("lead_value"); v != "" {
		n, ok := parseNumber(strings.ReplaceAll(v, ",", ""))
		if !ok {
			fail("lead_value", v, "lead_value must be a number")
		} else {
			req.LeadValue = &n
		}
	}
	if v := cell("is_qualified"); v != "" {
		b, ok := parseBool(v)
		if !ok {
			fail("is_qualified", v, "is_qualified must be true or false")
		} else {
			req.IsQualified = &b
		}
	}
	if v := cell("last_activity_at"); v != "" {
		t, ok := parseTime(v)
		if !ok {
			fail("last_activity_at", v, "last_activity_at must be a date")
		} else {
			req.LastActivityAt = &t
		}
	}
	if v := cell("assigned_to"); v != "" {
		req.AssignedTo = &v
	}
	return req, errs
}

// parseNumber accepts finite decimals only. ParseFloat also takes "Inf"
// and "NaN", which neither storage nor JSON can carry.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	}
	return false, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
