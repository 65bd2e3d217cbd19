package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"first_name":        "first_name",
		"First Name":        "first_name",
		"  EMAIL ":          "email",
		"Lead-Value":        "lead_value",
		"Last  Activity At": "last_activity_at",
		"Ciudád":            "ciudad",
		"\ufeffFirst_Name":      "first_name",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), "header %q", in)
	}
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("leads.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = FormatOf("export.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = FormatOf("leads.xls")
	assert.True(t, domain.IsValidation(err))
}

func TestParseCSV(t *testing.T) {
	data := "First Name,Last Name,Email,Phone,Source,Status,Score,Lead Value,Is Qualified,Last Activity At,Assigned To,Notes\n" +
		"Ada,Lovelace,ada@example.com,202-456-1111,Website,NEW,42.5,\"1,200\",yes,2024-03-01,emp-1,ignored\n" +
		",,,,,,,,,,,\n" +
		"Alan,Turing,alan@example.com,,,,,,,,,\n"

	rows, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "Ada", first.Lead.FirstName)
	assert.Equal(t, "website", first.Lead.Source)
	assert.Equal(t, "new", first.Lead.Status)
	require.NotNil(t, first.Lead.Score)
	assert.Equal(t, 42.5, *first.Lead.Score)
	require.NotNil(t, first.Lead.LeadValue)
	assert.Equal(t, 1200.0, *first.Lead.LeadValue)
	require.NotNil(t, first.Lead.IsQualified)
	assert.True(t, *first.Lead.IsQualified)
	require.NotNil(t, first.Lead.LastActivityAt)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *first.Lead.LastActivityAt)
	require.NotNil(t, first.Lead.AssignedTo)
	assert.Equal(t, "emp-1", *first.Lead.AssignedTo)

	second := rows[1]
	assert.Equal(t, 4, second.Line)
	assert.Nil(t, second.Lead.Score)
	assert.Nil(t, second.Lead.AssignedTo)
}

func TestParseCSV_Errors(t *testing.T) {
	t.Run("missing columns", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("first_name,phone\nAda,1\n"))
		require.True(t, domain.IsValidation(err))
		de, _ := domain.AsDomainError(err)
		require.Len(t, de.Details, 2)
		assert.Equal(t, "last_name", de.Details[0].Field)
		assert.Equal(t, "email", de.Details[1].Field)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("typed cells", func(t *testing.T) {
		data := "first_name,last_name,email,score,is_qualified\n" +
			"Ada,Lovelace,ada@example.com,high,maybe\n" +
			"Alan,Turing,alan@example.com,10,no\n"
		_, err := ParseCSV(strings.NewReader(data))
		require.True(t, domain.IsValidation(err))
		de, _ := domain.AsDomainError(err)
		require.Len(t, de.Details, 2)
		assert.Equal(t, "row 2.score", de.Details[0].Field)
		assert.Equal(t, "high", de.Details[0].Value)
		assert.Equal(t, "row 2.is_qualified", de.Details[1].Field)
	})

	t.Run("non-finite numbers", func(t *testing.T) {
		data := "first_name,last_name,email,score,lead_value\n" +
			"Ada,Lovelace,ada@example.com,NaN,Inf\n" +
			"Alan,Turing,alan@example.com,10,-inf\n"
		_, err := ParseCSV(strings.NewReader(data))
		require.True(t, domain.IsValidation(err))
		de, _ := domain.AsDomainError(err)
		require.Len(t, de.Details, 3)
		assert.Equal(t, "row 2.score", de.Details[0].Field)
		assert.Equal(t, "row 2.lead_value", de.Details[1].Field)
		assert.Equal(t, "Inf", de.Details[1].Value)
		assert.Equal(t, "row 3.lead_value", de.Details[2].Field)
		assert.Equal(t, "lead_value must be a number", de.Details[2].Message)
	})

	t.Run("malformed quoting", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("first_name,last_name,email\n\"Ada,Lovelace,ada@example.com\n"))
		assert.True(t, domain.IsValidation(err))
	})
}

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseXLSX(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Nombre", "First Name", "Last Name", "E-mail", "Email", "Score"},
		{"x", "Grace", "Hopper", "", "grace@example.com", 88},
	})

	rows, err := Parse(buf, FormatXLSX)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Grace", rows[0].Lead.FirstName)
	assert.Equal(t, "grace@example.com", rows[0].Lead.Email)
	require.NotNil(t, rows[0].Lead.Score)
	assert.Equal(t, 88.0, *rows[0].Lead.Score)
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	_, err := ParseXLSX(strings.NewReader("first_name,last_name,email\n"))
	assert.True(t, domain.IsValidation(err))
}
