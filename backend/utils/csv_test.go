package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "first_name,last_name,email,department,role,hire_date\n"

func TestParseEmployeeCSV(t *testing.T) {
	input := csvHeader +
		"Ada,Lovelace,ada@example.com,Engineering,employee,2026-01-12\n" +
		"Grace,Hopper,grace@example.com,Engineering,manager,\n"

	rows, rowErrs, err := ParseEmployeeCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, "ada@example.com", rows[0].Email)
	assert.Equal(t, "Engineering", rows[0].Department)
	assert.Equal(t, 2026, rows[0].HireDate.Year())
	assert.True(t, rows[1].HireDate.IsZero())
}

func TestParseEmployeeCSVReportsBadRows(t *testing.T) {
	input := csvHeader +
		"Ada,Lovelace,not-an-email,Engineering,employee,\n" +
		",Hopper,grace@example.com,Engineering,,\n" +
		"Bob,Builder,bob@example.com,Facilities,employee,12/01/2026\n" +
		"Eve,Ok,eve@example.com,Sales,employee,\n"

	rows, rowErrs, err := ParseEmployeeCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "eve@example.com", rows[0].Email)

	require.Len(t, rowErrs, 3)
	assert.Equal(t, 2, rowErrs[0].Line)
	assert.Equal(t, "invalid email", rowErrs[0].Message)
	assert.Equal(t, "missing first_name", rowErrs[1].Message)
	assert.Equal(t, "invalid hire_date, use YYYY-MM-DD", rowErrs[2].Message)
}

func TestParseEmployeeCSVRejectsWrongHeader(t *testing.T) {
	_, _, err := ParseEmployeeCSV(strings.NewReader("name,email\nAda,ada@example.com\n"))
	assert.Error(t, err)
}
