package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// EmployeeRow is one parsed line of a bulk-upload file.
type EmployeeRow struct {
	FirstName  string
	LastName   string
	Email      string
	Department string
	Role       string
	HireDate   time.Time
}

type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// employeeColumns is the required header, in order.
var employeeColumns = []string{"first_name", "last_name", "email", "department", "role", "hire_date"}

// ParseEmployeeCSV reads a bulk employee upload in a single pass. Rows that
// fail to parse are reported per line and skipped; valid rows are returned.
// role and hire_date may be empty (defaulted by the caller).
func ParseEmployeeCSV(r io.Reader) ([]EmployeeRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, nil, err
	}

	var (
		rows   []EmployeeRow
		errs   []RowError
		lineNo = 1
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			errs = append(errs, RowError{Line: lineNo, Message: err.Error()})
			continue
		}

		row := EmployeeRow{
			FirstName:  strings.TrimSpace(record[0]),
			LastName:   strings.TrimSpace(record[1]),
			Email:      strings.TrimSpace(record[2]),
			Department: strings.TrimSpace(record[3]),
			Role:       strings.TrimSpace(record[4]),
		}

		if row.Email == "" || !strings.Contains(row.Email, "@") {
			errs = append(errs, RowError{Line: lineNo, Message: "invalid email"})
			continue
		}
		if row.FirstName == "" {
			errs = append(errs, RowError{Line: lineNo, Message: "missing first_name"})
			continue
		}

		if hd := strings.TrimSpace(record[5]); hd != "" {
			t, err := time.Parse("2006-01-02", hd)
			if err != nil {
				errs = append(errs, RowError{Line: lineNo, Message: "invalid hire_date, use YYYY-MM-DD"})
				continue
			}
			row.HireDate = t
		}

		rows = append(rows, row)
	}

	return rows, errs, nil
}

func checkHeader(header []string) error {
	if len(header) < len(employeeColumns) {
		return fmt.Errorf("expected columns %s", strings.Join(employeeColumns, ","))
	}
	for i, col := range employeeColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return fmt.Errorf("column %d must be %q", i+1, col)
		}
	}
	return nil
}
