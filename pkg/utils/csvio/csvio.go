// Package csvio reads customer import files and writes submission exports.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"resellpanel_backend/internal/model"
)

type CustomerRow struct {
	Line  int
	Email string
	Name  string
}

// ReadCustomerRows parses an import file with a header row. Only an "email"
// column is required; "name" is picked up when present. Rows without an
// email are reported but do not abort the rest of the file.
func ReadCustomerRows(r io.Reader) ([]CustomerRow, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty CSV file")
	}

	emailCol, nameCol := -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "email":
			emailCol = i
		case "name":
			nameCol = i
		}
	}
	if emailCol < 0 {
		return nil, nil, fmt.Errorf("CSV file has no email column")
	}

	var rows []CustomerRow
	var rowErrors []string
	for i, record := range records[1:] {
		line := i + 2
		if emailCol >= len(record) || strings.TrimSpace(record[emailCol]) == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: missing email", line))
			continue
		}
		row := CustomerRow{Line: line, Email: strings.TrimSpace(record[emailCol])}
		if nameCol >= 0 && nameCol < len(record) {
			row.Name = strings.TrimSpace(record[nameCol])
		}
		rows = append(rows, row)
	}
	return rows, rowErrors, nil
}

var exportHeader = []string{
	"id", "customer_email", "profile_name", "reseller_name", "requested_plan_id",
	"duration_months", "status", "request_date", "start_date", "end_date", "notes",
}

// WriteSubmissions writes the admin export format.
func WriteSubmissions(w io.Writer, subs []model.Submission) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, sub := range subs {
		start := ""
		if sub.StartDate != nil {
			start = sub.StartDate.Format(time.RFC3339)
		}
		record := []string{
			strconv.FormatUint(uint64(sub.ID), 10),
			sub.CustomerEmail,
			sub.ProfileName,
			sub.ResellerName,
			sub.RequestedPlanID,
			strconv.Itoa(sub.DurationMonths),
			string(sub.Status),
			sub.RequestDate.Format(time.RFC3339),
			start,
			sub.EndDate,
			sub.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
