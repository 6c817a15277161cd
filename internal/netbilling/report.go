package netbilling

import (
	"encoding/csv"
	"fmt"
	"slices"
	"strings"
)

// ReportKind selects the reporting endpoint and its row key.
type ReportKind int

const (
	MemberReport ReportKind = iota
	TransactionReport
)

func (k ReportKind) String() string {
	if k == TransactionReport {
		return "transactions"
	}
	return "members"
}

// Report column names with special handling.
const (
	ColumnMemberID       = "MEMBER_ID"
	ColumnMemberUserName = "MEMBER_USER_NAME"
	ColumnMemberStatus   = "MEMBER_STATUS"
	ColumnSiteTag        = "SITE_TAG"
	ColumnTransID        = "TRANS_ID"
)

// Record is one report row keyed by column name. In member reports SITE_TAG
// is a list accumulated across duplicate rows.
type Record map[string]Value

// Get returns the scalar value of column.
func (r Record) Get(column string) string {
	return r[column].String()
}

// SiteTags returns the SITE_TAG values of the record.
func (r Record) SiteTags() []string {
	return r[ColumnSiteTag].Strings()
}

// DetectReportKind infers the report kind from its header the way the legacy
// integration did: a MEMBER_USER_NAME column marks a member report.
func DetectReportKind(header []string) ReportKind {
	if slices.Contains(header, ColumnMemberUserName) {
		return MemberReport
	}
	return TransactionReport
}

// ParseReport parses a CSV reporting response. Member reports are keyed by
// MEMBER_ID and merge duplicate members into one record with a SITE_TAG
// list; transaction reports are keyed by TRANS_ID and later rows win.
func ParseReport(raw string, kind ReportKind) (map[string]Record, error) {
	results := make(map[string]Record)
	content := strings.TrimSpace(raw)
	if content == "" {
		return results, nil
	}

	var header []string
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		row, err := parseCSVLine(line)
		if err != nil {
			return nil, fmt.Errorf("parse report line %d: %w", i+1, err)
		}
		if i == 0 {
			header = row
			continue
		}
		if len(row) != len(header) {
			return nil, &MalformedRowError{Line: i + 1, Want: len(header), Got: len(row)}
		}

		record := make(Record, len(header))
		for col, name := range header {
			record[name] = Scalar(row[col])
		}

		if kind == TransactionReport {
			results[record.Get(ColumnTransID)] = record
			continue
		}

		memberID := record.Get(ColumnMemberID)
		if existing, ok := results[memberID]; ok {
			existing[ColumnSiteTag] = List(append(existing.SiteTags(), record.Get(ColumnSiteTag))...)
			continue
		}
		if _, ok := record[ColumnSiteTag]; ok {
			record[ColumnSiteTag] = List(record.Get(ColumnSiteTag))
		}
		results[memberID] = record
	}
	return results, nil
}

func parseCSVLine(line string) ([]string, error) {
	if line == "" {
		return []string{""}, nil
	}
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.Read()
}
