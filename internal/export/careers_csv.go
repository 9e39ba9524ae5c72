// Package export writes the flattened career records for spreadsheet use.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"course-explorer/internal/domain"
)

// Keep header order EXACT, downstream sheets index by column.
var careersHeader = []string{
	"COURSE",
	"CAREER_ID",
	"CAREER_NAME",
	"SUBJECT",
	"PROGRAM",
	"DESCRIPTION",
	"KEY_RESPONSIBILITIES",
	"REQUIRED_SKILLS",
	"EDUCATION",
	"SALARY",
	"JOB_OUTLOOK",
}

// listSep joins list columns.
const listSep = " | "

// CareerRow is one flattened career record tagged with its course title.
type CareerRow struct {
	Course string
	Record domain.FlattenedCareerRecord
}

// CareerRows tags every record with course.
func CareerRows(course string, records []domain.FlattenedCareerRecord) []CareerRow {
	out := make([]CareerRow, 0, len(records))
	for _, r := range records {
		out = append(out, CareerRow{Course: course, Record: r})
	}
	return out
}

// WriteCareersCSV writes rows with a header line. Records are written as
// given; a career reached through several programs appears once per path.
func WriteCareersCSV(w io.Writer, rows []CareerRow) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(careersHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(toCareerRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCareersCSVFile writes rows to outPath.
func WriteCareersCSVFile(outPath string, rows []CareerRow) error {
	var buf bytes.Buffer
	if err := WriteCareersCSV(&buf, rows); err != nil {
		return fmt.Errorf("export: encode csv: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}

func toCareerRow(r CareerRow) []string {
	c := r.Record
	return []string{
		r.Course,
		c.CareerID,
		cleanString(c.CareerName),
		c.Subject,
		c.Program,
		cleanString(c.Description),
		joinList(c.KeyResponsibilities),
		joinList(c.RequiredSkills),
		joinList(c.EducationQualifications),
		cleanString(c.Salary),
		cleanString(c.JobOutlook),
	}
}

func joinList(in []string) string {
	return strings.Join(cleanStrings(in), listSep)
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = cleanString(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// cleanString flattens newlines so each record stays on one line.
func cleanString(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
