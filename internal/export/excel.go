package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/skillscribe/internal/pipeline"
)

const (
	SummarySheet     = "Summary"
	CandidatesSheet  = "Candidates"
	AssessmentsSheet = "Assessments"

	dateLayout = "2006-01-02"
)

var (
	candidateHeaders  = []any{"ID", "Name", "Email", "Job", "Status", "Applied", "GitHub Link", "Case Study Deadline", "Lead Assessor", "AI Evaluation"}
	assessmentHeaders = []any{"Candidate", "Job", "Assessor", "Lead", "Vote", "Review"}
)

// Report is what gets written to the workbook.
type Report struct {
	Overview    pipeline.Overview
	Funnel      []pipeline.FunnelStage
	Jobs        []pipeline.JobPosting
	Candidates  []pipeline.Candidate
	GeneratedAt time.Time
}

// NewReport collects everything the workbook shows from the store.
func NewReport(store *pipeline.Store, now time.Time) Report {
	return Report{
		Overview:    store.Overview(),
		Funnel:      store.Funnel(),
		Jobs:        store.Jobs(),
		Candidates:  store.Candidates(),
		GeneratedAt: now,
	}
}

// ToExcel writes the report and returns the final path, with .xlsx appended when missing.
func ToExcel(report Report, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, name := range []string{CandidatesSheet, AssessmentsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return "", err
	}

	jobTitles := make(map[string]string, len(report.Jobs))
	for _, job := range report.Jobs {
		jobTitles[job.ID] = job.Title
	}

	if err := writeSummary(f, report, headerStyle); err != nil {
		return "", fmt.Errorf("write summary sheet: %w", err)
	}
	if err := writeCandidates(f, report.Candidates, jobTitles, headerStyle); err != nil {
		return "", fmt.Errorf("write candidates sheet: %w", err)
	}
	if err := writeAssessments(f, report.Candidates, jobTitles, headerStyle); err != nil {
		return "", fmt.Errorf("write assessments sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return outputPath, nil
}

func writeSummary(f *excelize.File, report Report, headerStyle int) error {
	sheet := SummarySheet
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return err
	}

	overview := report.Overview
	rows := [][]any{
		{"Hiring Overview"},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Open Positions", overview.OpenPositions},
		{"Total Candidates", overview.TotalCandidates},
		{"In Assessment", overview.InAssessment},
		{"Ready for Interview", overview.ReadyForInterview},
		{},
		{"Pipeline Stage", "Candidates"},
	}
	for _, stage := range report.Funnel {
		rows = append(rows, []any{stage.Name, stage.Count})
	}
	rows = append(rows, []any{}, []any{"Job Posting", "Candidates"})
	for _, summary := range overview.Jobs {
		rows = append(rows, []any{summary.Job.Title, summary.Candidates})
	}

	for i, row := range rows {
		if err := setRow(f, sheet, i+1, row); err != nil {
			return err
		}
		if len(row) > 0 && (i == 0 || row[0] == "Pipeline Stage" || row[0] == "Job Posting") {
			if err := styleRow(f, sheet, i+1, 2, headerStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCandidates(f *excelize.File, candidates []pipeline.Candidate, jobTitles map[string]string, headerStyle int) error {
	sheet := CandidatesSheet
	if err := setRow(f, sheet, 1, candidateHeaders); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(candidateHeaders), headerStyle); err != nil {
		return err
	}

	for i, c := range candidates {
		deadline := ""
		if c.CaseStudyDeadline != nil {
			deadline = c.CaseStudyDeadline.Format(dateLayout)
		}
		lead := ""
		if a := c.Lead(); a != nil {
			lead = a.Name
		}

		row := []any{c.ID, c.Name, c.Email, jobTitles[c.JobID], string(c.Status), c.AppliedAt.Format(dateLayout), c.Link(), deadline, lead, c.Evaluation()}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "J", 22)
}

func writeAssessments(f *excelize.File, candidates []pipeline.Candidate, jobTitles map[string]string, headerStyle int) error {
	sheet := AssessmentsSheet
	if err := setRow(f, sheet, 1, assessmentHeaders); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(assessmentHeaders), headerStyle); err != nil {
		return err
	}

	rowIdx := 2
	for _, c := range candidates {
		for _, a := range c.Assessments {
			lead := "No"
			if assessor := c.AssessorByID(a.AssessorID); assessor != nil && assessor.IsLead {
				lead = "Yes"
			}

			row := []any{c.Name, jobTitles[c.JobID], a.AssessorName, lead, string(a.Vote), a.Review}
			if err := setRow(f, sheet, rowIdx, row); err != nil {
				return err
			}
			rowIdx++
		}
	}
	return f.SetColWidth(sheet, "A", "F", 24)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}
