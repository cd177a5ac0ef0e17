package report

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	ResultsSheet = "Results"
)

var resultHeaders = []interface{}{
	"#", "Question ID", "Question", "Answer", "Clarity", "Accuracy",
	"Completeness", "Confidence", "Overall", "Strengths", "Gaps", "Answered At",
}

// XLSX writes a workbook with a Summary sheet and a per-question Results sheet.
func (g *Generator) XLSX(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1; rename it so Summary opens first.
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if _, err := f.NewSheet(ResultsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(0)

	if err := writeRows(f, SummarySheet, summaryRows(r)); err != nil {
		return nil, err
	}

	rows := [][]interface{}{resultHeaders}
	for i, res := range r.Results {
		rows = append(rows, []interface{}{
			i + 1,
			res.QuestionID,
			res.QuestionText,
			res.Answer,
			res.Scores.Clarity,
			res.Scores.Accuracy,
			res.Scores.Completeness,
			res.Scores.Confidence,
			res.Overall,
			strings.Join(res.Insights.Strengths, "; "),
			strings.Join(res.Insights.Gaps, "; "),
			res.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}
	if err := writeRows(f, ResultsSheet, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryRows(r *Report) [][]interface{} {
	rows := [][]interface{}{
		{"Candidate", r.Candidate.Name},
		{"Email", r.Candidate.Email},
		{"Role", r.Candidate.Role},
		{"Experience", r.Candidate.ExperienceLevel},
		{"Domain", r.Candidate.Domain},
		{"Generated At", r.Metadata.GeneratedAt.Format("2006-01-02 15:04:05")},
		{},
	}

	a := r.Analysis
	if a.Summary != nil {
		rows = append(rows,
			[]interface{}{"Level", a.Summary.OverallLevel},
			[]interface{}{"Score", a.Summary.Score},
			[]interface{}{"Questions Answered", a.Summary.QuestionsAnswered},
			[]interface{}{"Interpretation", a.Summary.Interpretation},
		)
	}
	if a.AggregateScores != nil {
		for _, d := range models.Dimensions {
			rows = append(rows, []interface{}{dimensionLabel(d), a.AggregateScores.Get(d)})
		}
		rows = append(rows, []interface{}{"Overall", a.AggregateScores.Overall})
	}
	if a.Consistency != nil {
		rows = append(rows, []interface{}{"Consistency", a.Consistency.Score, a.Consistency.Interpretation})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Patterns"})
	for _, p := range a.Patterns {
		rows = append(rows, []interface{}{"", p})
	}
	rows = append(rows, []interface{}{"Recommendations"})
	for _, rec := range append(append([]string{}, a.Recommendations...), r.AIRecommendations...) {
		rows = append(rows, []interface{}{"", rec})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
