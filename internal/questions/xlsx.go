package questions

import (
	"fmt"
	"io"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// Columns recognised by ParseExcel. Headers are matched case-insensitively;
// role, difficulty, id and text are required.
const (
	ColumnRole       = "role"
	ColumnDifficulty = "difficulty"
	ColumnID         = "id"
	ColumnText       = "text"
	ColumnKeyPoints  = "key_points"
	ColumnFollowUp   = "follow_up"
	ColumnContext    = "context"
	ColumnDomain     = "domain"
)

// ParseExcel reads a bank from the first sheet of a workbook, one question
// per row. Key points are separated by semicolons.
func ParseExcel(r io.Reader) (*FileBank, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidBank)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one question", ErrInvalidBank)
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{ColumnRole, ColumnDifficulty, ColumnID, ColumnText} {
		if _, ok := headerMap[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidBank, required)
		}
	}

	cell := func(row []string, column string) string {
		i, ok := headerMap[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	bank := newFileBank()
	for rowIndex, row := range rows[1:] {
		if len(strings.Join(row, "")) == 0 {
			continue
		}

		q := models.Question{
			ID:        cell(row, ColumnID),
			Text:      cell(row, ColumnText),
			KeyPoints: splitKeyPoints(cell(row, ColumnKeyPoints)),
			FollowUp:  cell(row, ColumnFollowUp),
			Context:   cell(row, ColumnContext),
			Domain:    cell(row, ColumnDomain),
		}
		if err := bank.add(cell(row, ColumnRole), models.Difficulty(cell(row, ColumnDifficulty)), q); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIndex+2, err)
		}
	}
	return bank, nil
}

func splitKeyPoints(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
