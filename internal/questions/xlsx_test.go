package questions

import (
	"bytes"
	"context"
	"testing"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
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

func TestParseExcel(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Role", "Difficulty", "ID", "Text", "Key_Points", "Follow_Up"},
		{"Software Engineer", "Hard", "se-h-1", "Design a cache.", "eviction; ttl ;", "What about invalidation?"},
		{"Software Engineer", "Easy", "se-e-1", "What is a loop?", "", ""},
		{},
		{"Data Scientist", "Intermediate", "ds-i-1", "Explain bias.", "variance", ""},
	})

	bank, err := ParseExcel(buf)
	require.NoError(t, err)

	assert.Equal(t, 3, bank.Count())
	assert.Equal(t, []string{"Software Engineer", "Data Scientist"}, bank.Roles())

	levels, err := bank.GetAvailableDifficulties(context.Background(), "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, []models.Difficulty{models.DifficultyEasy, models.DifficultyHard}, levels)

	q, err := bank.GetQuestionByID(context.Background(), "se-h-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"eviction", "ttl"}, q.KeyPoints)
	assert.Equal(t, "What about invalidation?", q.FollowUp)
	assert.Equal(t, models.DifficultyHard, q.Difficulty)
}

func TestParseExcel_Invalid(t *testing.T) {
	tests := map[string][][]interface{}{
		"header only":      {{"role", "difficulty", "id", "text"}},
		"missing column":   {{"role", "difficulty", "id"}, {"A", "Easy", "x"}},
		"missing text":     {{"role", "difficulty", "id", "text"}, {"A", "Easy", "x", ""}},
		"duplicate id":     {{"role", "difficulty", "id", "text"}, {"A", "Easy", "x", "one"}, {"B", "Easy", "x", "two"}},
		"row without role": {{"role", "difficulty", "id", "text"}, {"", "Easy", "x", "one"}},
		"blank difficulty": {{"role", "difficulty", "id", "text"}, {"A", "", "x", "one"}},
	}
	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseExcel(workbook(t, rows))
			assert.ErrorIs(t, err, ErrInvalidBank)
		})
	}
}
