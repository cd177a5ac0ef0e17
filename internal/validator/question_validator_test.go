package validator

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() models.Question {
	return models.Question{
		ID:         "se-e-1",
		Text:       "What is a loop?",
		Role:       "Software Engineer",
		Difficulty: models.DifficultyEasy,
		KeyPoints:  []string{"iteration"},
	}
}

func TestQuestionValidator_ValidateQuestion(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name   string
		modify func(q *models.Question)
		fields []string
	}{
		{name: "valid", modify: func(*models.Question) {}},
		{name: "no key points", modify: func(q *models.Question) { q.KeyPoints = nil }},
		{
			name:   "missing id and text",
			modify: func(q *models.Question) { q.ID, q.Text = "", "" },
			fields: []string{"id", "text"},
		},
		{
			name:   "missing role and difficulty",
			modify: func(q *models.Question) { q.Role, q.Difficulty = "", "" },
			fields: []string{"role", "difficulty"},
		},
		{
			name:   "empty key point",
			modify: func(q *models.Question) { q.KeyPoints = []string{"iteration", ""} },
			fields: []string{"key_points[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.modify(&q)

			err := v.ValidateQuestion(&q)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.ElementsMatch(t, tt.fields, fields)
		})
	}

	assert.Error(t, v.ValidateQuestion(nil))
}

func TestQuestionValidator_ValidateBatch(t *testing.T) {
	v := NewQuestionValidator()

	assert.ErrorContains(t, v.ValidateBatch(nil), "cannot be empty")

	good := validQuestion()
	bad := validQuestion()
	bad.ID = "se-e-2"
	bad.Text = ""

	assert.NoError(t, v.ValidateBatch([]models.Question{good}))

	err := v.ValidateBatch([]models.Question{good, bad})
	assert.ErrorContains(t, err, "question 2 (se-e-2)")
	var errs ValidationErrors
	assert.True(t, errors.As(err, &errs))
}
