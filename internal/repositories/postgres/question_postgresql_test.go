package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestSortDifficulties(t *testing.T) {
	tests := []struct {
		name string
		in   []models.Difficulty
		want []models.Difficulty
	}{
		{"nil", nil, nil},
		{
			"ladder order",
			[]models.Difficulty{models.DifficultyExpert, models.DifficultyEasy, models.DifficultyHard},
			[]models.Difficulty{models.DifficultyEasy, models.DifficultyHard, models.DifficultyExpert},
		},
		{
			"unknown levels last",
			[]models.Difficulty{"Warmup", models.DifficultyIntermediate, "Bonus", models.DifficultyEasy},
			[]models.Difficulty{models.DifficultyEasy, models.DifficultyIntermediate, "Bonus", "Warmup"},
		},
		{
			"duplicates removed",
			[]models.Difficulty{models.DifficultyHard, models.DifficultyHard},
			[]models.Difficulty{models.DifficultyHard},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortDifficulties(tt.in))
		})
	}
}

func TestSortDifficulties_DoesNotMutateInput(t *testing.T) {
	in := []models.Difficulty{models.DifficultyHard, models.DifficultyEasy}
	SortDifficulties(in)
	assert.Equal(t, models.DifficultyHard, in[0])
}

func TestRandomOrder(t *testing.T) {
	pg := &gorm.DB{Config: &gorm.Config{Dialector: postgres.New(postgres.Config{DSN: "host=localhost"})}}
	my := &gorm.DB{Config: &gorm.Config{Dialector: mysql.New(mysql.Config{DSN: "user@/db"})}}

	assert.Equal(t, "RANDOM()", randomOrder(pg))
	assert.Equal(t, "RAND()", randomOrder(my))
}

func TestQuestionPostgreSQL_SeedRejectsInvalidQuestions(t *testing.T) {
	repo := NewQuestionPostgreSQL(nil, nil)
	questions := []models.Question{
		{ID: "se-e-1", Text: "What is a loop?", Role: "Software Engineer", Difficulty: models.DifficultyEasy},
		{ID: "se-e-2", Role: "Software Engineer", Difficulty: models.DifficultyEasy},
	}

	n, err := repo.Seed(context.Background(), questions)

	assert.Zero(t, n)
	var errs validator.ValidationErrors
	assert.True(t, errors.As(err, &errs))
	assert.ErrorContains(t, err, "se-e-2")
}
