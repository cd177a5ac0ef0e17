package validator

import (
	"errors"
	"slices"
	"testing"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCatalog struct {
	roles  []string
	levels []string
}

func (c staticCatalog) ValidateRole(role string) bool {
	return slices.Contains(c.roles, role)
}

func (c staticCatalog) ValidateExperienceLevel(level string) bool {
	return slices.Contains(c.levels, level)
}

var catalog = staticCatalog{
	roles:  []string{"Software Engineer", "Data Scientist"},
	levels: []string{"Junior", "Senior"},
}

func TestValidate_Candidate(t *testing.T) {
	v := New(catalog)

	tests := []struct {
		name      string
		candidate models.Candidate
		fields    []string
	}{
		{
			name:      "valid",
			candidate: models.Candidate{Name: "Ada", Email: "ada@example.com", Role: "Data Scientist", ExperienceLevel: "Senior"},
		},
		{
			name:      "unknown role and level",
			candidate: models.Candidate{Name: "Ada", Role: "Astronaut", ExperienceLevel: "Wizard"},
			fields:    []string{"role", "experience_level"},
		},
		{
			name:      "missing name and bad email",
			candidate: models.Candidate{Email: "not-an-email", Role: "Software Engineer", ExperienceLevel: "Junior"},
			fields:    []string{"name", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.candidate)
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
}

type exportRequest struct {
	Format     string `json:"format" validate:"required,report_format"`
	Difficulty string `json:"difficulty" validate:"omitempty,difficulty_level"`
}

func TestValidate_CustomTags(t *testing.T) {
	v := New(nil)

	assert.NoError(t, v.Validate(exportRequest{Format: "XLSX", Difficulty: "Expert"}))

	err := v.Validate(exportRequest{Format: "pdf", Difficulty: "Medium"})
	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.Equal(t, "format", errs[0].Field)
	assert.Equal(t, "must be json, html, or xlsx", errs[0].Message)
	assert.Equal(t, "difficulty", errs[1].Field)
}

func TestValidate_NilCatalogAcceptsAnyRole(t *testing.T) {
	v := New(nil)

	err := v.Validate(models.Candidate{Name: "Ada", Role: "Anything", ExperienceLevel: "Any"})
	assert.NoError(t, err)
}
