package validator

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// QuestionValidator checks bank questions against the validate tags on
// models.Question before they are served or stored.
type QuestionValidator struct {
	structValidator *validator.Validate
}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{structValidator: New(nil).structValidator}
}

// ValidateQuestion returns ValidationErrors naming every failing field.
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question == nil {
		return errors.New("question cannot be nil")
	}
	if err := v.structValidator.Struct(question); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

func (v *QuestionValidator) ValidateBatch(questions []models.Question) error {
	if len(questions) == 0 {
		return errors.New("question batch cannot be empty")
	}

	for i := range questions {
		if err := v.ValidateQuestion(&questions[i]); err != nil {
			return fmt.Errorf("validation failed for question %d (%s): %w", i+1, questions[i].ID, err)
		}
	}
	return nil
}
