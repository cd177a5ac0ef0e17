package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/interview-service/internal/errors"
	"github.com/SAP-F-2025/interview-service/internal/interview"
	"github.com/SAP-F-2025/interview-service/internal/session"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Interview specific errors
	ErrSessionNotFound       = errors.New("interview session not found")
	ErrInterviewNotActive    = errors.New("interview is not active")
	ErrNoQuestionsAvailable  = errors.New("no questions available for this role")
	ErrInterviewNotCompleted = errors.New("interview is not completed")
	ErrInvalidReportFormat   = errors.New("invalid report format")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, session.ErrSessionNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrInvalidReportFormat) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a state conflict with the interview
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInterviewNotActive) ||
		errors.Is(err, ErrInterviewNotCompleted) ||
		errors.Is(err, interview.ErrNoActiveInterview)
}

// IsUnavailable reports errors caused by an exhausted question source
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNoQuestionsAvailable) ||
		errors.Is(err, interview.ErrNoQuestionAvailable)
}
