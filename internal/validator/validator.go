package validator

import (
	"reflect"
	"slices"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Catalog answers whether a role or experience level is configured.
type Catalog interface {
	ValidateRole(role string) bool
	ValidateExperienceLevel(level string) bool
}

var ReportFormats = []string{"json", "html", "xlsx"}

// Validator wraps go-playground/validator with the interview tags registered.
type Validator struct {
	structValidator *validator.Validate
}

func New(catalog Catalog) *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator, catalog)
	return &Validator{structValidator: structValidator}
}

// ValidateStruct returns validator.ValidationErrors on failure.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate converts field failures into ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate, catalog Catalog) {
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("report_format", validateReportFormat)

	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return catalog == nil || catalog.ValidateRole(fl.Field().String())
	})
	validate.RegisterValidation("experience_level", func(fl validator.FieldLevel) bool {
		return catalog == nil || catalog.ValidateExperienceLevel(fl.Field().String())
	})

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	return models.Difficulty(fl.Field().String()).IsValid()
}

func validateReportFormat(fl validator.FieldLevel) bool {
	return slices.Contains(ReportFormats, strings.ToLower(fl.Field().String()))
}
