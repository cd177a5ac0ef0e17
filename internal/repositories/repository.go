package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrReportNotFound   = errors.New("report not found")
)

// QuestionRepository is a database-backed question source.
type QuestionRepository interface {
	GetQuestion(ctx context.Context, role string, d models.Difficulty) (*models.Question, error)
	GetAvailableDifficulties(ctx context.Context, role string) ([]models.Difficulty, error)
	Questions(ctx context.Context, role string, d models.Difficulty) ([]models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)

	// Seed upserts questions by ID and returns how many were written.
	Seed(ctx context.Context, questions []models.Question) (int, error)
	Count(ctx context.Context) (int64, error)
}

type ReportFilters struct {
	Role     string     `json:"role"`
	Email    string     `json:"email"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ReportRepository stores completed interviews.
type ReportRepository interface {
	Create(ctx context.Context, report *models.InterviewReport) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.InterviewReport, error)
	List(ctx context.Context, filters ReportFilters) ([]*models.InterviewReport, int64, error)
}
