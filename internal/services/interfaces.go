package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/report"
)

// InterviewService runs interviews identified by session ID.
type InterviewService interface {
	Start(ctx context.Context, req *StartInterviewRequest) (*StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error)
	GetCurrentQuestion(ctx context.Context, sessionID string) (*QuestionResponse, error)
	GetStatus(ctx context.Context, sessionID string) (*models.InterviewStatusView, error)
	GetResults(ctx context.Context, sessionID string) (*ResultsResponse, error)
	Complete(ctx context.Context, sessionID string) (*CompleteResponse, error)
	Export(ctx context.Context, sessionID, format string) (*ExportResponse, error)
	Abandon(ctx context.Context, sessionID string) error
}

// ===== REQUESTS =====

type StartInterviewRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Email           string `json:"email" validate:"omitempty,email"`
	Role            string `json:"role" validate:"required,role"`
	ExperienceLevel string `json:"experience_level" validate:"required,experience_level"`
	Domain          string `json:"domain" validate:"omitempty,max=100"`
}

func (r *StartInterviewRequest) Candidate() models.Candidate {
	return models.Candidate{
		Name:            r.Name,
		Email:           r.Email,
		Role:            r.Role,
		ExperienceLevel: r.ExperienceLevel,
		Domain:          r.Domain,
	}
}

// SubmitAnswerRequest carries an answer. Empty answers are accepted and
// scored at the floor.
type SubmitAnswerRequest struct {
	Answer         string  `json:"answer" validate:"max=20000"`
	FollowUpAnswer *string `json:"follow_up_answer" validate:"omitempty,max=20000"`
}

// ===== RESPONSES =====

type StartInterviewResponse struct {
	SessionID          string            `json:"session_id"`
	Candidate          models.Candidate  `json:"candidate"`
	Question           *models.Question  `json:"question"`
	QuestionNumber     int               `json:"question_number"`
	TotalQuestions     int               `json:"total_questions"`
	StartingDifficulty models.Difficulty `json:"starting_difficulty"`
}

type QuestionResponse struct {
	SessionID      string            `json:"session_id"`
	Question       *models.Question  `json:"question"`
	QuestionNumber int               `json:"question_number"`
	TotalQuestions int               `json:"total_questions"`
	Difficulty     models.Difficulty `json:"difficulty"`
}

type SubmitAnswerResponse struct {
	SessionID      string                 `json:"session_id"`
	Status         models.InterviewStatus `json:"status"`
	AnsweredNumber int                    `json:"answered_number"`
	TotalQuestions int                    `json:"total_questions"`

	// Result is omitted when scores are hidden from candidates.
	Result       *models.ResultRecord `json:"result,omitempty"`
	ScoresHidden bool                 `json:"scores_hidden"`

	// FollowUpQuestion is a model-generated probe on the answer just given.
	FollowUpQuestion string `json:"follow_up_question,omitempty"`

	NextQuestion       *models.Question `json:"next_question,omitempty"`
	NextQuestionNumber int              `json:"next_question_number,omitempty"`
}

type ResultsResponse struct {
	SessionID string                   `json:"session_id"`
	Status    models.InterviewStatus   `json:"status"`
	Candidate models.Candidate         `json:"candidate"`
	Results   []models.ResultRecord    `json:"results"`
	Analysis  models.AggregateAnalysis `json:"analysis"`
}

type CompleteResponse struct {
	SessionID         string                   `json:"session_id"`
	Candidate         models.Candidate         `json:"candidate"`
	Analysis          models.AggregateAnalysis `json:"analysis"`
	AIRecommendations []string                 `json:"ai_recommendations,omitempty"`
	ReportFiles       []string                 `json:"report_files,omitempty"`
	CompletedAt       time.Time                `json:"completed_at"`
}

type ExportResponse struct {
	Format      report.Format
	ContentType string
	Filename    string
	Data        []byte
}
