package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/interview-service/internal/analysis"
	"github.com/SAP-F-2025/interview-service/internal/config"
	"github.com/SAP-F-2025/interview-service/internal/events"
	"github.com/SAP-F-2025/interview-service/internal/interview"
	"github.com/SAP-F-2025/interview-service/internal/llm"
	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/questions"
	"github.com/SAP-F-2025/interview-service/internal/report"
	"github.com/SAP-F-2025/interview-service/internal/repositories"
	"github.com/SAP-F-2025/interview-service/internal/session"
	"github.com/SAP-F-2025/interview-service/internal/utils"
	"github.com/SAP-F-2025/interview-service/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Dependencies wires an interviewService. Collaborator, Reports and
// ReportsDir are optional.
type Dependencies struct {
	Questions    questions.Lister
	Scorer       interview.Scorer
	Store        session.Store
	Settings     *config.Settings
	Publisher    events.EventPublisher
	Collaborator llm.Collaborator
	Reports      repositories.ReportRepository
	ReportsDir   string
	Metrics      *Metrics
	Validator    *validator.Validator
	Logger       *slog.Logger
}

type interviewService struct {
	deps      Dependencies
	analyzer  *analysis.Engine
	reporter  *report.Generator
	logger    *slog.Logger
	opLogger  *ServiceLogger
	now       func() time.Time
	locks     sessionLocks
	finalized sync.Map // session ID -> *CompleteResponse
}

func NewInterviewService(deps Dependencies) InterviewService {
	return newInterviewService(deps)
}

func newInterviewService(deps Dependencies) *interviewService {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Settings == nil {
		deps.Settings = config.DefaultSettings()
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NewMockEventPublisher(deps.Logger)
	}
	if deps.Validator == nil {
		deps.Validator = validator.New(deps.Settings)
	}
	return &interviewService{
		deps:     deps,
		analyzer: analysis.NewEngine(),
		reporter: report.NewGenerator(),
		logger:   deps.Logger,
		opLogger: NewServiceLogger(deps.Logger, LogConfig{Service: "interview", Component: "service"}),
		now:      time.Now,
	}
}

// ===== LIFECYCLE =====

func (s *interviewService) Start(ctx context.Context, req *StartInterviewRequest) (resp *StartInterviewResponse, err error) {
	sessionID := uuid.New().String()
	op := s.opLogger.WithOperation(ctx, "start_interview", sessionID)
	defer func() { op.LogResult(err) }()

	if err := s.deps.Validator.Validate(req); err != nil {
		return nil, err
	}

	candidate := req.Candidate()
	settings := s.deps.Settings.Interview()
	engine := s.newEngine()

	s.logger.Info("Starting interview",
		"session_id", sessionID,
		"role", candidate.Role,
		"experience_level", candidate.ExperienceLevel)

	start, err := engine.Initialize(ctx, candidate)
	if err != nil {
		if errors.Is(err, interview.ErrNoQuestionAvailable) {
			return nil, fmt.Errorf("%w: %s", ErrNoQuestionsAvailable, candidate.Role)
		}
		return nil, fmt.Errorf("failed to start interview: %w", err)
	}

	state := engine.State()
	if err := s.deps.Store.Put(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to save interview session: %w", err)
	}

	s.deps.Metrics.IncrementInterviewsStarted()
	s.publish(ctx, events.NewInterviewStartedEvent(sessionID, candidate, state.CurrentDifficulty, start.Question.ID, settings.MaxQuestions, state.StartedAt))

	return &StartInterviewResponse{
		SessionID:          sessionID,
		Candidate:          candidate,
		Question:           start.Question,
		QuestionNumber:     start.QuestionNumber,
		TotalQuestions:     start.TotalQuestions,
		StartingDifficulty: state.CurrentDifficulty,
	}, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, sessionID string, req *SubmitAnswerRequest) (resp *SubmitAnswerResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "submit_answer", sessionID)
	defer func() { op.LogResult(err) }()

	if err := s.deps.Validator.Validate(req); err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(sessionID)
	defer unlock()

	engine, state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.IsActive() {
		return nil, ErrInterviewNotActive
	}
	answered := engine.CurrentQuestion()

	result, submitErr := engine.SubmitAnswer(ctx, req.Answer, req.FollowUpAnswer)
	if submitErr != nil && !errors.Is(submitErr, interview.ErrNoQuestionAvailable) {
		if errors.Is(submitErr, interview.ErrNoActiveInterview) {
			return nil, ErrInterviewNotActive
		}
		return nil, fmt.Errorf("failed to submit answer: %w", submitErr)
	}

	next := engine.State()
	if len(next.Results) == len(state.Results) {
		// nothing was scored: the pending question itself could not be found
		return nil, fmt.Errorf("%w: %v", ErrNoQuestionsAvailable, submitErr)
	}

	// The answer is recorded even when the next question could not be found.
	if err := s.deps.Store.Put(ctx, sessionID, next); err != nil {
		return nil, fmt.Errorf("failed to save interview session: %w", err)
	}
	record := next.Results[len(next.Results)-1]
	s.deps.Metrics.IncrementAnswersScored()
	s.publish(ctx, events.NewAnswerScoredEvent(sessionID, len(next.Results), record, next.CurrentDifficulty))

	if submitErr != nil {
		s.logger.Warn("Answer recorded but no next question available",
			"session_id", sessionID,
			"difficulty", next.CurrentDifficulty)
		return nil, fmt.Errorf("%w: %v", ErrNoQuestionsAvailable, submitErr)
	}

	settings := s.deps.Settings.Interview()
	resp = &SubmitAnswerResponse{
		SessionID:      sessionID,
		Status:         result.Status,
		AnsweredNumber: len(next.Results),
		TotalQuestions: result.TotalQuestions,
		ScoresHidden:   !settings.RevealScores,
	}
	if settings.RevealScores {
		resp.Result = &record
	}
	if !result.Completed() {
		resp.NextQuestion = result.NextQuestion
		resp.NextQuestionNumber = result.QuestionNumber
	}
	if answered != nil && settings.MaxFollowupsPerQuestion > 0 {
		resp.FollowUpQuestion = s.followUp(ctx, sessionID, *answered, req.Answer)
	}

	s.logger.Info("Answer scored",
		"session_id", sessionID,
		"question_id", record.QuestionID,
		"overall", record.Overall,
		"status", result.Status)
	return resp, nil
}

func (s *interviewService) GetCurrentQuestion(ctx context.Context, sessionID string) (*QuestionResponse, error) {
	engine, state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.IsActive() {
		return nil, ErrInterviewNotActive
	}
	q := engine.CurrentQuestion()
	if q == nil {
		return nil, ErrNoQuestionsAvailable
	}
	return &QuestionResponse{
		SessionID:      sessionID,
		Question:       q,
		QuestionNumber: state.CurrentQuestionIndex + 1,
		TotalQuestions: state.MaxQuestions,
		Difficulty:     state.CurrentDifficulty,
	}, nil
}

func (s *interviewService) GetStatus(ctx context.Context, sessionID string) (*models.InterviewStatusView, error) {
	engine, _, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	status := engine.Status()
	return &status, nil
}

func (s *interviewService) GetResults(ctx context.Context, sessionID string) (*ResultsResponse, error) {
	engine, state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	results := engine.Results()
	return &ResultsResponse{
		SessionID: sessionID,
		Status:    state.Status,
		Candidate: state.Candidate,
		Results:   results,
		Analysis:  s.analyzer.Analyze(results),
	}, nil
}

// Complete finalizes a finished interview: analysis, recommendations, saved
// reports and the completed event. Repeated calls return the first outcome.
func (s *interviewService) Complete(ctx context.Context, sessionID string) (resp *CompleteResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "complete_interview", sessionID)
	defer func() { op.LogResult(err) }()

	unlock := s.locks.acquire(sessionID)
	defer unlock()

	if done, ok := s.finalized.Load(sessionID); ok {
		return done.(*CompleteResponse), nil
	}

	_, state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Status != models.InterviewCompleted || state.CompletedAt == nil {
		return nil, ErrInterviewNotCompleted
	}

	aggregate := s.analyzer.Analyze(state.Results)
	var aiRecommendations []string
	if s.deps.Collaborator != nil {
		aiRecommendations = s.deps.Collaborator.Recommendations(ctx, state.Results)
	}

	resp = &CompleteResponse{
		SessionID:         sessionID,
		Candidate:         state.Candidate,
		Analysis:          aggregate,
		AIRecommendations: aiRecommendations,
		CompletedAt:       *state.CompletedAt,
	}

	doc := s.reporter.Build(state.Candidate, state.Results, aggregate, aiRecommendations)
	if s.deps.ReportsDir != "" {
		for _, format := range []report.Format{report.FormatJSON, report.FormatHTML} {
			path, err := s.reporter.Save(s.deps.ReportsDir, format, doc)
			if err != nil {
				s.logger.Error("Failed to save report", "session_id", sessionID, "format", format, "error", err)
				continue
			}
			resp.ReportFiles = append(resp.ReportFiles, path)
		}
	}
	if s.deps.Reports != nil {
		if err := s.persistReport(ctx, sessionID, state, aggregate, aiRecommendations); err != nil {
			return nil, err
		}
	}

	s.deps.Metrics.IncrementInterviewsCompleted()
	if aggregate.Summary != nil {
		s.publish(ctx, events.NewInterviewCompletedEvent(sessionID, state.Candidate, *aggregate.Summary, *state.CompletedAt))
	}
	s.finalized.Store(sessionID, resp)

	s.logger.Info("Interview completed",
		"session_id", sessionID,
		"questions_answered", len(state.Results),
		"overall", aggregateOverall(aggregate))
	return resp, nil
}

func (s *interviewService) Export(ctx context.Context, sessionID, format string) (*ExportResponse, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReportFormat, format)
	}

	_, state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var aiRecommendations []string
	if done, ok := s.finalized.Load(sessionID); ok {
		aiRecommendations = done.(*CompleteResponse).AIRecommendations
	}
	doc := s.reporter.Build(state.Candidate, state.Results, s.analyzer.Analyze(state.Results), aiRecommendations)

	data, err := s.reporter.Render(f, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return &ExportResponse{
		Format:      f,
		ContentType: f.ContentType(),
		Filename:    report.Filename(state.Candidate.Name, doc.Metadata.GeneratedAt, f),
		Data:        data,
	}, nil
}

// Abandon drops the session. An in-progress interview emits an abandoned event.
func (s *interviewService) Abandon(ctx context.Context, sessionID string) (err error) {
	op := s.opLogger.WithOperation(ctx, "abandon_interview", sessionID)
	defer func() { op.LogResult(err) }()

	unlock := s.locks.acquire(sessionID)
	defer unlock()

	_, state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.deps.Store.Remove(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to remove interview session: %w", err)
	}
	s.finalized.Delete(sessionID)

	if state.IsActive() {
		s.deps.Metrics.IncrementInterviewsAbandoned()
		s.publish(ctx, events.NewInterviewAbandonedEvent(sessionID, len(state.Results), s.now()))
	}
	return nil
}

// ===== HELPERS =====

func (s *interviewService) newEngine(asked ...string) *interview.Engine {
	return interview.NewEngine(
		questions.NewExcludingSource(s.deps.Questions, asked...),
		s.deps.Scorer,
		interview.Config{
			MaxQuestions: s.deps.Settings.Interview().MaxQuestions,
			Policy:       s.deps.Settings.StartingPolicy(),
			Now:          s.now,
		},
	)
}

// load rehydrates an engine from the session store.
func (s *interviewService) load(ctx context.Context, sessionID string) (*interview.Engine, *models.InterviewState, error) {
	state, err := s.deps.Store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("failed to load interview session: %w", err)
	}

	asked := make([]string, 0, len(state.AskedQuestions))
	for _, q := range state.AskedQuestions {
		asked = append(asked, q.ID)
	}
	engine := s.newEngine(asked...)
	engine.Restore(state)
	return engine, state, nil
}

func (s *interviewService) followUp(ctx context.Context, sessionID string, q models.Question, answer string) string {
	if s.deps.Collaborator == nil {
		return ""
	}
	text, err := s.deps.Collaborator.Followup(ctx, q, answer)
	if err != nil {
		s.logger.Warn("Follow-up generation failed", "session_id", sessionID, "question_id", q.ID, "error", err)
		return ""
	}
	return text
}

func (s *interviewService) persistReport(ctx context.Context, sessionID string, state *models.InterviewState, aggregate models.AggregateAnalysis, aiRecommendations []string) error {
	results, err := json.Marshal(state.Results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	analysisJSON, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	if aiRecommendations == nil {
		aiRecommendations = []string{}
	}
	recs, err := json.Marshal(aiRecommendations)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}

	record := &models.InterviewReport{
		SessionID:       sessionID,
		CandidateName:   state.Candidate.Name,
		CandidateEmail:  state.Candidate.Email,
		Role:            state.Candidate.Role,
		ExperienceLevel: state.Candidate.ExperienceLevel,
		Domain:          state.Candidate.Domain,
		QuestionCount:   len(state.Results),
		Results:         datatypes.JSON(results),
		Analysis:        datatypes.JSON(analysisJSON),
		Recommendations: datatypes.JSON(recs),
		StartedAt:       state.StartedAt,
		CompletedAt:     *state.CompletedAt,
	}
	if aggregate.Summary != nil {
		record.OverallScore = aggregate.Summary.Score
		record.OverallLevel = aggregate.Summary.OverallLevel
	}

	if err := s.deps.Reports.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to persist interview report: %w", err)
	}
	return nil
}

// publish never fails the calling operation.
func (s *interviewService) publish(ctx context.Context, event *events.InterviewEvent) {
	if err := s.deps.Publisher.PublishInterviewEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish interview event",
			"session_id", event.SessionID,
			"event_type", event.Type,
			"error", utils.TruncateForLog(err.Error(), 200))
	}
}

func aggregateOverall(a models.AggregateAnalysis) float64 {
	if a.AggregateScores == nil {
		return 0
	}
	return a.AggregateScores.Overall
}
