// Package interview drives a single adaptive interview from the first question
// to completion.
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-service/internal/difficulty"
	"github.com/SAP-F-2025/interview-service/internal/models"
)

const DefaultMaxQuestions = 10

var (
	ErrNoActiveInterview   = errors.New("no active interview")
	ErrNoQuestionAvailable = errors.New("no question available")
)

// QuestionSource supplies questions. A nil question with a nil error means
// nothing matches the role and difficulty.
type QuestionSource interface {
	GetQuestion(ctx context.Context, role string, d models.Difficulty) (*models.Question, error)
	GetAvailableDifficulties(ctx context.Context, role string) ([]models.Difficulty, error)
}

// Scorer turns an answer into dimension scores. The heuristic scoring engine and
// the LLM-backed scorer both satisfy it.
type Scorer interface {
	ScoreResponse(answer string, question models.Question, meta models.AnswerMetadata) models.ScoreResult
}

// ContextScorer is implemented by scorers that block on remote calls. The engine
// hands them the caller's context so a cancelled request stops the call.
type ContextScorer interface {
	ScoreResponseContext(ctx context.Context, answer string, question models.Question, meta models.AnswerMetadata) models.ScoreResult
}

type Config struct {
	MaxQuestions int
	Policy       difficulty.Policy
	Now          func() time.Time
}

type StartResult struct {
	Candidate      models.Candidate `json:"candidate"`
	Question       *models.Question `json:"question"`
	QuestionNumber int              `json:"question_number"`
	TotalQuestions int              `json:"total_questions"`
}

type SubmitResult struct {
	Status         models.InterviewStatus `json:"status"`
	Result         models.ResultRecord    `json:"result"`
	NextQuestion   *models.Question       `json:"next_question,omitempty"`
	QuestionNumber int                    `json:"question_number,omitempty"`
	TotalQuestions int                    `json:"total_questions"`
	Results        []models.ResultRecord  `json:"results,omitempty"`
}

func (r *SubmitResult) Completed() bool {
	return r.Status == models.InterviewCompleted
}

// Engine owns one interview. It is not safe for concurrent use; callers
// serialize access per interview.
type Engine struct {
	questions    QuestionSource
	scorer       Scorer
	policy       difficulty.Policy
	maxQuestions int
	now          func() time.Time
	state        *models.InterviewState
}

func NewEngine(questions QuestionSource, scorer Scorer, cfg Config) *Engine {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	if cfg.Policy == nil {
		cfg.Policy = difficulty.DefaultPolicy()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		questions:    questions,
		scorer:       scorer,
		policy:       cfg.Policy,
		maxQuestions: cfg.MaxQuestions,
		now:          cfg.Now,
	}
}

// Initialize starts a new interview, replacing any previous state.
// The state is only created once a first question has been found.
func (e *Engine) Initialize(ctx context.Context, candidate models.Candidate) (*StartResult, error) {
	start := e.policy.StartingDifficulty(candidate.ExperienceLevel)

	first, err := e.selectQuestion(ctx, candidate.Role, start)
	if err != nil {
		return nil, err
	}

	e.state = &models.InterviewState{
		Candidate:         candidate,
		Results:           []models.ResultRecord{},
		AskedQuestions:    []models.Question{*first},
		CurrentDifficulty: start,
		MaxQuestions:      e.maxQuestions,
		Status:            models.InterviewInProgress,
		StartedAt:         e.now(),
	}

	return &StartResult{
		Candidate:      candidate,
		Question:       first.Clone(),
		QuestionNumber: 1,
		TotalQuestions: e.maxQuestions,
	}, nil
}

// SubmitAnswer scores the answer to the current question and advances the interview.
// It fails with ErrNoActiveInterview, without touching any state, when there is no
// interview or the interview is already completed.
func (e *Engine) SubmitAnswer(ctx context.Context, answer string, followUp *string) (*SubmitResult, error) {
	if !e.state.IsActive() {
		return nil, ErrNoActiveInterview
	}
	s := e.state

	current, err := e.currentOrFetch(ctx)
	if err != nil {
		return nil, err
	}

	meta := models.AnswerMetadata{
		Timestamp:      e.now(),
		ResponseLength: len(strings.Fields(answer)),
	}
	if followUp != nil && *followUp != "" {
		meta.HasFollowUp = true
		meta.FollowUpLength = len(strings.Fields(*followUp))
	}

	score := e.score(ctx, answer, *current, meta)

	record := models.ResultRecord{
		QuestionID:       current.ID,
		QuestionText:     current.Text,
		FollowUpQuestion: current.FollowUp,
		Answer:           answer,
		FollowUpAnswer:   followUp,
		ScoreResult:      score,
		Timestamp:        meta.Timestamp,
	}
	s.Results = append(s.Results, record)

	s.CurrentDifficulty = difficulty.Adapt(s.CurrentDifficulty, score.Overall)
	s.CurrentQuestionIndex++

	if s.CurrentQuestionIndex >= s.MaxQuestions {
		completedAt := e.now()
		s.Status = models.InterviewCompleted
		s.CompletedAt = &completedAt

		return &SubmitResult{
			Status:         models.InterviewCompleted,
			Result:         record,
			TotalQuestions: s.MaxQuestions,
			Results:        e.Results(),
		}, nil
	}

	next, err := e.selectQuestion(ctx, s.Candidate.Role, s.CurrentDifficulty)
	if err != nil {
		// The answer is kept; the next submission retries the lookup.
		return nil, fmt.Errorf("answer recorded but next question unavailable: %w", err)
	}
	s.AskedQuestions = append(s.AskedQuestions, *next)

	return &SubmitResult{
		Status:         models.InterviewInProgress,
		Result:         record,
		NextQuestion:   next.Clone(),
		QuestionNumber: s.CurrentQuestionIndex + 1,
		TotalQuestions: s.MaxQuestions,
	}, nil
}

func (e *Engine) score(ctx context.Context, answer string, q models.Question, meta models.AnswerMetadata) models.ScoreResult {
	if cs, ok := e.scorer.(ContextScorer); ok {
		return cs.ScoreResponseContext(ctx, answer, q, meta)
	}
	return e.scorer.ScoreResponse(answer, q, meta)
}

// CurrentQuestion returns nil when there is no interview or no pending question.
func (e *Engine) CurrentQuestion() *models.Question {
	if e.state == nil {
		return nil
	}
	idx := e.state.CurrentQuestionIndex
	if idx < 0 || idx >= len(e.state.AskedQuestions) {
		return nil
	}
	return e.state.AskedQuestions[idx].Clone()
}

func (e *Engine) Status() models.InterviewStatusView {
	if e.state == nil {
		return models.InterviewStatusView{Status: models.InterviewNone}
	}
	s := e.state
	candidate := s.Candidate
	startedAt := s.StartedAt
	view := models.InterviewStatusView{
		Status:             s.Status,
		Candidate:          &candidate,
		QuestionsCompleted: s.CurrentQuestionIndex,
		TotalQuestions:     s.MaxQuestions,
		CurrentDifficulty:  s.CurrentDifficulty,
		StartedAt:          &startedAt,
		ResultsCount:       len(s.Results),
	}
	if s.CompletedAt != nil {
		completedAt := *s.CompletedAt
		view.CompletedAt = &completedAt
	}
	return view
}

// Results returns a copy of the recorded results; empty when there is no interview.
func (e *Engine) Results() []models.ResultRecord {
	if e.state == nil {
		return []models.ResultRecord{}
	}
	return append([]models.ResultRecord{}, e.state.Results...)
}

// State returns a snapshot of the interview, or nil.
func (e *Engine) State() *models.InterviewState {
	return e.state.Clone()
}

// Restore rehydrates the engine from a snapshot taken with State.
func (e *Engine) Restore(state *models.InterviewState) {
	e.state = state.Clone()
}

func (e *Engine) currentOrFetch(ctx context.Context) (*models.Question, error) {
	if q := e.CurrentQuestion(); q != nil {
		return q, nil
	}
	q, err := e.selectQuestion(ctx, e.state.Candidate.Role, e.state.CurrentDifficulty)
	if err != nil {
		return nil, err
	}
	e.state.AskedQuestions = append(e.state.AskedQuestions, *q)
	return q.Clone(), nil
}

// selectQuestion falls back to the first difficulty the source lists for the role.
func (e *Engine) selectQuestion(ctx context.Context, role string, d models.Difficulty) (*models.Question, error) {
	q, err := e.questions.GetQuestion(ctx, role, d)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if q != nil {
		return q, nil
	}

	available, err := e.questions.GetAvailableDifficulties(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list difficulties: %w", err)
	}
	if len(available) > 0 {
		q, err = e.questions.GetQuestion(ctx, role, available[0])
		if err != nil {
			return nil, fmt.Errorf("failed to get question: %w", err)
		}
		if q != nil {
			return q, nil
		}
	}

	return nil, fmt.Errorf("%w: role %q", ErrNoQuestionAvailable, role)
}
