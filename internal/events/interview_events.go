package events

import (
	"time"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/google/uuid"
)

type EventType string

const (
	EventInterviewStarted   EventType = "interview.started"
	EventAnswerScored       EventType = "interview.answer_scored"
	EventInterviewCompleted EventType = "interview.completed"
	EventInterviewAbandoned EventType = "interview.abandoned"
)

const (
	eventSource  = "interview-service"
	eventVersion = "1.0"
)

// InterviewEvent is the envelope for every interview lifecycle event.
type InterviewEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	SessionID string                 `json:"session_id"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type InterviewStartedEvent struct {
	Candidate       models.Candidate  `json:"candidate"`
	StartingLevel   models.Difficulty `json:"starting_difficulty"`
	FirstQuestionID string            `json:"first_question_id"`
	MaxQuestions    int               `json:"max_questions"`
	StartedAt       time.Time         `json:"started_at"`
}

type AnswerScoredEvent struct {
	QuestionID     string                 `json:"question_id"`
	QuestionNumber int                    `json:"question_number"`
	Scores         models.DimensionScores `json:"scores"`
	Overall        float64                `json:"overall"`
	NextDifficulty models.Difficulty      `json:"next_difficulty,omitempty"`
}

type InterviewCompletedEvent struct {
	Candidate         models.Candidate `json:"candidate"`
	QuestionsAnswered int              `json:"questions_answered"`
	OverallScore      float64          `json:"overall_score"`
	OverallLevel      string           `json:"overall_level"`
	CompletedAt       time.Time        `json:"completed_at"`
}

type InterviewAbandonedEvent struct {
	QuestionsAnswered int       `json:"questions_answered"`
	AbandonedAt       time.Time `json:"abandoned_at"`
}

func newEvent(eventType EventType, sessionID string, data interface{}) *InterviewEvent {
	return &InterviewEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		SessionID: sessionID,
		Data:      data,
	}
}

func NewInterviewStartedEvent(sessionID string, candidate models.Candidate, start models.Difficulty, firstQuestionID string, maxQuestions int, startedAt time.Time) *InterviewEvent {
	return newEvent(EventInterviewStarted, sessionID, InterviewStartedEvent{
		Candidate:       candidate,
		StartingLevel:   start,
		FirstQuestionID: firstQuestionID,
		MaxQuestions:    maxQuestions,
		StartedAt:       startedAt,
	})
}

func NewAnswerScoredEvent(sessionID string, questionNumber int, record models.ResultRecord, next models.Difficulty) *InterviewEvent {
	return newEvent(EventAnswerScored, sessionID, AnswerScoredEvent{
		QuestionID:     record.QuestionID,
		QuestionNumber: questionNumber,
		Scores:         record.Scores,
		Overall:        record.Overall,
		NextDifficulty: next,
	})
}

func NewInterviewCompletedEvent(sessionID string, candidate models.Candidate, summary models.AnalysisSummary, completedAt time.Time) *InterviewEvent {
	return newEvent(EventInterviewCompleted, sessionID, InterviewCompletedEvent{
		Candidate:         candidate,
		QuestionsAnswered: summary.QuestionsAnswered,
		OverallScore:      summary.Score,
		OverallLevel:      summary.OverallLevel,
		CompletedAt:       completedAt,
	})
}

func NewInterviewAbandonedEvent(sessionID string, answered int, at time.Time) *InterviewEvent {
	return newEvent(EventInterviewAbandoned, sessionID, InterviewAbandonedEvent{
		QuestionsAnswered: answered,
		AbandonedAt:       at,
	})
}
