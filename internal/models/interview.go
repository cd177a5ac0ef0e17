package models

import "time"

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"

	// InterviewNone is reported by accessors when no interview has been initialized.
	InterviewNone InterviewStatus = "no_interview"
)

type Candidate struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Email           string `json:"email" validate:"omitempty,email"`
	Role            string `json:"role" validate:"required,role"`
	ExperienceLevel string `json:"experience_level" validate:"required,experience_level"`
	Domain          string `json:"domain" validate:"omitempty,max=100"`
}

// ResultRecord is appended once per answered question and never mutated afterwards.
type ResultRecord struct {
	QuestionID       string  `json:"question_id"`
	QuestionText     string  `json:"question_text"`
	FollowUpQuestion string  `json:"follow_up_question,omitempty"`
	Answer           string  `json:"answer"`
	FollowUpAnswer   *string `json:"follow_up_answer"`
	ScoreResult
	Timestamp time.Time `json:"timestamp"`
}

type InterviewState struct {
	Candidate            Candidate       `json:"candidate"`
	Results              []ResultRecord  `json:"results"`
	AskedQuestions       []Question      `json:"asked_questions"`
	CurrentQuestionIndex int             `json:"current_question_index"`
	CurrentDifficulty    Difficulty      `json:"current_difficulty"`
	MaxQuestions         int             `json:"max_questions"`
	Status               InterviewStatus `json:"status"`
	StartedAt            time.Time       `json:"started_at"`
	CompletedAt          *time.Time      `json:"completed_at,omitempty"`
}

func (s *InterviewState) IsActive() bool {
	return s != nil && s.Status == InterviewInProgress
}

// Clone returns a deep copy suitable for handing out of the owning engine.
func (s *InterviewState) Clone() *InterviewState {
	if s == nil {
		return nil
	}
	c := *s
	c.Results = append([]ResultRecord(nil), s.Results...)
	c.AskedQuestions = make([]Question, len(s.AskedQuestions))
	for i, q := range s.AskedQuestions {
		c.AskedQuestions[i] = *q.Clone()
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// InterviewStatusView is the read-only summary returned by status accessors.
type InterviewStatusView struct {
	Status             InterviewStatus `json:"status"`
	Candidate          *Candidate      `json:"candidate,omitempty"`
	QuestionsCompleted int             `json:"questions_completed"`
	TotalQuestions     int             `json:"total_questions"`
	CurrentDifficulty  Difficulty      `json:"current_difficulty,omitempty"`
	StartedAt          *time.Time      `json:"started_at,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	ResultsCount       int             `json:"results_count"`
}
