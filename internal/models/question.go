package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Difficulty string

const (
	DifficultyEasy         Difficulty = "Easy"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyHard         Difficulty = "Hard"
	DifficultyExpert       Difficulty = "Expert"
)

// DifficultyLadder is the ordered sequence used for adaptive question selection.
var DifficultyLadder = []Difficulty{
	DifficultyEasy,
	DifficultyIntermediate,
	DifficultyHard,
	DifficultyExpert,
}

// Rank returns the position of d on the ladder, or -1 if d is not a known level.
func (d Difficulty) Rank() int {
	for i, level := range DifficultyLadder {
		if level == d {
			return i
		}
	}
	return -1
}

func (d Difficulty) IsValid() bool {
	return d.Rank() >= 0
}

// Question is an interview prompt owned by a question source.
type Question struct {
	ID         string     `json:"id" yaml:"id" validate:"required"`
	Text       string     `json:"text" yaml:"text" validate:"required"`
	Domain     string     `json:"domain,omitempty" yaml:"domain,omitempty"`
	Role       string     `json:"role,omitempty" yaml:"role,omitempty" validate:"required"`
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty" validate:"required"`
	KeyPoints  []string   `json:"key_points" yaml:"key_points" validate:"dive,required"`
	FollowUp   string     `json:"follow_up,omitempty" yaml:"follow_up,omitempty"`
	Context    string     `json:"context,omitempty" yaml:"context,omitempty"`
}

// Clone returns a copy that does not share the key point slice with q.
func (q Question) Clone() *Question {
	c := q
	if q.KeyPoints != nil {
		c.KeyPoints = append([]string(nil), q.KeyPoints...)
	}
	return &c
}

// QuestionRecord is the database row for a bank question.
type QuestionRecord struct {
	ID         string         `json:"id" gorm:"primaryKey;size:64"`
	Role       string         `json:"role" gorm:"not null;size:100;index:idx_role_difficulty"`
	Difficulty Difficulty     `json:"difficulty" gorm:"not null;size:20;index:idx_role_difficulty"`
	Domain     string         `json:"domain" gorm:"size:100"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	KeyPoints  datatypes.JSON `json:"key_points"` // []string
	FollowUp   string         `json:"follow_up" gorm:"type:text"`
	Context    string         `json:"context" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (QuestionRecord) TableName() string {
	return "interview_questions"
}

// ToQuestion converts the row into the domain question.
func (r QuestionRecord) ToQuestion() (*Question, error) {
	var keyPoints []string
	if len(r.KeyPoints) > 0 {
		if err := json.Unmarshal(r.KeyPoints, &keyPoints); err != nil {
			return nil, err
		}
	}
	return &Question{
		ID:         r.ID,
		Text:       r.Text,
		Domain:     r.Domain,
		Role:       r.Role,
		Difficulty: r.Difficulty,
		KeyPoints:  keyPoints,
		FollowUp:   r.FollowUp,
		Context:    r.Context,
	}, nil
}

// NewQuestionRecord builds a row from a domain question.
func NewQuestionRecord(q Question) (*QuestionRecord, error) {
	keyPoints := q.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}
	raw, err := json.Marshal(keyPoints)
	if err != nil {
		return nil, err
	}
	return &QuestionRecord{
		ID:         q.ID,
		Role:       q.Role,
		Difficulty: q.Difficulty,
		Domain:     q.Domain,
		Text:       q.Text,
		KeyPoints:  datatypes.JSON(raw),
		FollowUp:   q.FollowUp,
		Context:    q.Context,
	}, nil
}
