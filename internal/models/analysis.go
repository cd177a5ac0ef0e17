package models

import (
	"time"

	"gorm.io/datatypes"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type AggregateScores struct {
	Clarity      float64 `json:"clarity"`
	Accuracy     float64 `json:"accuracy"`
	Completeness float64 `json:"completeness"`
	Confidence   float64 `json:"confidence"`
	Overall      float64 `json:"overall"`
}

func (a AggregateScores) Get(d Dimension) float64 {
	switch d {
	case DimensionClarity:
		return a.Clarity
	case DimensionAccuracy:
		return a.Accuracy
	case DimensionCompleteness:
		return a.Completeness
	case DimensionConfidence:
		return a.Confidence
	default:
		return 0
	}
}

type DimensionStats struct {
	Average     float64 `json:"average"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Consistency float64 `json:"consistency"`
	Trend       Trend   `json:"trend"`
}

type ConsistencyReport struct {
	Score          float64  `json:"score"`
	StdDev         *float64 `json:"std_dev,omitempty"`
	Interpretation string   `json:"interpretation"`
}

type AnalysisSummary struct {
	OverallLevel      string  `json:"overall_level"`
	Score             float64 `json:"score"`
	QuestionsAnswered int     `json:"questions_answered"`
	Interpretation    string  `json:"interpretation"`
}

// AggregateAnalysis is derived entirely from a ResultRecord sequence.
// Pointer sections are nil for the empty analysis.
type AggregateAnalysis struct {
	AggregateScores   *AggregateScores             `json:"aggregate_scores"`
	DimensionAnalysis map[Dimension]DimensionStats `json:"dimension_analysis"`
	Patterns          []string                     `json:"patterns"`
	Consistency       *ConsistencyReport           `json:"consistency"`
	Recommendations   []string                     `json:"recommendations"`
	Summary           *AnalysisSummary             `json:"summary"`
}

// InterviewReport is the persisted record of a completed interview.
type InterviewReport struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	SessionID       string         `json:"session_id" gorm:"uniqueIndex;size:64;not null"`
	CandidateName   string         `json:"candidate_name" gorm:"size:200;not null"`
	CandidateEmail  string         `json:"candidate_email" gorm:"size:255;index"`
	Role            string         `json:"role" gorm:"size:100;index"`
	ExperienceLevel string         `json:"experience_level" gorm:"size:50"`
	Domain          string         `json:"domain" gorm:"size:100"`
	OverallScore    float64        `json:"overall_score"`
	OverallLevel    string         `json:"overall_level" gorm:"size:50"`
	QuestionCount   int            `json:"question_count"`
	Results         datatypes.JSON `json:"results"`         // []ResultRecord
	Analysis        datatypes.JSON `json:"analysis"`        // AggregateAnalysis
	Recommendations datatypes.JSON `json:"recommendations"` // []string from the LLM collaborator
	StartedAt       time.Time      `json:"started_at"`
	CompletedAt     time.Time      `json:"completed_at" gorm:"index"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (InterviewReport) TableName() string {
	return "interview_reports"
}
