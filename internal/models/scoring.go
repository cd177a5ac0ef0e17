package models

import "time"

type Dimension string

const (
	DimensionClarity      Dimension = "clarity"
	DimensionAccuracy     Dimension = "accuracy"
	DimensionCompleteness Dimension = "completeness"
	DimensionConfidence   Dimension = "confidence"
)

// Dimensions lists the scored dimensions in their canonical order.
var Dimensions = []Dimension{
	DimensionClarity,
	DimensionAccuracy,
	DimensionCompleteness,
	DimensionConfidence,
}

const (
	MinScore = 1
	MaxScore = 5
)

// AnswerMetadata is built fresh for every submission.
type AnswerMetadata struct {
	Timestamp      time.Time `json:"timestamp"`
	ResponseLength int       `json:"response_length"`
	HasFollowUp    bool      `json:"has_follow_up"`
	FollowUpLength int       `json:"follow_up_length"`
}

// DimensionScores holds one 1-5 score per dimension.
type DimensionScores struct {
	Clarity      int `json:"clarity"`
	Accuracy     int `json:"accuracy"`
	Completeness int `json:"completeness"`
	Confidence   int `json:"confidence"`
}

// Get returns the score of a single dimension.
func (s DimensionScores) Get(d Dimension) int {
	switch d {
	case DimensionClarity:
		return s.Clarity
	case DimensionAccuracy:
		return s.Accuracy
	case DimensionCompleteness:
		return s.Completeness
	case DimensionConfidence:
		return s.Confidence
	default:
		return 0
	}
}

// Mean is the arithmetic mean of the four dimensions.
func (s DimensionScores) Mean() float64 {
	return float64(s.Clarity+s.Accuracy+s.Completeness+s.Confidence) / float64(len(Dimensions))
}

type Insights struct {
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

type ScoreResult struct {
	Scores   DimensionScores `json:"scores"`
	Overall  float64         `json:"overall"`
	Insights Insights        `json:"insights"`
}

// NewScoreResult computes Overall from scores.
func NewScoreResult(scores DimensionScores, insights Insights) ScoreResult {
	return ScoreResult{
		Scores:   scores,
		Overall:  scores.Mean(),
		Insights: insights,
	}
}
