package analysis

import (
	"testing"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(clarity, accuracy, completeness, confidence int, overall float64) models.ResultRecord {
	return models.ResultRecord{
		QuestionID: "q",
		ScoreResult: models.ScoreResult{
			Scores: models.DimensionScores{
				Clarity:      clarity,
				Accuracy:     accuracy,
				Completeness: completeness,
				Confidence:   confidence,
			},
			Overall: overall,
		},
	}
}

func TestAnalyze_Empty(t *testing.T) {
	engine := NewEngine()

	for _, results := range [][]models.ResultRecord{nil, {}} {
		analysis := engine.Analyze(results)

		assert.Nil(t, analysis.AggregateScores)
		assert.Empty(t, analysis.DimensionAnalysis)
		assert.Empty(t, analysis.Patterns)
		assert.Nil(t, analysis.Consistency)
		assert.Nil(t, analysis.Summary)
		assert.Equal(t, []string{EmptyRecommendation}, analysis.Recommendations)
	}
}

func TestAnalyze_ThreeAnswers(t *testing.T) {
	results := []models.ResultRecord{
		record(5, 4, 4, 5, 4.5),
		record(3, 4, 3, 4, 3.4),
		record(4, 4, 4, 4, 4.0),
	}

	analysis := NewEngine().Analyze(results)

	require.NotNil(t, analysis.AggregateScores)
	assert.Equal(t, models.AggregateScores{
		Clarity:      4,
		Accuracy:     4,
		Completeness: 3.67,
		Confidence:   4.33,
		Overall:      3.97,
	}, *analysis.AggregateScores)

	assert.Equal(t, models.DimensionStats{Average: 4, Min: 3, Max: 5, Consistency: 4, Trend: models.TrendDeclining},
		analysis.DimensionAnalysis[models.DimensionClarity])
	assert.Equal(t, models.DimensionStats{Average: 4, Min: 4, Max: 4, Consistency: 5, Trend: models.TrendStable},
		analysis.DimensionAnalysis[models.DimensionAccuracy])
	assert.Len(t, analysis.DimensionAnalysis, 4)

	assert.Equal(t, []string{
		"Strongest dimension: Confidence (4.33/5)",
		"Needs improvement: Completeness (3.67/5)",
		"Consistently strong performance",
	}, analysis.Patterns)

	require.NotNil(t, analysis.Consistency)
	assert.Equal(t, 4.45, analysis.Consistency.Score)
	require.NotNil(t, analysis.Consistency.StdDev)
	assert.Equal(t, 0.55, *analysis.Consistency.StdDev)
	assert.Equal(t, "Very consistent performance", analysis.Consistency.Interpretation)

	assert.Equal(t, []string{
		"Good foundation - focus on weak areas to improve further",
		"Improve communication to better convey your technical knowledge",
	}, analysis.Recommendations)

	assert.Equal(t, &models.AnalysisSummary{
		OverallLevel:      "Proficient",
		Score:             3.97,
		QuestionsAnswered: 3,
		Interpretation:    "Candidate demonstrates proficient interview performance",
	}, analysis.Summary)
}

func TestAnalyze_IsIdempotent(t *testing.T) {
	results := []models.ResultRecord{
		record(2, 3, 4, 5, 3.5),
		record(4, 1, 2, 3, 2.5),
	}
	engine := NewEngine()

	first := engine.Analyze(results)
	second := engine.Analyze(results)

	assert.Equal(t, first, second)
	assert.Equal(t, 2.5, results[1].Overall)
}

func TestAnalyze_SingleResult(t *testing.T) {
	analysis := NewEngine().Analyze([]models.ResultRecord{record(3, 3, 3, 3, 3)})

	assert.Equal(t, &models.ConsistencyReport{Score: 0, Interpretation: InsufficientData}, analysis.Consistency)
	assert.Equal(t, []string{
		"Strongest dimension: Clarity (3.0/5)",
		"Needs improvement: Clarity (3.0/5)",
		"Mixed performance with both strengths and areas for growth",
	}, analysis.Patterns)
	for _, d := range models.Dimensions {
		stats := analysis.DimensionAnalysis[d]
		assert.Equal(t, models.TrendStable, stats.Trend)
		assert.Equal(t, 5.0, stats.Consistency)
	}
}

func TestAnalyze_WeakInterview(t *testing.T) {
	analysis := NewEngine().Analyze([]models.ResultRecord{
		record(2, 2, 2, 2, 2),
		record(1, 2, 1, 2, 1.5),
	})

	assert.Equal(t, []string{
		"Strongest dimension: Accuracy (2.0/5)",
		"Needs improvement: Clarity (1.5/5)",
		"Very consistent performance across all questions",
		"Needs significant improvement",
	}, analysis.Patterns)

	assert.Equal(t, []string{
		"Practice structuring your thoughts more clearly before answering",
		"Work on explaining complex concepts in simpler terms",
		"Deepen your technical knowledge in core concepts",
		"Study key terminology and use it correctly in responses",
		"Provide more concrete examples when answering",
		"Consider edge cases and alternative scenarios",
		"Build confidence through practice and preparation",
		"Work on eliminating filler words and hesitations",
		"Significant improvement needed - prioritize technical skill building",
		"Improve communication to better convey your technical knowledge",
	}, analysis.Recommendations)

	assert.Equal(t, "Needs Improvement", analysis.Summary.OverallLevel)
	assert.Equal(t, "Candidate demonstrates needs improvement interview performance", analysis.Summary.Interpretation)
}

func TestAnalyze_VaryingPerformance(t *testing.T) {
	analysis := NewEngine().Analyze([]models.ResultRecord{
		record(1, 1, 1, 1, 1),
		record(5, 5, 5, 5, 5),
	})

	assert.Contains(t, analysis.Patterns, "Performance varies significantly across questions")
	assert.Equal(t, 2.17, analysis.Consistency.Score)
	assert.Equal(t, 2.83, *analysis.Consistency.StdDev)
	assert.Equal(t, "Inconsistent performance", analysis.Consistency.Interpretation)
	assert.Equal(t, models.TrendImproving, analysis.DimensionAnalysis[models.DimensionAccuracy].Trend)
}

func TestAnalyze_TechnicalVersusCommunication(t *testing.T) {
	tests := []struct {
		name     string
		record   models.ResultRecord
		expected string
		closing  string
	}{
		{
			name:     "technical ahead",
			record:   record(2, 5, 3, 2, 3),
			expected: "Stronger in technical knowledge than communication",
			closing:  "Improve communication to better convey your technical knowledge",
		},
		{
			name:     "communication ahead",
			record:   record(5, 2, 3, 5, 3.75),
			expected: "Better at communication than technical depth",
			closing:  "While you're clear, deepen your technical expertise",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := NewEngine().Analyze([]models.ResultRecord{tt.record})

			assert.Equal(t, tt.expected, analysis.Patterns[len(analysis.Patterns)-1])
			assert.Equal(t, tt.closing, analysis.Recommendations[len(analysis.Recommendations)-1])
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{5, "Exceptional"},
		{4.5, "Exceptional"},
		{4.49, "Strong"},
		{4, "Strong"},
		{3, "Proficient"},
		{2.99, "Developing"},
		{2, "Developing"},
		{1.99, "Needs Improvement"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Level(tt.score), "score %v", tt.score)
	}
}

func TestTrend(t *testing.T) {
	assert.Equal(t, models.TrendImproving, trend([]float64{1, 1, 4, 5}))
	assert.Equal(t, models.TrendDeclining, trend([]float64{5, 4, 1}))
	assert.Equal(t, models.TrendStable, trend([]float64{3, 3.5}))
	assert.Equal(t, models.TrendStable, trend([]float64{4}))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "4.5", formatScore(4.5))
	assert.Equal(t, "4.0", formatScore(4))
	assert.Equal(t, "3.67", formatScore(round2(11.0/3)))
}
