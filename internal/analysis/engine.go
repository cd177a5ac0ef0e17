// Package analysis derives aggregate metrics, patterns and recommendations
// from the results of an interview.
package analysis

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

const (
	EmptyRecommendation   = "Complete the interview to receive analysis"
	GenericRecommendation = "Continue practicing interview techniques"
	InsufficientData      = "Insufficient data for consistency analysis"
)

var lowDimensionAdvice = map[models.Dimension][2]string{
	models.DimensionClarity: {
		"Practice structuring your thoughts more clearly before answering",
		"Work on explaining complex concepts in simpler terms",
	},
	models.DimensionAccuracy: {
		"Deepen your technical knowledge in core concepts",
		"Study key terminology and use it correctly in responses",
	},
	models.DimensionCompleteness: {
		"Provide more concrete examples when answering",
		"Consider edge cases and alternative scenarios",
	},
	models.DimensionConfidence: {
		"Build confidence through practice and preparation",
		"Work on eliminating filler words and hesitations",
	},
}

// Engine is stateless; Analyze returns the same analysis for the same input.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Analyze(results []models.ResultRecord) models.AggregateAnalysis {
	if len(results) == 0 {
		return Empty()
	}

	agg := aggregate(results)

	return models.AggregateAnalysis{
		AggregateScores:   &agg,
		DimensionAnalysis: dimensionAnalysis(results),
		Patterns:          patterns(results, agg),
		Consistency:       consistency(results),
		Recommendations:   recommendations(agg),
		Summary:           summary(agg, len(results)),
	}
}

// Empty is the analysis of an interview without results.
func Empty() models.AggregateAnalysis {
	return models.AggregateAnalysis{
		DimensionAnalysis: map[models.Dimension]models.DimensionStats{},
		Patterns:          []string{},
		Recommendations:   []string{EmptyRecommendation},
	}
}

func dimensionValues(results []models.ResultRecord, d models.Dimension) []float64 {
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = float64(r.Scores.Get(d))
	}
	return values
}

func overallValues(results []models.ResultRecord) []float64 {
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.Overall
	}
	return values
}

func aggregate(results []models.ResultRecord) models.AggregateScores {
	return models.AggregateScores{
		Clarity:      round2(mean(dimensionValues(results, models.DimensionClarity))),
		Accuracy:     round2(mean(dimensionValues(results, models.DimensionAccuracy))),
		Completeness: round2(mean(dimensionValues(results, models.DimensionCompleteness))),
		Confidence:   round2(mean(dimensionValues(results, models.DimensionConfidence))),
		Overall:      round2(mean(overallValues(results))),
	}
}

func dimensionAnalysis(results []models.ResultRecord) map[models.Dimension]models.DimensionStats {
	out := make(map[models.Dimension]models.DimensionStats, len(models.Dimensions))
	for _, d := range models.Dimensions {
		values := dimensionValues(results, d)
		stats := models.DimensionStats{
			Average:     round2(mean(values)),
			Min:         models.MaxScore,
			Max:         models.MinScore,
			Consistency: round2(5 - sampleStdDev(values)),
			Trend:       trend(values),
		}
		for _, r := range results {
			stats.Min = min(stats.Min, r.Scores.Get(d))
			stats.Max = max(stats.Max, r.Scores.Get(d))
		}
		out[d] = stats
	}
	return out
}

// extremes returns the strongest and weakest dimension; ties go to the
// earlier dimension.
func extremes(agg models.AggregateScores) (strongest, weakest models.Dimension) {
	strongest, weakest = models.Dimensions[0], models.Dimensions[0]
	for _, d := range models.Dimensions[1:] {
		if agg.Get(d) > agg.Get(strongest) {
			strongest = d
		}
		if agg.Get(d) < agg.Get(weakest) {
			weakest = d
		}
	}
	return strongest, weakest
}

func dimensionLabel(d models.Dimension) string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func patterns(results []models.ResultRecord, agg models.AggregateScores) []string {
	strongest, weakest := extremes(agg)
	out := []string{
		fmt.Sprintf("Strongest dimension: %s (%s/5)", dimensionLabel(strongest), formatScore(agg.Get(strongest))),
		fmt.Sprintf("Needs improvement: %s (%s/5)", dimensionLabel(weakest), formatScore(agg.Get(weakest))),
	}

	overall := overallValues(results)
	if len(overall) > 1 {
		sd := sampleStdDev(overall)
		switch {
		case sd < 0.5:
			out = append(out, "Very consistent performance across all questions")
		case sd > 1.0:
			out = append(out, "Performance varies significantly across questions")
		}
	}

	var high, low int
	for _, v := range overall {
		if v >= 4 {
			high++
		}
		if v < 3 {
			low++
		}
	}
	threshold := float64(len(results)) * 0.6
	switch {
	case float64(high) > threshold:
		out = append(out, "Consistently strong performance")
	case float64(low) > threshold:
		out = append(out, "Needs significant improvement")
	default:
		out = append(out, "Mixed performance with both strengths and areas for growth")
	}

	technical := agg.Accuracy
	communication := (agg.Clarity + agg.Confidence) / 2
	switch {
	case technical > communication+1:
		out = append(out, "Stronger in technical knowledge than communication")
	case communication > technical+1:
		out = append(out, "Better at communication than technical depth")
	}

	return out
}

func consistency(results []models.ResultRecord) *models.ConsistencyReport {
	if len(results) < 2 {
		return &models.ConsistencyReport{Score: 0, Interpretation: InsufficientData}
	}

	sd := sampleStdDev(overallValues(results))
	score := clamp(5-sd, 1, 5)

	var interpretation string
	switch {
	case score >= 4:
		interpretation = "Very consistent performance"
	case score >= 3:
		interpretation = "Moderately consistent performance"
	default:
		interpretation = "Inconsistent performance"
	}

	stdDev := round2(sd)
	return &models.ConsistencyReport{
		Score:          round2(score),
		StdDev:         &stdDev,
		Interpretation: interpretation,
	}
}

func recommendations(agg models.AggregateScores) []string {
	var out []string
	for _, d := range models.Dimensions {
		if agg.Get(d) < 3 {
			advice := lowDimensionAdvice[d]
			out = append(out, advice[0], advice[1])
		}
	}

	switch {
	case agg.Overall >= 4:
		out = append(out, "Excellent overall performance - maintain this level")
	case agg.Overall >= 3:
		out = append(out, "Good foundation - focus on weak areas to improve further")
	default:
		out = append(out, "Significant improvement needed - prioritize technical skill building")
	}

	if agg.Clarity > agg.Accuracy {
		out = append(out, "While you're clear, deepen your technical expertise")
	} else {
		out = append(out, "Improve communication to better convey your technical knowledge")
	}

	if len(out) == 0 {
		return []string{GenericRecommendation}
	}
	return out
}

// Level maps an overall score to its performance band.
func Level(overall float64) string {
	switch {
	case overall >= 4.5:
		return "Exceptional"
	case overall >= 4:
		return "Strong"
	case overall >= 3:
		return "Proficient"
	case overall >= 2:
		return "Developing"
	default:
		return "Needs Improvement"
	}
}

func summary(agg models.AggregateScores, answered int) *models.AnalysisSummary {
	level := Level(agg.Overall)
	return &models.AnalysisSummary{
		OverallLevel:      level,
		Score:             agg.Overall,
		QuestionsAnswered: answered,
		Interpretation:    fmt.Sprintf("Candidate demonstrates %s interview performance", strings.ToLower(level)),
	}
}
