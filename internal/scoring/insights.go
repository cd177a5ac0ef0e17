package scoring

import (
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

const (
	strengthThreshold = 4
	gapThreshold      = 3

	NoStrengthsPlaceholder = "Adequate response"
	NoGapsPlaceholder      = "No significant gaps"
)

var strengthMessages = map[models.Dimension]string{
	models.DimensionClarity:      "Well-organized and clear explanation",
	models.DimensionAccuracy:     "Strong technical knowledge",
	models.DimensionCompleteness: "Comprehensive answer with examples",
	models.DimensionConfidence:   "Confident and decisive response",
}

var gapMessages = map[models.Dimension]string{
	models.DimensionClarity:      "Could improve organization and clarity",
	models.DimensionAccuracy:     "Consider deeper technical understanding",
	models.DimensionCompleteness: "Address more aspects and provide examples",
	models.DimensionConfidence:   "Speak with more confidence and certainty",
}

// GenerateInsights derives strengths and gaps from already computed scores.
// Neither list is ever empty.
func (e *Engine) GenerateInsights(answer string, question models.Question, scores models.DimensionScores) models.Insights {
	return e.generateInsights(newAnswerText(answer, question.KeyPoints), scores)
}

func (e *Engine) generateInsights(a answerText, scores models.DimensionScores) models.Insights {
	var strengths, gaps []string

	for _, d := range models.Dimensions {
		if scores.Get(d) >= strengthThreshold {
			strengths = append(strengths, strengthMessages[d])
		}
	}
	for _, d := range models.Dimensions {
		if scores.Get(d) < gapThreshold {
			gaps = append(gaps, gapMessages[d])
		}
	}

	if missing := a.missingKeyPoints(); len(missing) > 0 {
		gaps = append(gaps, "Missing discussion of: "+strings.Join(missing, ", "))
	}

	if len(strengths) == 0 {
		strengths = []string{NoStrengthsPlaceholder}
	}
	if len(gaps) == 0 {
		gaps = []string{NoGapsPlaceholder}
	}

	return models.Insights{Strengths: strengths, Gaps: gaps}
}

func (a answerText) missingKeyPoints() []string {
	var missing []string
	for _, p := range a.keyPoints {
		if !strings.Contains(a.lower, strings.ToLower(p)) {
			missing = append(missing, p)
		}
	}
	return missing
}
