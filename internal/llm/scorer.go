package llm

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

// InsightSource supplies strengths and gaps for a set of 1-5 scores.
type InsightSource interface {
	ScoreResponse(answer string, question models.Question, meta models.AnswerMetadata) models.ScoreResult
	GenerateInsights(answer string, question models.Question, scores models.DimensionScores) models.Insights
}

// Scorer adapts a Collaborator to the interview scorer contract. Percent
// scores are mapped onto the 1-5 scale; when the model is unreachable the
// heuristic engine scores the answer instead.
type Scorer struct {
	collaborator Collaborator
	heuristic    InsightSource
	timeout      time.Duration
	logger       *slog.Logger
}

func AsScorer(c Collaborator, heuristic InsightSource, timeout time.Duration, logger *slog.Logger) *Scorer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{collaborator: c, heuristic: heuristic, timeout: timeout, logger: logger}
}

func (s *Scorer) ScoreResponse(answer string, question models.Question, meta models.AnswerMetadata) models.ScoreResult {
	return s.ScoreResponseContext(context.Background(), answer, question, meta)
}

// ScoreResponseContext bounds the model call by ctx and the scorer timeout.
// Blank answers never reach the model and always score the minimum.
func (s *Scorer) ScoreResponseContext(ctx context.Context, answer string, question models.Question, meta models.AnswerMetadata) models.ScoreResult {
	if strings.TrimSpace(answer) == "" {
		return s.heuristic.ScoreResponse(answer, question, meta)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assessment := s.collaborator.Score(ctx, question, answer)
	if assessment.Err != nil {
		s.logger.Warn("LLM scoring unavailable, using heuristic scoring", "question_id", question.ID, "error", assessment.Err)
		return s.heuristic.ScoreResponse(answer, question, meta)
	}

	scores := models.DimensionScores{
		Clarity:      PercentToScale(assessment.Clarity),
		Accuracy:     PercentToScale(assessment.Accuracy),
		Completeness: PercentToScale(assessment.Completeness),
		Confidence:   PercentToScale(assessment.Confidence),
	}
	return models.NewScoreResult(scores, s.heuristic.GenerateInsights(answer, question, scores))
}

// PercentToScale maps 0-100 onto 1-5: 0 -> 1, 50 -> 3, 100 -> 5.
func PercentToScale(percent int) int {
	scaled := 1 + int(math.Round(float64(clampPercent(percent))*4/100))
	return max(models.MinScore, min(models.MaxScore, scaled))
}
