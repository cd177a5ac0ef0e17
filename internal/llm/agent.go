package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/utils"
	"github.com/mitchellh/mapstructure"
)

const (
	NeutralScore   = 60
	TransportScore = 50
)

var FallbackRecommendations = []string{"Review fundamentals", "Practice more", "Build projects"}

// Assessment is a 0-100 evaluation of one answer.
type Assessment struct {
	Score        int    `json:"score" mapstructure:"score"`
	Clarity      int    `json:"clarity" mapstructure:"clarity"`
	Accuracy     int    `json:"accuracy" mapstructure:"accuracy"`
	Completeness int    `json:"completeness" mapstructure:"completeness"`
	Confidence   int    `json:"confidence" mapstructure:"confidence"`
	Feedback     string `json:"feedback" mapstructure:"feedback"`

	// Err is set when the model could not be reached and the scores are a fallback.
	Err error `json:"-" mapstructure:"-"`
}

// Collaborator is the model-backed capability used by the interview service.
type Collaborator interface {
	Followup(ctx context.Context, q models.Question, answer string) (string, error)
	Score(ctx context.Context, q models.Question, answer string) Assessment
	Recommendations(ctx context.Context, results []models.ResultRecord) []string
}

// CallRecorder observes every model call.
type CallRecorder interface {
	RecordLLMCall(kind string, err error)
}

type Agent struct {
	generator Generator
	logger    *slog.Logger
	recorder  CallRecorder
}

func NewAgent(generator Generator, logger *slog.Logger, recorder CallRecorder) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{generator: generator, logger: logger, recorder: recorder}
}

func (a *Agent) generate(ctx context.Context, kind, prompt string) (string, error) {
	out, err := a.generator.GenerateContent(ctx, prompt)
	if a.recorder != nil {
		a.recorder.RecordLLMCall(kind, err)
	}
	if err != nil {
		a.logger.Warn("LLM call failed", "kind", kind, "error", err)
		return "", err
	}
	a.logger.Debug("LLM call completed", "kind", kind, "output", utils.TruncateForLog(out, 200))
	return out, nil
}

func (a *Agent) Followup(ctx context.Context, q models.Question, answer string) (string, error) {
	out, err := a.generate(ctx, "followup", followupPrompt(q, answer))
	if err != nil {
		return "", fmt.Errorf("failed to generate follow-up: %w", err)
	}
	return strings.Trim(strings.TrimSpace(out), `"`), nil
}

// Score never fails: unparseable output yields NeutralScore with the raw text
// as feedback, a failed call yields TransportScore with the error as feedback.
func (a *Agent) Score(ctx context.Context, q models.Question, answer string) Assessment {
	out, err := a.generate(ctx, "score", scorePrompt(q, answer))
	if err != nil {
		return uniformAssessment(TransportScore, err.Error(), err)
	}

	assessment, err := parseAssessment(out)
	if err != nil {
		a.logger.Warn("Unparseable LLM score, using neutral score", "error", err, "output", utils.TruncateForLog(out, 200))
		return uniformAssessment(NeutralScore, out, nil)
	}
	return assessment
}

func (a *Agent) Recommendations(ctx context.Context, results []models.ResultRecord) []string {
	out, err := a.generate(ctx, "recommendations", recommendationsPrompt(results))
	if err != nil {
		return append([]string(nil), FallbackRecommendations...)
	}

	recs, err := parseRecommendations(out)
	if err != nil || len(recs) == 0 {
		a.logger.Warn("Unparseable LLM recommendations, using fallback", "output", utils.TruncateForLog(out, 200))
		return append([]string(nil), FallbackRecommendations...)
	}
	return recs
}

func uniformAssessment(score int, feedback string, err error) Assessment {
	return Assessment{
		Score:        score,
		Clarity:      score,
		Accuracy:     score,
		Completeness: score,
		Confidence:   score,
		Feedback:     feedback,
		Err:          err,
	}
}

func parseAssessment(raw string) (Assessment, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return Assessment{}, fmt.Errorf("parse score response: %w", err)
	}
	if _, ok := data["score"]; !ok {
		return Assessment{}, fmt.Errorf("parse score response: missing score")
	}

	var assessment Assessment
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &assessment,
	})
	if err != nil {
		return Assessment{}, err
	}
	if err := decoder.Decode(data); err != nil {
		return Assessment{}, fmt.Errorf("decode score response: %w", err)
	}

	assessment.Score = clampPercent(assessment.Score)
	assessment.Clarity = clampPercent(assessment.Clarity)
	assessment.Accuracy = clampPercent(assessment.Accuracy)
	assessment.Completeness = clampPercent(assessment.Completeness)
	assessment.Confidence = clampPercent(assessment.Confidence)
	return assessment, nil
}

func parseRecommendations(raw string) ([]string, error) {
	var payload struct {
		Recommendations []string `mapstructure:"recommendations"`
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}
	if err := mapstructure.Decode(data, &payload); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	var out []string
	for _, r := range payload.Recommendations {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// extractJSON strips markdown code fences around a JSON payload.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func clampPercent(v int) int {
	return max(0, min(100, v))
}
