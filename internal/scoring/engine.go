// Package scoring rates free-text interview answers on four 1-5 dimensions
// using lexical heuristics.
package scoring

import (
	"regexp"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

// Tuning constants. They are heuristic thresholds, not derived quantities.
const (
	baselineScore = 3

	clarityShortAnswerWords  = 20
	clarityLongAnswerWords   = 300
	clarityMinSentenceLength = 10.0
	clarityMaxSentenceLength = 30.0
	clarityRunOnLength       = 50.0
	clarityMaxHesitations    = 5

	accuracyLowCoverage    = 0.3
	accuracyMediumCoverage = 0.6
	accuracyHighCoverage   = 0.9
	accuracyDepthTerms     = 3

	completenessTier1Words  = 30
	completenessTier2Words  = 100
	completenessTier3Words  = 200
	completenessMinCoverage = 0.5

	confidenceVerboseWords     = 50
	confidenceStrongSignals    = 2
	confidenceManyNegatives    = 3
	confidenceUncertaintyScale = 2
	confidenceDiversityWords   = 5
	confidenceMinUniqueRatio   = 0.6
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Engine is the heuristic scorer. It holds no mutable state and is safe to share.
type Engine struct {
	lexicon Lexicon
}

func NewEngine() *Engine {
	return &Engine{lexicon: DefaultLexicon()}
}

func NewEngineWithLexicon(lexicon Lexicon) *Engine {
	return &Engine{lexicon: lexicon}
}

// ScoreResponse never fails: an empty or whitespace-only answer scores 1 on every dimension.
func (e *Engine) ScoreResponse(answer string, question models.Question, meta models.AnswerMetadata) models.ScoreResult {
	a := newAnswerText(answer, question.KeyPoints)

	scores := models.DimensionScores{
		Clarity:      e.scoreClarity(a),
		Accuracy:     e.scoreAccuracy(a),
		Completeness: e.scoreCompleteness(a),
		Confidence:   e.scoreConfidence(a),
	}

	return models.NewScoreResult(scores, e.generateInsights(a, scores))
}

// answerText caches the derived views of one answer shared by all heuristics.
type answerText struct {
	raw       string
	lower     string
	words     int
	blank     bool
	keyPoints []string
	covered   int
}

func newAnswerText(answer string, keyPoints []string) answerText {
	lower := strings.ToLower(answer)
	covered := 0
	for _, p := range keyPoints {
		if strings.Contains(lower, strings.ToLower(p)) {
			covered++
		}
	}
	return answerText{
		raw:       answer,
		lower:     lower,
		words:     len(strings.Fields(answer)),
		blank:     strings.TrimSpace(answer) == "",
		keyPoints: keyPoints,
		covered:   covered,
	}
}

func (a answerText) sentenceCount() int {
	return len(sentenceBreak.Split(a.raw, -1))
}

func (a answerText) coverage() float64 {
	if len(a.keyPoints) == 0 {
		return 0
	}
	return float64(a.covered) / float64(len(a.keyPoints))
}

func (e *Engine) scoreClarity(a answerText) int {
	if a.blank {
		return models.MinScore
	}

	score := baselineScore

	if a.words < clarityShortAnswerWords {
		score -= 2
	} else if a.words > clarityLongAnswerWords {
		score++
	}

	avgSentence := float64(a.words) / float64(max(a.sentenceCount(), 1))
	if avgSentence > clarityMinSentenceLength && avgSentence < clarityMaxSentenceLength {
		score++
	} else if avgSentence > clarityRunOnLength {
		score--
	}

	if containsAny(a.lower, e.lexicon.Transitions) {
		score++
	}

	if countAll(a.lower, e.lexicon.Hesitations) > clarityMaxHesitations {
		score--
	}

	return clamp(score)
}

func (e *Engine) scoreAccuracy(a answerText) int {
	if a.blank {
		return models.MinScore
	}

	var score int
	switch ratio := a.coverage(); {
	case len(a.keyPoints) == 0:
		score = baselineScore
	case ratio < accuracyLowCoverage:
		score = 2
	case ratio < accuracyMediumCoverage:
		score = 3
	case ratio < accuracyHighCoverage:
		score = 4
	default:
		score = 5
	}

	if countAll(a.lower, e.lexicon.TechnicalTerms) >= accuracyDepthTerms {
		score = min(models.MaxScore, score+1)
	}

	if containsAny(a.lower, e.lexicon.AbsolutistPhrases) && a.covered < len(a.keyPoints) {
		score = max(models.MinScore, score-1)
	}

	return clamp(score)
}

func (e *Engine) scoreCompleteness(a answerText) int {
	if a.blank {
		return models.MinScore
	}

	var score int
	switch {
	case a.words < completenessTier1Words:
		score = 2
	case a.words < completenessTier2Words:
		score = 3
	case a.words < completenessTier3Words:
		score = 4
	default:
		score = 5
	}

	if containsAny(a.lower, e.lexicon.ExampleMarkers) {
		score = min(models.MaxScore, score+1)
	}
	if containsAny(a.lower, e.lexicon.EdgeCaseMarkers) {
		score = min(models.MaxScore, score+1)
	}

	if len(a.keyPoints) > 0 && float64(a.covered) < float64(len(a.keyPoints))*completenessMinCoverage {
		score = max(models.MinScore, score-1)
	}

	return clamp(score)
}

func (e *Engine) scoreConfidence(a answerText) int {
	if a.blank {
		return models.MinScore
	}

	hesitations := countAll(a.lower, e.lexicon.Hesitations) + countAll(a.lower, e.lexicon.ExtraHesitations)
	uncertainties := countAll(a.lower, e.lexicon.Uncertainties)
	confident := countAll(a.lower, e.lexicon.ConfidentPhrases)

	score := 2
	if a.words > confidenceVerboseWords {
		score = 3
	}

	// Two or three negative signals keep the length-based score.
	switch negative := hesitations + uncertainties*confidenceUncertaintyScale; {
	case negative == 0:
		score = 4
	case negative == 1:
		score = 3
	case negative > confidenceManyNegatives:
		score = 1
	}

	if confident >= confidenceStrongSignals {
		score = min(models.MaxScore, score+1)
	}

	words := strings.Fields(a.lower)
	if len(words) > confidenceDiversityWords {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < confidenceMinUniqueRatio {
			score = max(models.MinScore, score-1)
		}
	}

	return clamp(score)
}

func clamp(score int) int {
	return max(models.MinScore, min(models.MaxScore, score))
}
