package scoring

import (
	"strconv"
	"strings"
	"testing"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatWord(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func distinctWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word" + strconv.Itoa(i)
	}
	return strings.Join(words, " ")
}

func TestScoreResponse_BlankAnswerScoresFloor(t *testing.T) {
	engine := NewEngine()
	question := models.Question{ID: "q1", Text: "Explain classes", KeyPoints: []string{"template", "instance"}}

	for _, answer := range []string{"", "   ", "\n\t  \n"} {
		result := engine.ScoreResponse(answer, question, models.AnswerMetadata{})

		assert.Equal(t, models.DimensionScores{Clarity: 1, Accuracy: 1, Completeness: 1, Confidence: 1}, result.Scores)
		assert.Equal(t, 1.0, result.Overall)
		assert.Equal(t, []string{NoStrengthsPlaceholder}, result.Insights.Strengths)
		assert.Contains(t, result.Insights.Gaps, "Missing discussion of: template, instance")
	}
}

func TestScoreResponse_OverallIsMeanOfDimensions(t *testing.T) {
	engine := NewEngine()
	question := models.Question{KeyPoints: []string{"cache", "eviction", "ttl"}}

	answers := []string{
		"",
		"um",
		"Definitely.",
		"A cache with eviction. However, the ttl matters! For example, an edge case is clock skew.",
		repeatWord("token", 320),
		"I'm not sure, maybe I think it is unclear to me, kind of confusing, you know.",
		"yes yes yes yes yes yes yes yes",
	}

	for _, answer := range answers {
		result := engine.ScoreResponse(answer, question, models.AnswerMetadata{})
		s := result.Scores
		sum := s.Clarity + s.Accuracy + s.Completeness + s.Confidence

		assert.Equal(t, float64(sum)/4, result.Overall, "answer %q", answer)
		for _, d := range models.Dimensions {
			assert.GreaterOrEqual(t, s.Get(d), models.MinScore)
			assert.LessOrEqual(t, s.Get(d), models.MaxScore)
		}
		assert.NotEmpty(t, result.Insights.Strengths)
		assert.NotEmpty(t, result.Insights.Gaps)
	}
}

func TestScoreResponse_FullCoverageLongAnswer(t *testing.T) {
	engine := NewEngine()
	question := models.Question{
		ID:        "oop-1",
		Text:      "What is a class?",
		KeyPoints: []string{"template", "instance", "attributes", "methods"},
	}

	answer := "A class is a template that describes attributes and methods. " +
		"Each object is an instance of the class. For example, a Car class defines wheels. " +
		"The algorithm complexity depends on the architecture and the pattern you choose. " +
		strings.Repeat("The object keeps its own state and exposes behaviour through well named methods. ", 15)
	require.Greater(t, len(strings.Fields(answer)), 200)

	result := engine.ScoreResponse(answer, question, models.AnswerMetadata{})

	assert.Equal(t, 5, result.Scores.Accuracy)
	assert.Equal(t, 5, result.Scores.Completeness)
	assert.NotContains(t, strings.Join(result.Insights.Gaps, "|"), "Missing discussion of")
}

func TestScoreClarity(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		answer   string
		expected int
	}{
		{"short with transition", "However, the design uses caching. It is fast.", 2},
		{"single sentence of good length", repeatWord("token", 25), 4},
		{"trailing period still counts an empty sentence", repeatWord("token", 25) + ".", 4},
		{"run-on sentence", repeatWord("token", 60), 2},
		{"long answer with run-on", repeatWord("token", 310), 3},
		{"too many hesitations", "um uh um uh um uh " + repeatWord("token", 20), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnswerText(tt.answer, nil)
			assert.Equal(t, tt.expected, engine.scoreClarity(a))
		})
	}
}

func TestScoreAccuracy(t *testing.T) {
	engine := NewEngine()
	keyPoints := []string{"cache", "eviction", "ttl", "consistency"}

	tests := []struct {
		name      string
		answer    string
		keyPoints []string
		expected  int
	}{
		{"no key points", "Anything at all", nil, 3},
		{"quarter coverage", "We use a cache.", keyPoints, 2},
		{"half coverage", "A cache with eviction.", keyPoints, 3},
		{"three quarters coverage", "A cache with eviction and TTL.", keyPoints, 4},
		{"full coverage", "cache eviction ttl consistency", keyPoints, 5},
		{"absolutist with full coverage keeps score", "cache eviction ttl consistency, you should never use it", keyPoints, 5},
		{"absolutist with gaps loses a point", "A cache with eviction; you should never skip it", keyPoints, 2},
		{"technical depth bonus", "A cache with eviction, the algorithm pattern and architecture", keyPoints, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnswerText(tt.answer, tt.keyPoints)
			assert.Equal(t, tt.expected, engine.scoreAccuracy(a))
		})
	}
}

func TestScoreCompleteness(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name      string
		answer    string
		keyPoints []string
		expected  int
	}{
		{"under thirty words", repeatWord("token", 10), nil, 2},
		{"under one hundred words", repeatWord("token", 50), nil, 3},
		{"under two hundred words", repeatWord("token", 150), nil, 4},
		{"two hundred words or more", repeatWord("token", 250), nil, 5},
		{"example bonus", repeatWord("token", 10) + " for example", nil, 3},
		{"example and edge case bonus", repeatWord("token", 10) + " for example an edge case", nil, 4},
		{"bonus is capped", repeatWord("token", 250) + " such as a corner case", nil, 5},
		{"low key point coverage", repeatWord("token", 10), []string{"alpha", "beta", "gamma"}, 1},
		{"half coverage is enough", repeatWord("token", 10) + " alpha beta", []string{"alpha", "beta", "gamma", "delta"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnswerText(tt.answer, tt.keyPoints)
			assert.Equal(t, tt.expected, engine.scoreCompleteness(a))
		})
	}
}

func TestScoreCompleteness_MonotonicInWordCount(t *testing.T) {
	engine := NewEngine()
	question := models.Question{KeyPoints: []string{"token"}}

	previous := 0
	for n := 10; n <= 250; n += 5 {
		result := engine.ScoreResponse(repeatWord("token", n), question, models.AnswerMetadata{})
		assert.GreaterOrEqual(t, result.Scores.Completeness, previous, "word count %d", n)
		previous = result.Scores.Completeness
	}
}

func TestScoreConfidence(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		answer   string
		expected int
	}{
		{"no negative signals", "The service scales horizontally.", 4},
		{"single confident phrase", "Definitely.", 4},
		{"two confident phrases", "Definitely, absolutely.", 5},
		{"substrings inside words count", "The maximum minimum is computed.", 2},
		{"single hesitation", "Maybe the service scales.", 3},
		{"uncertainty counts double", "I'm not sure about this.", 2},
		{"many negative signals", "I'm not sure, it is unclear.", 1},
		{"repetitive speech", "yes yes yes yes yes yes", 3},
		{"verbose answer keeps base with two negatives", "maybe maybe " + distinctWords(50), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnswerText(tt.answer, nil)
			assert.Equal(t, tt.expected, engine.scoreConfidence(a))
		})
	}
}

func TestGenerateInsights(t *testing.T) {
	engine := NewEngine()

	t.Run("strengths, gaps and missing key points", func(t *testing.T) {
		question := models.Question{KeyPoints: []string{"cache", "eviction", "TTL"}}
		scores := models.DimensionScores{Clarity: 5, Accuracy: 4, Completeness: 2, Confidence: 3}

		insights := engine.GenerateInsights("We add a CACHE in front", question, scores)

		assert.Equal(t, []string{"Well-organized and clear explanation", "Strong technical knowledge"}, insights.Strengths)
		assert.Equal(t, []string{"Address more aspects and provide examples", "Missing discussion of: eviction, TTL"}, insights.Gaps)
	})

	t.Run("placeholders when nothing qualifies", func(t *testing.T) {
		scores := models.DimensionScores{Clarity: 3, Accuracy: 3, Completeness: 3, Confidence: 3}

		insights := engine.GenerateInsights("fine", models.Question{}, scores)

		assert.Equal(t, []string{NoStrengthsPlaceholder}, insights.Strengths)
		assert.Equal(t, []string{NoGapsPlaceholder}, insights.Gaps)
	})
}

func TestNewEngineWithLexicon(t *testing.T) {
	lexicon := DefaultLexicon()
	lexicon.Transitions = []string{"thus"}
	answer := distinctWords(24) + " thus"
	question := models.Question{ID: "q1", Text: "Explain"}

	custom := NewEngineWithLexicon(lexicon).ScoreResponse(answer, question, models.AnswerMetadata{})
	standard := NewEngine().ScoreResponse(answer, question, models.AnswerMetadata{})

	assert.Equal(t, 5, custom.Scores.Clarity)
	assert.Equal(t, 4, standard.Scores.Clarity)
}
