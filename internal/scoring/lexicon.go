package scoring

import "strings"

// Lexicon holds the phrase lists the heuristics count in an answer.
// All entries are matched as lowercase substrings.
type Lexicon struct {
	Transitions       []string
	Hesitations       []string
	ExtraHesitations  []string
	Uncertainties     []string
	ConfidentPhrases  []string
	TechnicalTerms    []string
	AbsolutistPhrases []string
	ExampleMarkers    []string
	EdgeCaseMarkers   []string
}

// DefaultLexicon returns the phrase lists the engine ships with.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Transitions:      []string{"however", "therefore", "also", "additionally", "moreover", "furthermore"},
		Hesitations:      []string{"um", "uh", "like", "you know", "kind of", "sort of"},
		ExtraHesitations: []string{"maybe", "i think", "i guess"},
		Uncertainties:    []string{"i'm not sure", "not certain", "unclear", "unclear to me", "confused"},
		ConfidentPhrases:  []string{"definitely", "absolutely", "clearly", "obviously", "certain"},
		TechnicalTerms:    []string{"algorithm", "architecture", "pattern", "optimization", "trade-off", "complexity"},
		AbsolutistPhrases: []string{"never use", "always avoid", "should never"},
		ExampleMarkers:    []string{"for example", "e.g.", "for instance", "such as", "like when"},
		EdgeCaseMarkers:   []string{"edge case", "corner case", "boundary", "special case", "exception"},
	}
}

// countAll sums non-overlapping occurrences of every phrase in text.
func countAll(text string, phrases []string) int {
	total := 0
	for _, p := range phrases {
		total += strings.Count(text, p)
	}
	return total
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
