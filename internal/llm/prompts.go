package llm

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

var defaultConcepts = []string{"understanding", "approach"}

func followupPrompt(q models.Question, answer string) string {
	return fmt.Sprintf(`You are an expert technical interviewer. Based on the candidate's answer, generate ONE concise follow-up question.

Question: %s
Candidate Answer: %s
Context: %s

Generate a follow-up that:
1. Probes deeper into their understanding
2. Tests edge cases or advanced concepts
3. Is clear and specific

Respond with ONLY the follow-up question.`, q.Text, answer, q.Context)
}

func scorePrompt(q models.Question, answer string) string {
	concepts := q.KeyPoints
	if len(concepts) == 0 {
		concepts = defaultConcepts
	}
	return fmt.Sprintf(`Score this technical answer 0-100.

Question: %s
Answer: %s
Expected: %s

Evaluate clarity, accuracy, completeness, confidence (25%% each).

Respond in JSON:
{"score": <int>, "clarity": <int>, "accuracy": <int>, "completeness": <int>, "confidence": <int>, "feedback": "<string>"}`,
		q.Text, answer, strings.Join(concepts, ", "))
}

// recommendationsPrompt reports the average overall score on a 0-100 scale.
func recommendationsPrompt(results []models.ResultRecord) string {
	var avg float64
	if len(results) > 0 {
		var sum float64
		for _, r := range results {
			sum += r.Overall
		}
		avg = sum / float64(len(results)) * 20
	}
	return fmt.Sprintf(`Based on interview (avg score %.0f/100), give 3 actionable recommendations.

Respond in JSON:
{"recommendations": ["rec1", "rec2", "rec3"]}`, avg)
}
