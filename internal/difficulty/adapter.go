// Package difficulty moves an interview along the difficulty ladder.
package difficulty

import "github.com/SAP-F-2025/interview-service/internal/models"

const (
	PromoteThreshold = 4.5
	DemoteThreshold  = 2.5
)

// Adapt returns the difficulty for the next question given the latest overall score.
// Unknown difficulties are returned unchanged.
func Adapt(current models.Difficulty, overall float64) models.Difficulty {
	idx := current.Rank()
	if idx < 0 {
		return current
	}

	switch {
	case overall >= PromoteThreshold && idx < len(models.DifficultyLadder)-1:
		return models.DifficultyLadder[idx+1]
	case overall < DemoteThreshold && idx > 0:
		return models.DifficultyLadder[idx-1]
	default:
		return current
	}
}

// Policy maps an experience level to the difficulty an interview starts at.
type Policy map[string]models.Difficulty

func DefaultPolicy() Policy {
	return Policy{
		"Intern":    models.DifficultyEasy,
		"Junior":    models.DifficultyEasy,
		"Mid-level": models.DifficultyIntermediate,
		"Senior":    models.DifficultyHard,
		"Lead":      models.DifficultyExpert,
	}
}

// StartingDifficulty falls back to Easy for unrecognized levels.
func (p Policy) StartingDifficulty(experienceLevel string) models.Difficulty {
	if d, ok := p[experienceLevel]; ok && d.IsValid() {
		return d
	}
	return models.DifficultyEasy
}

// Merge returns a copy of p with overrides applied on top.
func (p Policy) Merge(overrides map[string]models.Difficulty) Policy {
	merged := make(Policy, len(p)+len(overrides))
	for level, d := range p {
		merged[level] = d
	}
	for level, d := range overrides {
		if d.IsValid() {
			merged[level] = d
		}
	}
	return merged
}
