package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/difficulty"
	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/spf13/viper"
)

// InterviewSettings controls how a single interview runs.
type InterviewSettings struct {
	MaxQuestions            int  `mapstructure:"max_questions" json:"max_questions"`
	MaxFollowupsPerQuestion int  `mapstructure:"max_followups_per_question" json:"max_followups_per_question"`
	RevealScores            bool `mapstructure:"reveal_scores" json:"reveal_scores"`
}

// Settings is the interview catalog: which roles and levels exist, the rubric
// shown to interviewers, and per-interview limits.
type Settings struct {
	RolesList          []string                     `mapstructure:"roles" json:"roles"`
	ExperienceList     []string                     `mapstructure:"experience_levels" json:"experience_levels"`
	DomainList         []string                     `mapstructure:"domains" json:"domains"`
	DifficultyList     []string                     `mapstructure:"difficulty_levels" json:"difficulty_levels"`
	ScoringRubric      map[string]map[string]string `mapstructure:"scoring_rubric" json:"scoring_rubric"`
	InterviewSettings  InterviewSettings            `mapstructure:"interview_settings" json:"interview_settings"`
	StartingDifficulty map[string]string            `mapstructure:"starting_difficulty" json:"starting_difficulty,omitempty"`
}

func setSettingsDefaults(v *viper.Viper) {
	v.SetDefault("roles", []string{"Software Engineer", "Data Scientist", "Product Manager", "DevOps Engineer"})
	v.SetDefault("experience_levels", []string{"Intern", "Junior", "Mid-level", "Senior", "Lead"})
	v.SetDefault("domains", []string{"Backend", "Frontend", "Machine Learning", "Cloud Infrastructure", "System Design"})
	v.SetDefault("difficulty_levels", []string{"Easy", "Intermediate", "Hard", "Expert"})
	v.SetDefault("scoring_rubric", map[string]map[string]string{
		"clarity": {
			"1": "Disorganized or very hard to follow",
			"3": "Understandable with some structure",
			"5": "Well structured, concise and easy to follow",
		},
		"accuracy": {
			"1": "Mostly incorrect or off topic",
			"3": "Covers the basics with minor mistakes",
			"5": "Technically correct and precise",
		},
		"completeness": {
			"1": "Misses most of the expected points",
			"3": "Covers the main points",
			"5": "Thorough, with examples and edge cases",
		},
		"confidence": {
			"1": "Hesitant and uncertain throughout",
			"3": "Reasonably assured",
			"5": "Assured and decisive",
		},
	})
	v.SetDefault("interview_settings.max_questions", 10)
	v.SetDefault("interview_settings.max_followups_per_question", 1)
	v.SetDefault("interview_settings.reveal_scores", true)
}

// DefaultSettings returns the built-in catalog.
func DefaultSettings() *Settings {
	s, err := LoadSettings("")
	if err != nil {
		// defaults alone never fail to decode
		panic(err)
	}
	return s
}

// LoadSettings reads a JSON or YAML settings document on top of the built-in
// defaults. An empty path yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setSettingsDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if s.InterviewSettings.MaxQuestions <= 0 {
		return nil, fmt.Errorf("interview_settings.max_questions must be positive, got %d", s.InterviewSettings.MaxQuestions)
	}
	return &s, nil
}

func (s *Settings) Roles() []string            { return slices.Clone(s.RolesList) }
func (s *Settings) ExperienceLevels() []string { return slices.Clone(s.ExperienceList) }
func (s *Settings) Domains() []string          { return slices.Clone(s.DomainList) }
func (s *Settings) DifficultyLevels() []string { return slices.Clone(s.DifficultyList) }

func (s *Settings) Rubric() map[string]map[string]string {
	out := make(map[string]map[string]string, len(s.ScoringRubric))
	for dim, levels := range s.ScoringRubric {
		inner := make(map[string]string, len(levels))
		for k, v := range levels {
			inner[k] = v
		}
		out[dim] = inner
	}
	return out
}

func (s *Settings) Interview() InterviewSettings {
	return s.InterviewSettings
}

func (s *Settings) ValidateRole(role string) bool {
	return slices.Contains(s.RolesList, role)
}

func (s *Settings) ValidateExperienceLevel(level string) bool {
	return slices.Contains(s.ExperienceList, level)
}

// StartingPolicy merges the starting_difficulty overrides into the default
// policy. Keys arrive lowercased from the settings loader, so both levels and
// difficulties are matched case-insensitively.
func (s *Settings) StartingPolicy() difficulty.Policy {
	policy := difficulty.DefaultPolicy()
	if len(s.StartingDifficulty) == 0 {
		return policy
	}

	known := append(s.ExperienceLevels(), keys(policy)...)
	overrides := make(map[string]models.Difficulty, len(s.StartingDifficulty))
	for level, value := range s.StartingDifficulty {
		d, ok := parseDifficulty(value)
		if !ok {
			continue
		}
		overrides[canonical(level, known)] = d
	}
	return policy.Merge(overrides)
}

func parseDifficulty(value string) (models.Difficulty, bool) {
	for _, d := range models.DifficultyLadder {
		if strings.EqualFold(string(d), strings.TrimSpace(value)) {
			return d, true
		}
	}
	return "", false
}

func canonical(name string, known []string) string {
	for _, k := range known {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return name
}

func keys(p difficulty.Policy) []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	return out
}
