// Package questions loads the interview question bank and selects questions from it.
package questions

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/validator"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidBank      = errors.New("invalid question bank")
	ErrQuestionNotFound = errors.New("question not found")
)

type roleBank struct {
	difficulties []models.Difficulty
	questions    map[models.Difficulty][]models.Question
}

// FileBank is an in-memory bank read from a YAML or JSON document shaped as
// role -> difficulty -> list of questions. It is read-only after loading.
type FileBank struct {
	roles    []string
	banks    map[string]*roleBank
	byID     map[string]models.Question
	pick     func(n int) int
	validate *validator.QuestionValidator
}

func LoadFile(path string) (*FileBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}
	return Parse(data)
}

// Parse accepts YAML or JSON; document order of roles and difficulties is kept.
func Parse(data []byte) (*FileBank, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must map roles to difficulties", ErrInvalidBank)
	}

	bank := newFileBank()

	roles := doc.Content[0].Content
	for i := 0; i+1 < len(roles); i += 2 {
		role, levels := roles[i].Value, roles[i+1]
		if levels.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: role %q must map difficulties to questions", ErrInvalidBank, role)
		}
		if err := bank.addRole(role, levels); err != nil {
			return nil, err
		}
	}

	return bank, nil
}

func newFileBank() *FileBank {
	return &FileBank{
		banks:    make(map[string]*roleBank),
		byID:     make(map[string]models.Question),
		pick:     rand.IntN,
		validate: validator.NewQuestionValidator(),
	}
}

func (b *FileBank) addRole(role string, levels *yaml.Node) error {
	for j := 0; j+1 < len(levels.Content); j += 2 {
		d := models.Difficulty(levels.Content[j].Value)

		var entries []models.Question
		if err := levels.Content[j+1].Decode(&entries); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", ErrInvalidBank, role, d, err)
		}
		for k, q := range entries {
			if err := b.add(role, d, q); err != nil {
				return fmt.Errorf("%s/%s question %d: %w", role, d, k, err)
			}
		}
	}
	return nil
}

// add stamps role and difficulty onto q and files it, keeping known levels
// in ladder order and unknown ones after them in insertion order.
func (b *FileBank) add(role string, d models.Difficulty, q models.Question) error {
	q.Role = role
	q.Difficulty = d
	if err := b.validate.ValidateQuestion(&q); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if _, dup := b.byID[q.ID]; dup {
		return fmt.Errorf("%w: duplicate question id %q", ErrInvalidBank, q.ID)
	}

	rb, ok := b.banks[role]
	if !ok {
		rb = &roleBank{questions: make(map[models.Difficulty][]models.Question)}
		b.banks[role] = rb
		b.roles = append(b.roles, role)
	}
	if _, seen := rb.questions[d]; !seen {
		rb.difficulties = append(rb.difficulties, d)
		slices.SortStableFunc(rb.difficulties, func(a, c models.Difficulty) int {
			return ladderPosition(a) - ladderPosition(c)
		})
	}
	rb.questions[d] = append(rb.questions[d], q)
	b.byID[q.ID] = q
	return nil
}

func ladderPosition(d models.Difficulty) int {
	if r := d.Rank(); r >= 0 {
		return r
	}
	return len(models.DifficultyLadder)
}

// GetQuestion returns a random copy of a question at role and difficulty,
// or nil when there is none.
func (b *FileBank) GetQuestion(_ context.Context, role string, d models.Difficulty) (*models.Question, error) {
	qs := b.questionsAt(role, d)
	if len(qs) == 0 {
		return nil, nil
	}
	return qs[b.pick(len(qs))].Clone(), nil
}

func (b *FileBank) GetQuestionByID(_ context.Context, id string) (*models.Question, error) {
	q, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
	}
	return q.Clone(), nil
}

// Questions returns copies of every question at role and difficulty.
func (b *FileBank) Questions(_ context.Context, role string, d models.Difficulty) ([]models.Question, error) {
	qs := b.questionsAt(role, d)
	out := make([]models.Question, len(qs))
	for i, q := range qs {
		out[i] = *q.Clone()
	}
	return out, nil
}

func (b *FileBank) GetAvailableDifficulties(_ context.Context, role string) ([]models.Difficulty, error) {
	rb, ok := b.banks[role]
	if !ok {
		return []models.Difficulty{}, nil
	}
	return slices.Clone(rb.difficulties), nil
}

func (b *FileBank) Roles() []string {
	return slices.Clone(b.roles)
}

func (b *FileBank) Has(role string, d models.Difficulty) bool {
	return len(b.questionsAt(role, d)) > 0
}

// All returns every question grouped by role and difficulty, used to seed a database.
func (b *FileBank) All() []models.Question {
	var out []models.Question
	for _, role := range b.roles {
		rb := b.banks[role]
		for _, d := range rb.difficulties {
			for _, q := range rb.questions[d] {
				out = append(out, *q.Clone())
			}
		}
	}
	return out
}

func (b *FileBank) Count() int {
	return len(b.byID)
}

func (b *FileBank) questionsAt(role string, d models.Difficulty) []models.Question {
	rb, ok := b.banks[role]
	if !ok {
		return nil
	}
	return rb.questions[d]
}
