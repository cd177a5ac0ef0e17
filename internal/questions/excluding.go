package questions

import (
	"context"
	"math/rand/v2"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

// Lister is a question source that can enumerate a role and difficulty.
type Lister interface {
	Questions(ctx context.Context, role string, d models.Difficulty) ([]models.Question, error)
	GetAvailableDifficulties(ctx context.Context, role string) ([]models.Difficulty, error)
}

// ExcludingSource avoids handing out a question twice while unasked
// alternatives remain at the requested role and difficulty. One instance
// serves one interview.
type ExcludingSource struct {
	lister Lister
	asked  map[string]struct{}
	pick   func(n int) int
}

func NewExcludingSource(lister Lister, asked ...string) *ExcludingSource {
	s := &ExcludingSource{
		lister: lister,
		asked:  make(map[string]struct{}, len(asked)),
		pick:   rand.IntN,
	}
	s.Exclude(asked...)
	return s
}

// Exclude marks question IDs as already asked.
func (s *ExcludingSource) Exclude(ids ...string) {
	for _, id := range ids {
		s.asked[id] = struct{}{}
	}
}

func (s *ExcludingSource) GetQuestion(ctx context.Context, role string, d models.Difficulty) (*models.Question, error) {
	all, err := s.lister.Questions(ctx, role, d)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}

	fresh := make([]models.Question, 0, len(all))
	for _, q := range all {
		if _, seen := s.asked[q.ID]; !seen {
			fresh = append(fresh, q)
		}
	}
	if len(fresh) == 0 {
		fresh = all
	}

	q := fresh[s.pick(len(fresh))]
	s.asked[q.ID] = struct{}{}
	return q.Clone(), nil
}

func (s *ExcludingSource) GetAvailableDifficulties(ctx context.Context, role string) ([]models.Difficulty, error) {
	return s.lister.GetAvailableDifficulties(ctx, role)
}
