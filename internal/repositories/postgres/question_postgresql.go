package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-service/internal/cache"
	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/repositories"
	"github.com/SAP-F-2025/interview-service/internal/validator"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	difficultiesCacheTTL = 10 * time.Minute
	questionCachePrefix  = "interview:questions:"
)

type QuestionPostgreSQL struct {
	db        *gorm.DB
	cache     cache.CacheService
	validator *validator.QuestionValidator
}

// NewQuestionPostgreSQL builds the repository; c may be nil to disable caching.
func NewQuestionPostgreSQL(db *gorm.DB, c cache.CacheService) *QuestionPostgreSQL {
	return &QuestionPostgreSQL{db: db, cache: c, validator: validator.NewQuestionValidator()}
}

var _ repositories.QuestionRepository = (*QuestionPostgreSQL)(nil)

// GetQuestion returns a random question for the role and difficulty, or nil when none exist.
func (q *QuestionPostgreSQL) GetQuestion(ctx context.Context, role string, d models.Difficulty) (*models.Question, error) {
	var record models.QuestionRecord
	err := q.db.WithContext(ctx).
		Where("role = ? AND difficulty = ?", role, d).
		Order(randomOrder(q.db)).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return record.ToQuestion()
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var record models.QuestionRecord
	if err := q.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", repositories.ErrQuestionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return record.ToQuestion()
}

func (q *QuestionPostgreSQL) Questions(ctx context.Context, role string, d models.Difficulty) ([]models.Question, error) {
	var records []models.QuestionRecord
	if err := q.db.WithContext(ctx).
		Where("role = ? AND difficulty = ?", role, d).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	out := make([]models.Question, 0, len(records))
	for _, r := range records {
		question, err := r.ToQuestion()
		if err != nil {
			return nil, fmt.Errorf("failed to decode question %s: %w", r.ID, err)
		}
		out = append(out, *question)
	}
	return out, nil
}

// GetAvailableDifficulties lists the role's difficulties in ladder order.
// Results are cached when a cache is configured.
func (q *QuestionPostgreSQL) GetAvailableDifficulties(ctx context.Context, role string) ([]models.Difficulty, error) {
	key := questionCachePrefix + "difficulties:" + role
	if q.cache != nil {
		var cached []models.Difficulty
		if err := q.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	var levels []models.Difficulty
	if err := q.db.WithContext(ctx).
		Model(&models.QuestionRecord{}).
		Where("role = ?", role).
		Distinct().
		Pluck("difficulty", &levels).Error; err != nil {
		return nil, fmt.Errorf("failed to list difficulties: %w", err)
	}
	levels = SortDifficulties(levels)

	if q.cache != nil {
		// a cache failure only costs a query next time
		_ = q.cache.Set(ctx, key, levels, difficultiesCacheTTL)
	}
	return levels, nil
}

// Seed upserts questions by id. The whole batch is rejected if any question is invalid.
func (q *QuestionPostgreSQL) Seed(ctx context.Context, questions []models.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	if err := q.validator.ValidateBatch(questions); err != nil {
		return 0, fmt.Errorf("failed to seed questions: %w", err)
	}

	records := make([]*models.QuestionRecord, 0, len(questions))
	for _, question := range questions {
		record, err := models.NewQuestionRecord(question)
		if err != nil {
			return 0, fmt.Errorf("failed to encode question %s: %w", question.ID, err)
		}
		records = append(records, record)
	}

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "difficulty", "domain", "text", "key_points", "follow_up", "context", "updated_at"}),
		}).CreateInBatches(records, 100).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed questions: %w", err)
	}

	if q.cache != nil {
		_ = q.cache.DeletePattern(ctx, questionCachePrefix+"*")
	}
	return len(records), nil
}

func (q *QuestionPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := q.db.WithContext(ctx).Model(&models.QuestionRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// SortDifficulties orders ladder levels first, then unknown levels alphabetically.
func SortDifficulties(levels []models.Difficulty) []models.Difficulty {
	out := slices.Clone(levels)
	slices.SortStableFunc(out, func(a, b models.Difficulty) int {
		ra, rb := a.Rank(), b.Rank()
		switch {
		case ra >= 0 && rb >= 0:
			return ra - rb
		case ra >= 0:
			return -1
		case rb >= 0:
			return 1
		default:
			return strings.Compare(string(a), string(b))
		}
	})
	return slices.Compact(out)
}

func randomOrder(db *gorm.DB) string {
	if db.Dialector != nil && db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}
