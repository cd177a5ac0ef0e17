package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/repositories"
	"gorm.io/gorm"
)

const defaultReportLimit = 20

type ReportPostgreSQL struct {
	db *gorm.DB
}

func NewReportPostgreSQL(db *gorm.DB) *ReportPostgreSQL {
	return &ReportPostgreSQL{db: db}
}

var _ repositories.ReportRepository = (*ReportPostgreSQL)(nil)

func (r *ReportPostgreSQL) Create(ctx context.Context, report *models.InterviewReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create interview report: %w", err)
	}
	return nil
}

func (r *ReportPostgreSQL) GetBySessionID(ctx context.Context, sessionID string) (*models.InterviewReport, error) {
	var report models.InterviewReport
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %s", repositories.ErrReportNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to get interview report: %w", err)
	}
	return &report, nil
}

func (r *ReportPostgreSQL) List(ctx context.Context, filters repositories.ReportFilters) ([]*models.InterviewReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InterviewReport{})

	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}
	if filters.Email != "" {
		query = query.Where("candidate_email = ?", filters.Email)
	}
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count interview reports: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultReportLimit
	}

	var reports []*models.InterviewReport
	if err := query.
		Order("completed_at DESC").
		Limit(limit).
		Offset(filters.Offset).
		Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list interview reports: %w", err)
	}
	return reports, total, nil
}
