package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repo struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRepo(db *gorm.DB, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{db: db, log: log}
}

// Search returns at most MaxResults jobs, newest first.
func (r *Repo) Search(ctx context.Context, f Filter) ([]Job, error) {
	q := r.db.WithContext(ctx).Model(&Job{}).Preload("Company")

	// SQLite's LOWER folds ASCII only, so on a sqlite: DSN non-ASCII text
	// matches case-sensitively. MySQL folds it through the column collation.
	if text := strings.TrimSpace(f.Text); text != "" {
		p := likePattern(text)
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(location) LIKE ? ESCAPE '!')", p, p, p)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		q = q.Where("LOWER(location) LIKE ? ESCAPE '!'", likePattern(loc))
	}
	if f.MinSalary != nil {
		q = q.Where("salary >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		q = q.Where("salary <= ?", *f.MaxSalary)
	}
	if f.MaxExperience != nil {
		q = q.Where("experience_level <= ?", *f.MaxExperience)
	}

	var jobs []Job
	if err := q.Order("created_at DESC").Order("id DESC").Limit(MaxResults).Find(&jobs).Error; err != nil {
		r.log.Error("job search failed", zap.String("text", f.Text), zap.Error(err))
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return jobs, nil
}

func (r *Repo) CreateCompany(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repo) CreateJob(ctx context.Context, j *Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *Repo) CountJobs(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Job{}).Count(&n).Error
	return n, err
}
