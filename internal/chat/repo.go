package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetConversation(ctx context.Context, sessionID string) (*Conversation, error) {
	var c Conversation
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetConversationWithMessages loads the conversation and its messages in append order.
func (r *Repo) GetConversationWithMessages(ctx context.Context, sessionID string) (*Conversation, error) {
	var c Conversation
	if err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("session_id = ?", sessionID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// LatestConversationForUser returns the user's most recently active conversation.
func (r *Repo) LatestConversationForUser(ctx context.Context, userID uint64) (*Conversation, error) {
	var c Conversation
	if err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		Order("last_active DESC").
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// AppendTurn stores one user/assistant pair in a single transaction. The
// conversation row is created on first use; concurrent first turns on the
// same session id converge on one row. Context keys are merged into what is
// stored, so a concurrent turn can overwrite lastQuery but never clear
// hasSearchedJobs.
func (r *Repo) AppendTurn(ctx context.Context, conv *Conversation, msgs []Message, turnCtx Context, userID *uint64, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := Conversation{
			SessionID:  conv.SessionID,
			UserID:     userID,
			Context:    datatypes.JSONMap(turnCtx),
			LastActive: at,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return err
		}

		var stored Conversation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", conv.SessionID).
			First(&stored).Error; err != nil {
			return err
		}

		merged := Context(stored.Context).Merge(turnCtx)
		updates := map[string]any{
			"context":     datatypes.JSONMap(merged),
			"last_active": at,
		}
		if stored.UserID == nil && userID != nil {
			updates["user_id"] = *userID
			stored.UserID = userID
		}
		if err := tx.Model(&Conversation{}).Where("id = ?", stored.ID).Updates(updates).Error; err != nil {
			return err
		}

		// one insert per message keeps ids in append order
		for i := range msgs {
			msgs[i].ConversationID = stored.ID
			if err := tx.Create(&msgs[i]).Error; err != nil {
				return err
			}
		}

		conv.ID = stored.ID
		conv.UserID = stored.UserID
		conv.Context = datatypes.JSONMap(merged)
		conv.LastActive = at
		conv.CreatedAt = stored.CreatedAt
		return nil
	})
}

// DeleteConversation removes the conversation and its messages. Unknown ids are a no-op.
func (r *Repo) DeleteConversation(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c Conversation
		err := tx.Select("id").Where("session_id = ?", sessionID).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", c.ID).Delete(&Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Conversation{}, c.ID).Error
	})
}

// Turn job CRUD

func (r *Repo) CreateJob(ctx context.Context, job *TurnJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetJobByID(ctx context.Context, id string) (*TurnJob, error) {
	var j TurnJob
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// UpdateJobStatusRunning moves a queued job to running. It reports false when
// the job was not queued, so only one delivery of a job ever runs it.
func (r *Repo) UpdateJobStatusRunning(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&TurnJob{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Update("status", JobRunning)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repo) MarkJobSucceeded(ctx context.Context, id string, reply *Reply) error {
	b, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&TurnJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobSucceeded,
			"reply":  datatypes.JSON(b),
			"error":  nil,
		}).Error
}

func (r *Repo) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&TurnJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobFailed,
			"error":  errMsg,
		}).Error
}

func (r *Repo) GetJobByUserAndIdempotencyKey(ctx context.Context, userID *uint64, key string) (*TurnJob, error) {
	q := r.db.WithContext(ctx).Where("idempotency_key = ?", key)
	if userID == nil {
		q = q.Where("user_id IS NULL")
	} else {
		q = q.Where("user_id = ?", *userID)
	}
	var job TurnJob
	if err := q.First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJobOrGetExisting creates the job, or returns the one already stored for
// the same (user, idempotency key).
func (r *Repo) CreateJobOrGetExisting(ctx context.Context, job *TurnJob) (*TurnJob, bool, error) {
	if job.IdempotencyKey == nil || *job.IdempotencyKey == "" {
		job.IdempotencyKey = nil
		if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
			return nil, false, err
		}
		return job, true, nil
	}

	existing, err := r.GetJobByUserAndIdempotencyKey(ctx, job.UserID, *job.IdempotencyKey)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	createErr := r.db.WithContext(ctx).Create(job).Error
	if createErr == nil {
		return job, true, nil
	}

	// lost a race against an identical request
	existing, err = r.GetJobByUserAndIdempotencyKey(ctx, job.UserID, *job.IdempotencyKey)
	if err == nil {
		return existing, false, nil
	}
	return nil, false, createErr
}
