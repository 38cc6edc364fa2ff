package chat

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// TurnJob is a queued chat turn processed by the worker.
type TurnJob struct {
	ID string `gorm:"primaryKey;size:26"` // ULID length

	UserID    *uint64 `gorm:"index;index:uniq_turn_idempo,unique,priority:1"`
	SessionID string  `gorm:"size:64;index;not null"`

	Message string `gorm:"type:text;not null"`

	IdempotencyKey *string `gorm:"type:varchar(128);index:uniq_turn_idempo,unique,priority:2"`

	Status JobStatus `gorm:"type:varchar(16);index;not null"`

	// Filled when succeeded
	Reply datatypes.JSON

	// Filled when failed
	Error *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TurnJob) TableName() string { return "chatbot_turn_jobs" }

// DecodeReply returns the stored reply, or nil while the job has none.
func (j *TurnJob) DecodeReply() (*Reply, error) {
	if len(j.Reply) == 0 {
		return nil, nil
	}
	var r Reply
	if err := json.Unmarshal(j.Reply, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
