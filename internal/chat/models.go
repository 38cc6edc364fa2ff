package chat

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation is the persisted state of one chat session.
type Conversation struct {
	ID         uint64            `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID  string            `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_id"`
	UserID     *uint64           `gorm:"index" json:"-"`
	Context    datatypes.JSONMap `json:"context"`
	LastActive time.Time         `gorm:"index;not null" json:"last_active"`
	Messages   []Message         `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (Conversation) TableName() string { return "chatbot_conversations" }

// Message is immutable once appended. Only assistant messages carry Metadata;
// build them with NewUserMessage and NewAssistantMessage.
type Message struct {
	ID             uint64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64             `gorm:"index;not null" json:"-"`
	Role           Role               `gorm:"type:varchar(16);not null" json:"role"`
	Content        string             `gorm:"type:text;not null" json:"content"`
	Metadata       *AssistantMetadata `gorm:"type:text;serializer:json" json:"metadata,omitempty"`
	CreatedAt      time.Time          `json:"timestamp"`
}

func (Message) TableName() string { return "chatbot_messages" }

// AssistantMetadata is the UI payload attached to an assistant reply.
type AssistantMetadata struct {
	Suggestions []string     `json:"suggestions"`
	JobsCount   int          `json:"jobs_count"`
	Jobs        []JobSummary `json:"jobs"`
}

func NewUserMessage(content string, at time.Time) Message {
	return Message{Role: RoleUser, Content: content, CreatedAt: at}
}

func NewAssistantMessage(content string, meta AssistantMetadata, at time.Time) Message {
	if meta.Suggestions == nil {
		meta.Suggestions = []string{}
	}
	if meta.Jobs == nil {
		meta.Jobs = []JobSummary{}
	}
	meta.JobsCount = len(meta.Jobs)
	return Message{Role: RoleAssistant, Content: content, Metadata: &meta, CreatedAt: at}
}

// JobSummary is the per-turn projection of a catalog job.
type JobSummary struct {
	ID              uint64 `json:"id"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	CompanyLogo     string `json:"company_logo,omitempty"`
	Location        string `json:"location"`
	Salary          int64  `json:"salary"`
	ExperienceLevel int    `json:"experience_level"`
	JobType         string `json:"job_type"`
	Description     string `json:"description"`
}

const (
	ctxHasSearchedJobs = "hasSearchedJobs"
	ctxLastQuery       = "lastQuery"
)

// Context is the flat key/value state carried across turns. Keys other than
// hasSearchedJobs and lastQuery are passed through untouched.
type Context map[string]any

type contextState struct {
	HasSearchedJobs bool   `mapstructure:"hasSearchedJobs"`
	LastQuery       string `mapstructure:"lastQuery"`
}

func (c Context) state() contextState {
	var st contextState
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &st,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return st
	}
	// Malformed values for one key leave the others decoded.
	_ = dec.Decode(map[string]any(c))
	return st
}

func (c Context) HasSearchedJobs() bool { return c.state().HasSearchedJobs }

func (c Context) LastQuery() string { return c.state().LastQuery }

func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge overwrites c key by key with next. hasSearchedJobs never goes back to
// false once either side has it set.
func (c Context) Merge(next Context) Context {
	out := c.Clone()
	for k, v := range next {
		out[k] = v
	}
	out[ctxHasSearchedJobs] = c.HasSearchedJobs() || next.HasSearchedJobs()
	return out
}

// nextContext is the context a turn writes back: the prior state with the
// search flag and the raw message updated.
func nextContext(prev Context, message string, jobsReturned int) Context {
	out := prev.Clone()
	out[ctxHasSearchedJobs] = prev.HasSearchedJobs() || jobsReturned > 0
	out[ctxLastQuery] = message
	return out
}
