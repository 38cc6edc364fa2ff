package chat

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Reply is what the caller of SendMessage gets back.
type Reply struct {
	Message     string       `json:"message"`
	Suggestions []string     `json:"suggestions"`
	Jobs        []JobSummary `json:"jobs"`
	SessionID   string       `json:"session_id"`
}

// History is a conversation transcript. Messages is empty, never nil, when
// nothing is stored.
type History struct {
	Messages  []Message `json:"messages"`
	SessionID string    `json:"session_id"`
	Context   Context   `json:"context"`
}

type SendInput struct {
	Message   string
	SessionID string
	// UserID is the authenticated caller, if any.
	UserID *uint64
}

type Options struct {
	Rules []Rule
	Slots SlotParser
	IDs   IDGenerator
	// FallbackSearch turns unmatched messages with content words into catalog searches.
	FallbackSearch bool
}

// Service is the dialogue engine: one synchronous call per inbound message.
type Service struct {
	store    *SessionStore
	resolver *IntentResolver
	queries  *JobQueryBuilder
	composer ResponseComposer
	now      func() time.Time
}

func NewService(repo *Repo, catalog JobCatalog, opts Options) *Service {
	return &Service{
		store:    NewSessionStore(repo, opts.IDs),
		resolver: NewIntentResolver(opts.Rules),
		queries:  NewJobQueryBuilder(catalog, opts.Slots, opts.FallbackSearch),
		now:      time.Now,
	}
}

// Respond classifies message, runs whatever catalog search its intent needs
// and renders the reply. Nothing is persisted.
func (s *Service) Respond(ctx context.Context, message string, prior Context) (Plan, Composed) {
	turn := NewTurn(message, prior)
	intent := s.resolver.Resolve(turn)
	plan := s.queries.Execute(ctx, s.queries.Build(intent, turn))
	return plan, s.composer.Compose(plan, turn)
}

func (s *Service) SendMessage(ctx context.Context, in SendInput) (*Reply, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	conv, _, err := s.store.GetOrCreate(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	prior := Context(conv.Context)
	_, out := s.Respond(ctx, in.Message, prior)

	now := s.now()
	user := NewUserMessage(in.Message, now)
	assistant := NewAssistantMessage(out.Text, AssistantMetadata{
		Suggestions: out.Suggestions,
		Jobs:        out.Jobs,
	}, now)

	turnCtx := nextContext(prior, in.Message, len(out.Jobs))
	if err := s.store.Append(ctx, conv, user, assistant, turnCtx, in.UserID); err != nil {
		return nil, err
	}

	return &Reply{
		Message:     out.Text,
		Suggestions: out.Suggestions,
		Jobs:        out.Jobs,
		SessionID:   conv.SessionID,
	}, nil
}

func (s *Service) History(ctx context.Context, sessionID string, userID *uint64) (*History, error) {
	conv, found, err := s.store.History(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &History{Messages: []Message{}, SessionID: sessionID, Context: Context{}}, nil
	}

	h := &History{
		Messages:  conv.Messages,
		SessionID: conv.SessionID,
		Context:   Context(conv.Context),
	}
	if h.Messages == nil {
		h.Messages = []Message{}
	}
	if h.Context == nil {
		h.Context = Context{}
	}
	return h, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// NewSessionID mints an id the way a first turn without one would.
func (s *Service) NewSessionID() (string, error) {
	return s.store.ids.NewID()
}

// Turn jobs

func (s *Service) CreateJobOrGetExisting(ctx context.Context, job *TurnJob) (*TurnJob, bool, error) {
	return s.store.repo.CreateJobOrGetExisting(ctx, job)
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*TurnJob, error) {
	return s.store.repo.GetJobByID(ctx, jobID)
}

// RunJob executes a queued turn and records the outcome on the job row. Jobs
// that are no longer queued are skipped: a redelivery must not append the turn
// a second time, even when the earlier attempt died mid-run.
func (s *Service) RunJob(ctx context.Context, jobID string) error {
	repo := s.store.repo
	claimed, err := repo.UpdateJobStatusRunning(ctx, jobID)
	if err != nil {
		return err
	}

	j, err := repo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	reply, err := s.SendMessage(ctx, SendInput{Message: j.Message, SessionID: j.SessionID, UserID: j.UserID})
	if err != nil {
		_ = repo.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}
	return repo.MarkJobSucceeded(ctx, jobID, reply)
}
