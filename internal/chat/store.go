package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SessionStore persists conversations keyed by session id.
type SessionStore struct {
	repo *Repo
	ids  IDGenerator
	now  func() time.Time
}

func NewSessionStore(repo *Repo, ids IDGenerator) *SessionStore {
	if ids == nil {
		ids = HexIDGenerator{}
	}
	return &SessionStore{repo: repo, ids: ids, now: time.Now}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// GetOrCreate loads the conversation for sessionID. When sessionID is empty a
// new id is minted; when nothing is stored yet the returned conversation is
// unsaved and isNew is true. Append persists it.
func (s *SessionStore) GetOrCreate(ctx context.Context, sessionID string) (*Conversation, bool, error) {
	if sessionID == "" {
		id, err := s.ids.NewID()
		if err != nil {
			return nil, false, fmt.Errorf("generate session id: %w", err)
		}
		return &Conversation{SessionID: id}, true, nil
	}

	conv, err := s.repo.GetConversation(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Conversation{SessionID: sessionID}, true, nil
		}
		return nil, false, storageErr("load conversation", err)
	}
	return conv, false, nil
}

// Append stores the user message then the assistant message, merges turnCtx
// into the stored context and links userID if the conversation had no user.
func (s *SessionStore) Append(ctx context.Context, conv *Conversation, user, assistant Message, turnCtx Context, userID *uint64) error {
	if user.Role != RoleUser || assistant.Role != RoleAssistant {
		return fmt.Errorf("%w: append expects a user then an assistant message", ErrInvalidInput)
	}
	if err := s.repo.AppendTurn(ctx, conv, []Message{user, assistant}, turnCtx, userID, s.now()); err != nil {
		return storageErr("append turn", err)
	}
	return nil
}

// Clear deletes the conversation. Unknown session ids succeed.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.repo.DeleteConversation(ctx, sessionID); err != nil {
		return storageErr("delete conversation", err)
	}
	return nil
}

// History finds the conversation by session id, falling back to the user's
// most recently active conversation when the id is empty or unknown. found is
// false when neither lookup matches.
func (s *SessionStore) History(ctx context.Context, sessionID string, userID *uint64) (conv *Conversation, found bool, err error) {
	if sessionID != "" {
		conv, err = s.repo.GetConversationWithMessages(ctx, sessionID)
		switch {
		case err == nil:
			return conv, true, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, false, storageErr("load history", err)
		}
	}

	if userID == nil {
		return nil, false, nil
	}
	conv, err = s.repo.LatestConversationForUser(ctx, *userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, storageErr("load user history", err)
	}
	return conv, true, nil
}
