package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/elearn-portal/internal/models"
	"github.com/harentsoaR/elearn-portal/internal/store"
	"github.com/harentsoaR/elearn-portal/internal/utils"
)

// SessionService keeps login sessions server side. The cookie value is a
// signed token naming the session id, so ending a session on the server
// invalidates the cookie immediately.
type SessionService struct {
	sessions SessionStore
	tokens   *utils.SessionTokens
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewSessionService(sessions SessionStore, tokens *utils.SessionTokens, ttl time.Duration, log *zap.Logger) *SessionService {
	return &SessionService{sessions: sessions, tokens: tokens, ttl: ttl, log: log, now: time.Now}
}

func (s *SessionService) TTL() time.Duration { return s.ttl }

// Start opens a session for userID and returns the cookie token.
func (s *SessionService) Start(ctx context.Context, userID primitive.ObjectID) (string, *models.Session, error) {
	now := s.now().UTC()
	sess := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := s.tokens.Sign(sess.ID, sess.ExpiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}
	return token, sess, nil
}

// Resolve returns the live session behind token, or ErrNoSession.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrNoSession
	}

	sess, err := s.sessions.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sess.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, sess.ID); err != nil {
			s.log.Debug("expired session cleanup failed", zap.String("sessionID", sess.ID), zap.Error(err))
		}
		return nil, ErrNoSession
	}
	return sess, nil
}

// End deletes the session behind token. An unknown or invalid token is not an error.
func (s *SessionService) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
