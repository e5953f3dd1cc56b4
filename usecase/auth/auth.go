package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

// TokenConfig carries the JWT signing parameters.
type TokenConfig struct {
	Secret string
	Issuer string
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	audit    usecase.AuditRecorder
	tokens   TokenConfig
	logger   *zap.Logger

	now func() time.Time
}

func New(users repository.UserRepository, sessions repository.SessionRepository, audit usecase.AuditRecorder, tokens TokenConfig, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if audit == nil {
		audit = usecase.NopAudit{}
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		audit:    audit,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// Login verifies the credentials, stores a session and returns it with
// a signed access token carrying the identity claims the middleware
// resolves on every request.
func (uc *UseCase) Login(ctx context.Context, email, password string, ttl time.Duration) (*domain.Session, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.InvalidInput("email and password are required")
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", domain.InvalidInput("password is incorrect")
		}
		return nil, "", domain.Internal(err)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	now := uc.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := uc.signToken(user, session, now, ttl)
	if err != nil {
		return nil, "", domain.Internal(err)
	}

	uc.audit.Record(fmt.Sprintf("Tag: User logged in || user_id: %s || user_name: %s || role: %s", user.ID, user.Name, user.Role))
	return session, token, nil
}

// Session returns the session if it exists and has not expired; an
// expired entry is removed eagerly.
func (uc *UseCase) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// SessionAlive reports whether the session still exists and has not
// expired. The auth middleware calls this on every request so that a
// logout takes effect before the token itself runs out.
func (uc *UseCase) SessionAlive(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrSessionNotFound
	}
	_, err := uc.Session(ctx, sessionID)
	return err
}

// Refresh extends the session lifetime.
func (uc *UseCase) Refresh(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = uc.now().Add(ttl)
	return session, nil
}

// Logout revokes the session.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) signToken(user *domain.User, session *domain.Session, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"name":       user.Name,
		"role":       string(user.Role),
		"session_id": session.ID,
		"iss":        uc.tokens.Issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.tokens.Secret))
}
