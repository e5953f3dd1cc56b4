package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(context.Context, repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Upsert(context.Context, *domain.User) error { return nil }

type stubSessionRepo struct {
	sessions map[string]*domain.Session
}

func (r *stubSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *stubSessionRepo) Save(_ context.Context, s *domain.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *stubSessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

func newTestUseCase(t *testing.T) (*UseCase, *stubSessionRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &stubUserRepo{byEmail: map[string]*domain.User{
		"ada@example.com": {
			ID:           "u1",
			Name:         "Ada",
			Email:        "ada@example.com",
			PasswordHash: string(hash),
			Role:         domain.RoleTeamLead,
			Status:       "active",
		},
	}}
	sessions := &stubSessionRepo{sessions: map[string]*domain.Session{}}
	uc := New(users, sessions, nil, TokenConfig{Secret: "test-secret", Issuer: "taskdeck-test"}, nil)
	return uc, sessions
}

func TestLoginIssuesSessionAndToken(t *testing.T) {
	uc, sessions := newTestUseCase(t)

	session, token, err := uc.Login(context.Background(), "ada@example.com", "hunter2hunter2", time.Hour)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, domain.RoleTeamLead, session.Role)
	assert.Contains(t, sessions.sessions, session.ID)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "Ada", claims["name"])
	assert.Equal(t, "team_lead", claims["role"])
	assert.Equal(t, session.ID, claims["session_id"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, _, err := uc.Login(ctx, "ada@example.com", "wrong-password", time.Hour)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Login(ctx, "ghost@example.com", "hunter2hunter2", time.Hour)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, _, err = uc.Login(ctx, "", "", time.Hour)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionExpiryIsEnforced(t *testing.T) {
	uc, sessions := newTestUseCase(t)
	sessions.sessions["expired"] = &domain.Session{
		ID:        "expired",
		UserID:    "u1",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	_, err := uc.Session(context.Background(), "expired")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NotContains(t, sessions.sessions, "expired")
}

func TestRefreshExtendsSession(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	session, _, err := uc.Login(ctx, "ada@example.com", "hunter2hunter2", time.Minute)
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, session.ID, 2*time.Hour)
	require.NoError(t, err)
	assert.True(t, refreshed.ExpiresAt.After(session.ExpiresAt))
}

func TestLogoutRevokesSession(t *testing.T) {
	uc, sessions := newTestUseCase(t)
	ctx := context.Background()

	session, _, err := uc.Login(ctx, "ada@example.com", "hunter2hunter2", time.Hour)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, session.ID))
	assert.NotContains(t, sessions.sessions, session.ID)
}
