package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/user/domain"
	"github.com/tair/storefront/pkg/auth"
)

type memRepo struct {
	domain.UserRepository
	users  map[uint]*domain.User
	nextID uint
	err    error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[uint]*domain.User{}}
}

func (m *memRepo) Create(_ context.Context, u *domain.User) error {
	m.nextID++
	u.ID = m.nextID
	m.users[u.ID] = u
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memRepo) UpdateRole(_ context.Context, id uint, role string) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

var signUp = RegisterUserCommand{
	Email:     "Jeanne@Example.com",
	Password:  "secret1",
	FirstName: "Jeanne",
	LastName:  "Martin",
}

func TestRegister(t *testing.T) {
	repo := newMemRepo()
	h := NewRegisterUserHandler(repo)

	user, err := h.Handle(context.Background(), signUp)
	require.NoError(t, err)
	assert.Equal(t, "jeanne@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, signUp.Password, user.Password)
	assert.True(t, auth.CheckPassword(user.Password, signUp.Password))

	_, err = h.Handle(context.Background(), signUp)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegister_Validation(t *testing.T) {
	h := NewRegisterUserHandler(newMemRepo())

	tests := []struct {
		name   string
		mutate func(*RegisterUserCommand)
		want   string
	}{
		{"bad email", func(c *RegisterUserCommand) { c.Email = "not-an-email" }, "valid email"},
		{"short password", func(c *RegisterUserCommand) { c.Password = "12345" }, "at least 6"},
		{"no first name", func(c *RegisterUserCommand) { c.FirstName = " " }, "first name"},
		{"no last name", func(c *RegisterUserCommand) { c.LastName = "" }, "last name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := signUp
			tt.mutate(&cmd)
			_, err := h.Handle(context.Background(), cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidUser)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegister_LookupFailure(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("db down")

	_, err := NewRegisterUserHandler(repo).Handle(context.Background(), signUp)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newMemRepo()
	_, err := NewRegisterUserHandler(repo).Handle(context.Background(), signUp)
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	h := NewLoginUserHandler(repo, tokens)

	resp, err := h.Handle(context.Background(), LoginUserCommand{Email: "jeanne@example.com", Password: "secret1"})
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	_, err = h.Handle(context.Background(), LoginUserCommand{Email: "jeanne@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = h.Handle(context.Background(), LoginUserCommand{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_Deactivated(t *testing.T) {
	repo := newMemRepo()
	user, err := NewRegisterUserHandler(repo).Handle(context.Background(), signUp)
	require.NoError(t, err)
	user.IsActive = false

	h := NewLoginUserHandler(repo, auth.NewTokenManager("test-secret", time.Hour))
	_, err = h.Handle(context.Background(), LoginUserCommand{Email: signUp.Email, Password: signUp.Password})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestChangeRole(t *testing.T) {
	repo := newMemRepo()
	user, err := NewRegisterUserHandler(repo).Handle(context.Background(), signUp)
	require.NoError(t, err)
	h := NewChangeRoleHandler(repo)

	updated, err := h.Handle(context.Background(), ChangeRoleCommand{UserID: user.ID, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())

	_, err = h.Handle(context.Background(), ChangeRoleCommand{UserID: user.ID, Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = h.Handle(context.Background(), ChangeRoleCommand{UserID: 99, Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
