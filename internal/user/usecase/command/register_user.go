package command

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/tair/storefront/internal/user/domain"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/logger"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (cmd RegisterUserCommand) validate() error {
	var problems []string
	if _, err := mail.ParseAddress(strings.TrimSpace(cmd.Email)); err != nil {
		problems = append(problems, "a valid email is required")
	}
	if len(cmd.Password) < domain.MinPasswordLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", domain.MinPasswordLength))
	}
	if strings.TrimSpace(cmd.FirstName) == "" {
		problems = append(problems, "first name is required")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		problems = append(problems, "last name is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidUser, strings.Join(problems, "; "))
	}
	return nil
}

// Handle executes the register user command. New accounts always get the user role.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if _, err := h.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: strings.TrimSpace(cmd.FirstName),
		LastName:  strings.TrimSpace(cmd.LastName),
		Role:      domain.RoleUser,
		IsActive:  true,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx).Uint("user_id", user.ID).Msg("User registered")
	return user, nil
}
