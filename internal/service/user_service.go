package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/service/auth"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Password string
	Name     string
}

// ProfileUpdate carries the optional fields of a profile update. A nil
// pointer means "leave unchanged".
type ProfileUpdate struct {
	Name     *string
	Password *string
}

// UserService provides account lifecycle operations.
type UserService interface {
	// Register creates a new account. Returns ErrUsernameTaken if the
	// username already has a row.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login verifies the credentials and issues a fresh opaque token,
	// persisting it on the user row. Returns ErrInvalidCredentials for an
	// unknown username or a wrong password alike.
	Login(ctx context.Context, username, password string) (string, error)

	// UpdateProfile applies the present fields of update to the account.
	// The username always comes from the authenticated context, never from
	// client input.
	UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*domain.User, error)

	// Logout clears the account's stored token, invalidating the credential.
	Logout(ctx context.Context, username string) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	tokens    auth.TokenGenerator
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.TokenGenerator,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		tokens:    tokens,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// Ensure UserServiceImpl implements UserService.
var _ UserService = (*UserServiceImpl)(nil)

// Register creates a new account with a hashed password.
// The existence check and the insert run in one transaction; the unique
// index on username is the backstop for concurrent registrations.
func (s *UserServiceImpl) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", input.Username)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(input.Username, input.Name)
	user.HashedPassword = hashed

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		count, err := txStore.CountByUsername(ctx, input.Username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			// Concurrent registration slipped past the count; same outcome.
			err = ErrUsernameTaken
		}
		if errors.Is(err, ErrUsernameTaken) {
			s.logger.Debug("attempted to register existing username",
				"username", input.Username)
		} else {
			s.logger.Error("failed to register user",
				"error", err,
				"username", input.Username)
		}
		return nil, err
	}

	s.logger.Info("user registered successfully",
		"username", user.Username)
	return user, nil
}

// Login verifies the credentials and issues a fresh opaque token.
func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown username",
				"username", username)
			return "", ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user for login",
			"error", err,
			"username", username)
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"username", username)
		return "", ErrInvalidCredentials
	}

	token := s.tokens.Generate()
	user.Token = &token

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to persist login token",
			"error", err,
			"username", username)
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	s.logger.Info("user logged in successfully",
		"username", username)
	return token, nil
}

// UpdateProfile applies the present fields of update to the account.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*domain.User, error) {
	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Password != nil {
			hashed, err := s.hasher.Hash(*update.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.HashedPassword = hashed
		}

		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update profile",
			"error", err,
			"username", username)
		return nil, err
	}

	s.logger.Info("profile updated successfully",
		"username", username)
	return updated, nil
}

// Logout clears the stored token.
func (s *UserServiceImpl) Logout(ctx context.Context, username string) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for logout: %w", err)
		}

		user.Token = nil
		return txStore.Update(ctx, user)
	})
	if err != nil {
		s.logger.Error("failed to log out user",
			"error", err,
			"username", username)
		return err
	}

	s.logger.Info("user logged out successfully",
		"username", username)
	return nil
}
