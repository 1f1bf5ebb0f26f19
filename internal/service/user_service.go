package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/service/auth"
	"github.com/verdantlabs/verdant-api/internal/store"
)

// UserService manages the account behind the game state.
type UserService interface {
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ChangePassword replaces the user's password after verifying the
	// current one. Returns ErrInvalidCredentials when the current password
	// does not match.
	ChangePassword(ctx context.Context, userID uuid.UUID, current, updated string) error

	// DeleteAccount removes the user. Game state rows cascade with the
	// account.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	db        *sql.DB
	logger    *slog.Logger
	runTx     func(ctx context.Context, fn store.TxFn) error
}

// NewUserService creates a UserService backed by the given store.
func NewUserService(userStore store.UserStore, db *sql.DB, verifier auth.PasswordVerifier, logger *slog.Logger) UserService {
	s := &userService{
		userStore: userStore,
		verifier:  verifier,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, current, updated string) error {
	return s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for password change: %w", err)
		}

		if err := s.verifier.Compare(user.HashedPassword, current); err != nil {
			s.logger.Debug("password change rejected", "user_id", userID)
			return ErrInvalidCredentials
		}

		// The store hashes Password on update.
		user.Password = updated
		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		s.logger.Info("password changed", "user_id", userID)
		return nil
	})
}

func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		if err := txStore.Delete(ctx, userID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return err
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}

		s.logger.Info("account deleted", "user_id", userID)
		return nil
	})
}
