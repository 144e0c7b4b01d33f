package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/validation"
)

// AccountUseCase registers, authenticates and edits accounts.
type AccountUseCase struct {
	users     port.UserRepository
	hasher    port.PasswordHasher
	tx        resource.Transactor
	publisher resource.ChangePublisher
	now       func() time.Time
}

func NewAccountUseCase(users port.UserRepository, hasher port.PasswordHasher, tx resource.Transactor, publisher resource.ChangePublisher) *AccountUseCase {
	return &AccountUseCase{users: users, hasher: hasher, tx: tx, publisher: publisher, now: time.Now}
}

// Register creates an account from the write fields of patch.
func (uc *AccountUseCase) Register(ctx context.Context, patch domain.UserPatch) (*domain.User, error) {
	user := domain.NewUser()
	patch.Apply(user)
	user.Email = strings.TrimSpace(user.Email)
	if !patch.Password.Set || patch.Password.Value == "" {
		return nil, fmt.Errorf("%w: password is required", resource.ErrInvalid)
	}
	if err := uc.setPassword(user, patch.Password.Value); err != nil {
		return nil, err
	}
	user.MarkCreated(uc.now().UTC())
	if err := validation.Struct(user); err != nil {
		return nil, err
	}

	err := uc.tx.Within(ctx, func(ctx context.Context) error {
		if err := uc.ensureEmailAvailable(ctx, user.Email, 0); err != nil {
			return err
		}
		return uc.users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, resource.ActionCreated, user)
	return user, nil
}

// Login returns the account matching email and password.
func (uc *AccountUseCase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, port.ErrMissingCredentials
	}
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, port.ErrMissingCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := uc.hasher.Compare([]byte(user.Password), []byte(password)); err != nil {
		slog.DebugContext(ctx, "login password mismatch", slog.Uint64("userId", uint64(user.ID)))
		return nil, port.ErrMissingCredentials
	}
	return user, nil
}

// Authenticate resolves the account owning token.
func (uc *AccountUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, port.ErrMissingCredentials
	}
	user, err := uc.users.FindByAPIToken(ctx, token)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, port.ErrMissingCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

// Edit merges patch onto the account of userID; a present password is hashed again.
func (uc *AccountUseCase) Edit(ctx context.Context, userID uint, patch domain.UserPatch) (*domain.User, error) {
	var user *domain.User
	err := uc.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		previousEmail := user.Email
		patch.Apply(user)
		user.Email = strings.TrimSpace(user.Email)
		if patch.Password.Set {
			if patch.Password.Value == "" {
				return fmt.Errorf("%w: password must not be empty", resource.ErrInvalid)
			}
			if err := uc.setPassword(user, patch.Password.Value); err != nil {
				return err
			}
		}
		user.MarkUpdated(uc.now().UTC())
		if err := validation.Struct(user); err != nil {
			return err
		}
		if user.Email != previousEmail {
			if err := uc.ensureEmailAvailable(ctx, user.Email, user.ID); err != nil {
				return err
			}
		}
		return uc.users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, resource.ActionUpdated, user)
	return user, nil
}

func (uc *AccountUseCase) setPassword(user *domain.User, plain string) error {
	hash, err := uc.hasher.Hash([]byte(plain))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)
	return nil
}

func (uc *AccountUseCase) ensureEmailAvailable(ctx context.Context, email string, ownerID uint) error {
	existing, err := uc.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, resource.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return port.ErrEmailTaken
	default:
		return nil
	}
}

func (uc *AccountUseCase) publish(ctx context.Context, action string, user *domain.User) {
	if uc.publisher == nil {
		return
	}
	change := resource.Change{
		Entity:     domain.EntityName,
		Action:     action,
		ResourceID: user.ID,
		Data:       user.Profile(),
		OccurredAt: uc.now().UTC(),
		Audience:   user.ID,
	}
	if err := uc.publisher.PublishChange(ctx, change); err != nil {
		slog.WarnContext(ctx, "publish account change failed", slog.String("action", action), slog.Any("error", err))
	}
}
