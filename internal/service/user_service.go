package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/marquisSam/House-hub/internal/domain"
	"github.com/marquisSam/House-hub/internal/dto"
	"github.com/marquisSam/House-hub/internal/repo"
	"github.com/marquisSam/House-hub/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UserService handles user CRUD and email uniqueness.
type UserService struct {
	store repo.Store
	log   *zap.Logger
}

// NewUserService returns a new UserService.
func NewUserService(store repo.Store, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

func (s *UserService) ListAll(ctx context.Context) ([]dom.User, error) {
	return s.store.Users().List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (dom.User, error) {
	u, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return dom.User{}, ErrUserNotFound
	}
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (dom.User, error) {
	email := normalizeEmail(req.Email)
	if email != nil {
		exists, err := s.EmailExists(ctx, *email, uuid.Nil)
		if err != nil {
			return dom.User{}, err
		}
		if exists {
			return dom.User{}, ErrEmailExists
		}
	}

	u := dom.User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth.Ptr(),
		Gender:      req.Gender,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
	}
	created, err := s.store.Users().Create(ctx, u)
	if err != nil {
		// Lost a race to a concurrent insert with the same email.
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailExists
		}
		s.log.Error("create user", zap.Error(err))
		return dom.User{}, err
	}
	return created, nil
}

// Update merges only the non-nil fields of req onto the stored user.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (dom.User, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.User{}, err
	}

	if email := normalizeEmail(req.Email); email != nil && !sameEmail(existing.Email, *email) {
		exists, err := s.EmailExists(ctx, *email, id)
		if err != nil {
			return dom.User{}, err
		}
		if exists {
			return dom.User{}, ErrEmailExists
		}
	}

	patch := existing
	if req.FirstName != nil {
		patch.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		patch.LastName = strings.TrimSpace(*req.LastName)
	}
	if email := normalizeEmail(req.Email); email != nil {
		patch.Email = email
	}
	if req.PhoneNumber != nil {
		patch.PhoneNumber = req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		patch.DateOfBirth = req.DateOfBirth.Ptr()
	}
	if req.Gender != nil {
		patch.Gender = req.Gender
	}
	if req.Address != nil {
		patch.Address = req.Address
	}
	if req.City != nil {
		patch.City = req.City
	}
	if req.PostalCode != nil {
		patch.PostalCode = req.PostalCode
	}
	if req.Country != nil {
		patch.Country = req.Country
	}
	if req.IsActive != nil {
		patch.IsActive = *req.IsActive
	}

	updated, err := s.store.Users().Update(ctx, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailExists
		}
		s.log.Error("update user", zap.Error(err), zap.String("user_id", id.String()))
		return dom.User{}, err
	}
	return updated, nil
}

// Delete removes the user and returns the pre-deletion snapshot. Assignment
// rows go with it through ON DELETE CASCADE.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (dom.User, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.User{}, err
	}
	deleted, err := s.store.Users().Delete(ctx, id)
	if err != nil {
		s.log.Error("delete user", zap.Error(err), zap.String("user_id", id.String()))
		return dom.User{}, err
	}
	if !deleted {
		return dom.User{}, ErrUserNotFound
	}
	return existing, nil
}

// EmailExists reports whether another user (excluding excludeID when not
// uuid.Nil) has this exact email. Blank email is never taken.
func (s *UserService) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	return s.store.Users().EmailExists(ctx, email, excludeID)
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func sameEmail(stored *string, incoming string) bool {
	return stored != nil && *stored == incoming
}
