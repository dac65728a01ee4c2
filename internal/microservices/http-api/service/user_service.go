package service

import (
	"context"
	"errors"
	"fmt"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

var (
	errUsernameExists = errors.New("a user with that username already exists")
	errEmailExists    = errors.New("a user with that email already exists")
)

type UserService interface {
	List(ctx context.Context, search string, page dto.Page) ([]models.User, int64, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
	UpdateMe(ctx context.Context, me *models.User, req dto.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, search string, page dto.Page) ([]models.User, int64, error) {
	return s.repo.List(ctx, search, page.Limit, page.Offset)
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}
	if err := s.checkUnique(ctx, "", req.Username, req.Email); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, mapWriteError(err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapReadError(err, "user")
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, req)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return mapReadError(s.repo.Delete(ctx, username), "user")
}

// UpdateMe edits the caller's own profile. The role stays whatever is stored,
// whatever the payload says.
func (s *userService) UpdateMe(ctx context.Context, me *models.User, req dto.UpdateUserRequest) (*models.User, error) {
	req.Role = nil
	current, err := s.repo.FindByID(ctx, me.ID)
	if err != nil {
		return nil, mapReadError(err, "user")
	}
	return s.apply(ctx, current, req)
}

func (s *userService) apply(ctx context.Context, user *models.User, req dto.UpdateUserRequest) (*models.User, error) {
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	username, email := user.Username, user.Email
	if req.Username != nil {
		username = *req.Username
	}
	if req.Email != nil {
		email = *req.Email
	}
	if err := s.checkUnique(ctx, user.ID, username, email); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, mapWriteError(err)
	}
	return user, nil
}

// checkUnique rejects a username or email held by a user other than selfID.
func (s *userService) checkUnique(ctx context.Context, selfID, username, email string) error {
	verr := &ValidationError{}

	other, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil && other.ID != selfID:
		verr.Add("username", errUsernameExists.Error())
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return err
	}

	other, err = s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && other.ID != selfID:
		verr.Add("email", errEmailExists.Error())
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return err
	}
	return verr.OrNil()
}

// mapReadError converts a repository miss into ErrNotFound naming what was missing.
func mapReadError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// mapWriteError turns constraint violations that slipped past the checks
// into conflicts.
func mapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	}
	return err
}
