package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yamdb/internal/config"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/middleware/auth"
)

var (
	errEmailTaken    = errors.New("this email is registered to another username")
	errUsernameTaken = errors.New("this username is registered to another email")
)

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.SignUpResponse, error)
	IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	ConfirmationCode(user *models.User) string
}

type authService struct {
	userRepo repository.UserRepository
	codes    *auth.CodeGenerator
	tokens   *auth.TokenManager
	mail     mailer.Mailer
	from     string
	logger   *slog.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes *auth.CodeGenerator,
	tokens *auth.TokenManager,
	mail mailer.Mailer,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo: userRepo,
		codes:    codes,
		tokens:   tokens,
		mail:     mail,
		from:     cfg.DefaultFromEmail,
		logger:   logger,
	}
}

// SignUp registers the (username, email) pair, or reuses it when it already
// exists, and mails a confirmation code. A username or email that belongs to
// a different pair is rejected.
func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.SignUpResponse, error) {
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	user, err := s.resolveSignUp(ctx, req)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{Username: req.Username, Email: req.Email, Role: models.RoleUser}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if !errors.Is(err, repository.ErrDuplicate) {
				return nil, err
			}
			// lost a race with a concurrent signup; the checks decide again
			user, err = s.resolveSignUp(ctx, req)
			if err != nil {
				return nil, err
			}
			if user == nil {
				return nil, ErrConflict
			}
		} else {
			s.logger.InfoContext(ctx, "user signed up", "username", user.Username)
		}
	}

	if err := s.sendCode(ctx, user); err != nil {
		return nil, err
	}
	return &dto.SignUpResponse{Email: user.Email, Username: user.Username}, nil
}

// resolveSignUp returns the existing user for an exact pair, nil when both
// the username and the email are free, or a validation error.
func (s *authService) resolveSignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error) {
	byEmail, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	byUsername, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	verr := &ValidationError{}
	if byEmail != nil && byEmail.Username != req.Username {
		verr.Add("email", errEmailTaken.Error())
	}
	if byUsername != nil && byUsername.Email != req.Email {
		verr.Add("username", errUsernameTaken.Error())
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return byUsername, nil
}

func (s *authService) sendCode(ctx context.Context, user *models.User) error {
	msg, err := mailer.ConfirmationMessage(s.from, user.Email, user.Username, s.ConfirmationCode(user))
	if err != nil {
		return err
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "confirmation email failed", "username", user.Username, "error", err)
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

// ConfirmationCode returns the current code for user.
func (s *authService) ConfirmationCode(user *models.User) string {
	return s.codes.Make(subjectOf(user))
}

// IssueToken exchanges a confirmation code for an access token. The code is
// not consumed.
func (s *authService) IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %q: %w", req.Username, ErrNotFound)
		}
		return nil, err
	}

	if !s.codes.Check(subjectOf(user), req.ConfirmationCode) {
		return nil, fieldError("confirmation_code", ErrInvalidConfirmationCode)
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &dto.TokenResponse{Token: token}, nil
}

// Authenticate resolves a bearer token to the stored user, so role changes
// apply to tokens issued earlier.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func subjectOf(user *models.User) auth.Subject {
	return auth.Subject{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		LastLogin: user.LastLogin,
	}
}
