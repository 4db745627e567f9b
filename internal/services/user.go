package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"announcehub/internal/domain"
)

const (
	defaultRole    = "organizer"
	minPasswordLen = 8
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	logger         *slog.Logger
	userRepo       domain.UserRepository
	roleRepo       domain.RoleRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repositories and auth
// ports. The logger reports best-effort failures, such as a welcome email
// that did not go out.
func NewUserService(logger *slog.Logger,
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		logger:         logger,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *userService) SignUp(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("invalid email format: %w", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrInvalidInput)
	}

	roleCode := strings.TrimSpace(strings.ToLower(role))
	if roleCode != "admin" && roleCode != "organizer" {
		roleCode = defaultRole
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, strings.TrimSpace(name), "", now, now)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	roleRecord, err := s.roleRepo.GetByCode(ctx, roleCode)
	if err != nil {
		return nil, fmt.Errorf("get role %q: %w", roleCode, err)
	}
	if err := s.userRepo.AssignRole(ctx, user.ID, roleRecord.ID); err != nil {
		return nil, fmt.Errorf("assign role: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{
			Email:     user.Email,
			FirstName: user.Name,
			UserID:    user.ID,
		}
		// Sign-up succeeds even when the welcome email does not go out.
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "email", user.Email, "err", err)
		}
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	roles, err := s.roleRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("load roles: %w", err)
	}
	roleCodes := make([]string, len(roles))
	for i, r := range roles {
		roleCodes[i] = r.Code
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, roleCodes, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user.Name = strings.TrimSpace(user.Name)
	user.LastName = strings.TrimSpace(user.LastName)
	if user.Email != "" && !emailRegexp.MatchString(user.Email) {
		return fmt.Errorf("invalid email format: %w", domain.ErrInvalidInput)
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return err
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
