package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"announcehub/internal/domain"
)

type socialAccountService struct {
	accountRepo    domain.SocialAccountRepository
	contextTimeout time.Duration
}

func NewSocialAccountService(accountRepo domain.SocialAccountRepository, timeout time.Duration) domain.SocialAccountService {
	return &socialAccountService{
		accountRepo:    accountRepo,
		contextTimeout: timeout,
	}
}

func (s *socialAccountService) Connect(ctx context.Context, userID string, platform domain.Platform, handle, accessToken string, expiresAt *time.Time) (*domain.SocialAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if platform == domain.PlatformAll || !domain.ValidPlatform(platform) {
		return nil, fmt.Errorf("unknown platform %q: %w", platform, domain.ErrInvalidInput)
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, fmt.Errorf("handle is required: %w", domain.ErrInvalidInput)
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required: %w", domain.ErrInvalidInput)
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("access token already expired: %w", domain.ErrInvalidInput)
	}

	account := domain.NewSocialAccount(userID, platform, handle, accessToken, expiresAt, time.Now())
	saved, err := s.accountRepo.Upsert(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("save social account: %w", err)
	}
	return saved, nil
}

func (s *socialAccountService) ListConnections(ctx context.Context, userID string) ([]*domain.SocialAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list social accounts: %w", err)
	}
	if accounts == nil {
		accounts = []*domain.SocialAccount{}
	}
	return accounts, nil
}

func (s *socialAccountService) Disconnect(ctx context.Context, userID string, platform domain.Platform) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.accountRepo.Delete(ctx, userID, platform); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete social account: %w", err)
	}
	return nil
}
