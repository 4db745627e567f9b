package postgres

import (
	"context"
	"database/sql"
	"errors"

	"announcehub/internal/domain"
)

type socialAccountRepository struct {
	DB *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) domain.SocialAccountRepository {
	return &socialAccountRepository{
		DB: db,
	}
}

// Upsert inserts the connection or, when the (user_id, platform) pair already
// exists, replaces its handle, token and expiry in place.
func (r *socialAccountRepository) Upsert(ctx context.Context, account *domain.SocialAccount) (*domain.SocialAccount, error) {
	query := `
		INSERT INTO social_accounts (user_id, platform, handle, access_token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, platform) DO UPDATE
		SET handle = EXCLUDED.handle, access_token = EXCLUDED.access_token, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, platform, handle, access_token, expires_at, created_at, updated_at
	`
	a := &domain.SocialAccount{}
	var expiresNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query,
		account.UserID, account.Platform, account.Handle, account.AccessToken,
		account.ExpiresAt, account.CreatedAt, account.UpdatedAt,
	).Scan(&a.ID, &a.UserID, &a.Platform, &a.Handle, &a.AccessToken, &expiresNull, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expiresNull.Valid {
		a.ExpiresAt = &expiresNull.Time
	}
	return a, nil
}

func (r *socialAccountRepository) GetByUserAndPlatform(ctx context.Context, userID string, platform domain.Platform) (*domain.SocialAccount, error) {
	query := `
		SELECT id, user_id, platform, handle, access_token, expires_at, created_at, updated_at
		FROM social_accounts
		WHERE user_id = $1 AND platform = $2
	`
	a := &domain.SocialAccount{}
	var expiresNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID, platform).Scan(
		&a.ID, &a.UserID, &a.Platform, &a.Handle, &a.AccessToken, &expiresNull, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if expiresNull.Valid {
		a.ExpiresAt = &expiresNull.Time
	}
	return a, nil
}

func (r *socialAccountRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.SocialAccount, error) {
	query := `
		SELECT id, user_id, platform, handle, access_token, expires_at, created_at, updated_at
		FROM social_accounts
		WHERE user_id = $1
		ORDER BY platform ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	accounts := make([]*domain.SocialAccount, 0)
	for rows.Next() {
		a := &domain.SocialAccount{}
		var expiresNull sql.NullTime
		if err := rows.Scan(&a.ID, &a.UserID, &a.Platform, &a.Handle, &a.AccessToken, &expiresNull, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		if expiresNull.Valid {
			a.ExpiresAt = &expiresNull.Time
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *socialAccountRepository) Delete(ctx context.Context, userID string, platform domain.Platform) error {
	query := `DELETE FROM social_accounts WHERE user_id = $1 AND platform = $2`
	result, err := r.DB.ExecContext(ctx, query, userID, platform)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
