package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"announcehub/internal/domain"
)

type scheduledPostRepository struct {
	DB *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) domain.ScheduledPostRepository {
	return &scheduledPostRepository{
		DB: db,
	}
}

func (r *scheduledPostRepository) Create(ctx context.Context, p *domain.ScheduledPost) error {
	query := `
		INSERT INTO scheduled_posts (event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.EventID, p.SpeakerID, p.BatchID, p.Platform, p.ScheduledAt,
		p.Timezone, p.PostText, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledPost, error) {
	query := `
		SELECT id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at
		FROM scheduled_posts
		WHERE id = $1
	`
	p := &domain.ScheduledPost{}
	var errNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.EventID, &p.SpeakerID, &p.BatchID, &p.Platform, &p.ScheduledAt,
		&p.Timezone, &p.PostText, &p.Status, &errNull, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if errNull.Valid {
		p.Error = &errNull.String
	}
	return p, nil
}

// ListActiveByEventID returns the event's pending and posted reservations in
// scheduled order. These are the occupied slots a planning run must avoid.
func (r *scheduledPostRepository) ListActiveByEventID(ctx context.Context, eventID string) ([]*domain.ScheduledPost, error) {
	query := `
		SELECT id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at
		FROM scheduled_posts
		WHERE event_id = $1 AND status IN ($2, $3)
		ORDER BY scheduled_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, domain.PostStatusPending, domain.PostStatusPosted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := make([]*domain.ScheduledPost, 0)
	for rows.Next() {
		p := &domain.ScheduledPost{}
		var errNull sql.NullString
		if err := rows.Scan(&p.ID, &p.EventID, &p.SpeakerID, &p.BatchID, &p.Platform, &p.ScheduledAt, &p.Timezone, &p.PostText, &p.Status, &errNull, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if errNull.Valid {
			p.Error = &errNull.String
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *scheduledPostRepository) ListByEventID(ctx context.Context, eventID string, status domain.PostStatus, params domain.PaginationParams) ([]*domain.ScheduledPost, int, error) {
	where := "WHERE event_id = $1"
	args := []interface{}{eventID}
	n := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, status)
		n++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM scheduled_posts ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at
		FROM scheduled_posts
		%s
		ORDER BY scheduled_at DESC
		LIMIT $%d OFFSET $%d
	`, where, n, n+1)
	args = append(args, params.Limit(), params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	posts := make([]*domain.ScheduledPost, 0)
	for rows.Next() {
		p := &domain.ScheduledPost{}
		var errNull sql.NullString
		if err := rows.Scan(&p.ID, &p.EventID, &p.SpeakerID, &p.BatchID, &p.Platform, &p.ScheduledAt, &p.Timezone, &p.PostText, &p.Status, &errNull, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if errNull.Valid {
			p.Error = &errNull.String
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *scheduledPostRepository) UpdateStatus(ctx context.Context, id string, status domain.PostStatus, errMsg *string) (*domain.ScheduledPost, error) {
	query := `
		UPDATE scheduled_posts
		SET status = $1, error = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at
	`
	p := &domain.ScheduledPost{}
	var errNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, status, errMsg, id).Scan(
		&p.ID, &p.EventID, &p.SpeakerID, &p.BatchID, &p.Platform, &p.ScheduledAt,
		&p.Timezone, &p.PostText, &p.Status, &errNull, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if errNull.Valid {
		p.Error = &errNull.String
	}
	return p, nil
}
