package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"announcehub/internal/domain"
)

type announcementRepository struct {
	DB *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) domain.AnnouncementRepository {
	return &announcementRepository{
		DB: db,
	}
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (event_id, speaker_id, platform, body, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		a.EventID, a.SpeakerID, a.Platform, a.Body, a.ImageURL, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	query := `
		SELECT id, event_id, speaker_id, platform, body, image_url, post_url, posted_at, created_at, updated_at
		FROM announcements
		WHERE id = $1
	`
	a := &domain.Announcement{}
	var imageNull, postURLNull sql.NullString
	var postedNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.EventID, &a.SpeakerID, &a.Platform, &a.Body,
		&imageNull, &postURLNull, &postedNull, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if imageNull.Valid {
		a.ImageURL = &imageNull.String
	}
	if postURLNull.Valid {
		a.PostURL = &postURLNull.String
	}
	if postedNull.Valid {
		a.PostedAt = &postedNull.Time
	}
	return a, nil
}

func (r *announcementRepository) ListByEventID(ctx context.Context, eventID, speakerID string, platform domain.Platform) ([]*domain.Announcement, error) {
	query := `
		SELECT id, event_id, speaker_id, platform, body, image_url, post_url, posted_at, created_at, updated_at
		FROM announcements
		WHERE event_id = $1
	`
	args := []interface{}{eventID}
	n := 2
	if speakerID != "" {
		query += fmt.Sprintf(" AND speaker_id = $%d", n)
		args = append(args, speakerID)
		n++
	}
	if platform != "" {
		query += fmt.Sprintf(" AND platform = $%d", n)
		args = append(args, platform)
		n++
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	announcements := make([]*domain.Announcement, 0)
	for rows.Next() {
		a := &domain.Announcement{}
		var imageNull, postURLNull sql.NullString
		var postedNull sql.NullTime
		if err := rows.Scan(&a.ID, &a.EventID, &a.SpeakerID, &a.Platform, &a.Body, &imageNull, &postURLNull, &postedNull, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		if imageNull.Valid {
			a.ImageURL = &imageNull.String
		}
		if postURLNull.Valid {
			a.PostURL = &postURLNull.String
		}
		if postedNull.Valid {
			a.PostedAt = &postedNull.Time
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (r *announcementRepository) GetBySpeakerAndPlatform(ctx context.Context, speakerID string, platform domain.Platform) (*domain.Announcement, error) {
	query := `
		SELECT id, event_id, speaker_id, platform, body, image_url, post_url, posted_at, created_at, updated_at
		FROM announcements
		WHERE speaker_id = $1 AND platform = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	a := &domain.Announcement{}
	var imageNull, postURLNull sql.NullString
	var postedNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, speakerID, platform).Scan(
		&a.ID, &a.EventID, &a.SpeakerID, &a.Platform, &a.Body,
		&imageNull, &postURLNull, &postedNull, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if imageNull.Valid {
		a.ImageURL = &imageNull.String
	}
	if postURLNull.Valid {
		a.PostURL = &postURLNull.String
	}
	if postedNull.Valid {
		a.PostedAt = &postedNull.Time
	}
	return a, nil
}

func (r *announcementRepository) Update(ctx context.Context, id string, upd domain.AnnouncementUpdate) (*domain.Announcement, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Body != nil {
		setClauses = append(setClauses, fmt.Sprintf("body = $%d", n))
		args = append(args, *upd.Body)
		n++
	}
	if upd.ImageURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("image_url = $%d", n))
		args = append(args, *upd.ImageURL)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE announcements SET %s
		WHERE id = $%d
		RETURNING id, event_id, speaker_id, platform, body, image_url, post_url, posted_at, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	a := &domain.Announcement{}
	var imageNull, postURLNull sql.NullString
	var postedNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&a.ID, &a.EventID, &a.SpeakerID, &a.Platform, &a.Body,
		&imageNull, &postURLNull, &postedNull, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if imageNull.Valid {
		a.ImageURL = &imageNull.String
	}
	if postURLNull.Valid {
		a.PostURL = &postURLNull.String
	}
	if postedNull.Valid {
		a.PostedAt = &postedNull.Time
	}
	return a, nil
}

func (r *announcementRepository) MarkPublished(ctx context.Context, id, postURL string, postedAt time.Time) (*domain.Announcement, error) {
	query := `
		UPDATE announcements
		SET post_url = $1, posted_at = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, event_id, speaker_id, platform, body, image_url, post_url, posted_at, created_at, updated_at
	`
	a := &domain.Announcement{}
	var imageNull, postURLNull sql.NullString
	var postedNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, postURL, postedAt, id).Scan(
		&a.ID, &a.EventID, &a.SpeakerID, &a.Platform, &a.Body,
		&imageNull, &postURLNull, &postedNull, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if imageNull.Valid {
		a.ImageURL = &imageNull.String
	}
	if postURLNull.Valid {
		a.PostURL = &postURLNull.String
	}
	if postedNull.Valid {
		a.PostedAt = &postedNull.Time
	}
	return a, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM announcements WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
