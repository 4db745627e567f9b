package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"announcehub/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{
		DB: db,
	}
}

func (r *speakerRepository) Create(ctx context.Context, sp *domain.Speaker) error {
	query := `
		INSERT INTO speakers (event_id, name, title, company, bio, headshot_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		sp.EventID, sp.Name, sp.Title, sp.Company, sp.Bio, sp.HeadshotURL, sp.CreatedAt, sp.UpdatedAt,
	).Scan(&sp.ID)
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `
		SELECT id, event_id, name, title, company, bio, headshot_url, created_at, updated_at
		FROM speakers
		WHERE id = $1
	`
	sp := &domain.Speaker{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&sp.ID, &sp.EventID, &sp.Name, &sp.Title, &sp.Company, &sp.Bio, &sp.HeadshotURL, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

// ListByEventID returns the event's speakers oldest first. This order drives
// drip placement, so the id tie-break keeps it stable across runs.
func (r *speakerRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	query := `
		SELECT id, event_id, name, title, company, bio, headshot_url, created_at, updated_at
		FROM speakers
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		sp := &domain.Speaker{}
		if err := rows.Scan(&sp.ID, &sp.EventID, &sp.Name, &sp.Title, &sp.Company, &sp.Bio, &sp.HeadshotURL, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
			return nil, err
		}
		speakers = append(speakers, sp)
	}
	return speakers, rows.Err()
}

func (r *speakerRepository) Update(ctx context.Context, speakerID string, upd domain.SpeakerUpdate) (*domain.Speaker, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *upd.Title)
		n++
	}
	if upd.Company != nil {
		setClauses = append(setClauses, fmt.Sprintf("company = $%d", n))
		args = append(args, *upd.Company)
		n++
	}
	if upd.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", n))
		args = append(args, *upd.Bio)
		n++
	}
	if upd.HeadshotURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("headshot_url = $%d", n))
		args = append(args, *upd.HeadshotURL)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, speakerID)
	}
	args = append(args, speakerID)
	query := fmt.Sprintf(`
		UPDATE speakers SET %s
		WHERE id = $%d
		RETURNING id, event_id, name, title, company, bio, headshot_url, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	sp := &domain.Speaker{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&sp.ID, &sp.EventID, &sp.Name, &sp.Title, &sp.Company, &sp.Bio, &sp.HeadshotURL, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

func (r *speakerRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM speakers WHERE id = $1`
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
