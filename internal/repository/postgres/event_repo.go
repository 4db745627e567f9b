package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"announcehub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (owner_id, name, description, start_date, timezone, drip_days_before, drip_start_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OwnerID, e.Name, e.Description, e.StartDate, e.Timezone,
		e.DripDaysBefore, e.DripStartTime, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, owner_id, name, description, start_date, timezone, drip_days_before, drip_start_time, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var descNull sql.NullString
	var startNull sql.NullTime
	var daysNull sql.NullInt64
	var startTimeNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OwnerID, &e.Name, &descNull, &startNull, &e.Timezone,
		&daysNull, &startTimeNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if startNull.Valid {
		e.StartDate = &startNull.Time
	}
	if daysNull.Valid {
		days := int(daysNull.Int64)
		e.DripDaysBefore = &days
	}
	if startTimeNull.Valid {
		e.DripStartTime = &startTimeNull.String
	}
	return e, nil
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `
		SELECT id, owner_id, name, description, start_date, timezone, drip_days_before, drip_start_time, created_at, updated_at
		FROM events
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var descNull sql.NullString
		var startNull sql.NullTime
		var daysNull sql.NullInt64
		var startTimeNull sql.NullString
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Name, &descNull, &startNull, &e.Timezone, &daysNull, &startTimeNull, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			e.Description = &descNull.String
		}
		if startNull.Valid {
			e.StartDate = &startNull.Time
		}
		if daysNull.Valid {
			days := int(daysNull.Int64)
			e.DripDaysBefore = &days
		}
		if startTimeNull.Valid {
			e.DripStartTime = &startTimeNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.StartDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_date = $%d", n))
		args = append(args, *upd.StartDate)
		n++
	}
	if upd.Timezone != nil {
		setClauses = append(setClauses, fmt.Sprintf("timezone = $%d", n))
		args = append(args, *upd.Timezone)
		n++
	}
	if upd.DripDaysBefore != nil {
		setClauses = append(setClauses, fmt.Sprintf("drip_days_before = $%d", n))
		args = append(args, *upd.DripDaysBefore)
		n++
	}
	if upd.DripStartTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("drip_start_time = $%d", n))
		args = append(args, *upd.DripStartTime)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, owner_id, name, description, start_date, timezone, drip_days_before, drip_start_time, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	e := &domain.Event{}
	var descNull sql.NullString
	var startNull sql.NullTime
	var daysNull sql.NullInt64
	var startTimeNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.OwnerID, &e.Name, &descNull, &startNull, &e.Timezone,
		&daysNull, &startTimeNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if startNull.Valid {
		e.StartDate = &startNull.Time
	}
	if daysNull.Valid {
		days := int(daysNull.Int64)
		e.DripDaysBefore = &days
	}
	if startTimeNull.Valid {
		e.DripStartTime = &startTimeNull.String
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
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
