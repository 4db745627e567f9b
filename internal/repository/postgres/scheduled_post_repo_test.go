package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"announcehub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var postCols = []string{"id", "event_id", "speaker_id", "batch_id", "platform", "scheduled_at", "timezone", "post_text", "status", "error", "created_at", "updated_at"}

func TestScheduledPostRepository_Create(t *testing.T) {
	ctx := context.Background()
	scheduledAt := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	created := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		post    *domain.ScheduledPost
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			post: &domain.ScheduledPost{
				EventID:     "ev-1",
				SpeakerID:   "sp-1",
				BatchID:     "batch-1",
				Platform:    domain.PlatformLinkedIn,
				ScheduledAt: scheduledAt,
				Timezone:    "UTC",
				PostText:    "Ada takes the stage!",
				Status:      domain.PostStatusPending,
				CreatedAt:   created,
				UpdatedAt:   created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO scheduled_posts \(event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, created_at, updated_at\)`).
					WithArgs("ev-1", "sp-1", "batch-1", "linkedin", scheduledAt, "UTC", "Ada takes the stage!", "pending", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("post-uuid-1"))
			},
			wantID:  "post-uuid-1",
			wantErr: false,
		},
		{
			name: "db error",
			post: &domain.ScheduledPost{
				EventID:     "ev-1",
				SpeakerID:   "sp-1",
				BatchID:     "batch-1",
				Platform:    domain.PlatformAll,
				ScheduledAt: scheduledAt,
				Timezone:    "UTC",
				PostText:    "text",
				Status:      domain.PostStatusPending,
				CreatedAt:   created,
				UpdatedAt:   created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO scheduled_posts`).
					WillReturnError(sql.ErrConnDone)
			},
			wantID:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewScheduledPostRepository(db)
			err = repo.Create(ctx, tt.post)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.post.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScheduledPostRepository_ListActiveByEventID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	first := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	second := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("returns pending and posted in scheduled order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(postCols).
			AddRow("post-1", "ev-1", "sp-1", "batch-1", "linkedin", first, "UTC", "Ada takes the stage!", "pending", nil, created, created).
			AddRow("post-2", "ev-1", "sp-2", "batch-1", "linkedin", second, "UTC", "Grace is speaking!", "posted", nil, created, created)
		mock.ExpectQuery(`SELECT id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at`).
			WithArgs("ev-1", "pending", "posted").
			WillReturnRows(rows)

		repo := NewScheduledPostRepository(db)
		got, err := repo.ListActiveByEventID(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "post-1", got[0].ID)
		require.Equal(t, domain.PostStatusPending, got[0].Status)
		require.Nil(t, got[0].Error)
		require.Equal(t, domain.PostStatusPosted, got[1].Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at`).
			WithArgs("ev-none", "pending", "posted").
			WillReturnRows(sqlmock.NewRows(postCols))

		repo := NewScheduledPostRepository(db)
		got, err := repo.ListActiveByEventID(ctx, "ev-none")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScheduledPostRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	scheduledAt := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("all statuses paginated", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scheduled_posts WHERE event_id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
		mock.ExpectQuery(`SELECT id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at`).
			WithArgs("ev-1", 20, 0).
			WillReturnRows(sqlmock.NewRows(postCols).
				AddRow("post-2", "ev-1", "sp-2", "batch-1", "linkedin", scheduledAt, "UTC", "Grace is speaking!", "pending", nil, created, created))

		repo := NewScheduledPostRepository(db)
		got, total, err := repo.ListByEventID(ctx, "ev-1", "", domain.PaginationParams{Page: 1, PageSize: 20})
		require.NoError(t, err)
		require.Equal(t, 42, total)
		require.Len(t, got, 1)
		require.Equal(t, "post-2", got[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filtered by status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		errMsg := "social account not connected"
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scheduled_posts WHERE event_id = \$1 AND status = \$2`).
			WithArgs("ev-1", "failed").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at`).
			WithArgs("ev-1", "failed", 20, 0).
			WillReturnRows(sqlmock.NewRows(postCols).
				AddRow("post-3", "ev-1", "sp-1", "batch-2", "twitter", scheduledAt, "UTC", "text", "failed", errMsg, created, created))

		repo := NewScheduledPostRepository(db)
		got, total, err := repo.ListByEventID(ctx, "ev-1", domain.PostStatusFailed, domain.PaginationParams{Page: 1, PageSize: 20})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].Error)
		require.Equal(t, errMsg, *got[0].Error)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second page offset", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scheduled_posts WHERE event_id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(`SELECT id, event_id, speaker_id, batch_id, platform, scheduled_at, timezone, post_text, status, error, created_at, updated_at`).
			WithArgs("ev-1", 10, 10).
			WillReturnRows(sqlmock.NewRows(postCols))

		repo := NewScheduledPostRepository(db)
		got, total, err := repo.ListByEventID(ctx, "ev-1", "", domain.PaginationParams{Page: 2, PageSize: 10})
		require.NoError(t, err)
		require.Equal(t, 12, total)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scheduled_posts`).
			WithArgs("ev-1").
			WillReturnError(sql.ErrConnDone)

		repo := NewScheduledPostRepository(db)
		got, total, err := repo.ListByEventID(ctx, "ev-1", "", domain.PaginationParams{Page: 1, PageSize: 20})
		require.Error(t, err)
		require.Nil(t, got)
		require.Zero(t, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScheduledPostRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 6, 12, 10, 0, 1, 0, time.UTC)
	scheduledAt := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)

	t.Run("marks posted and clears error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE scheduled_posts`).
			WithArgs("posted", nil, "post-1").
			WillReturnRows(sqlmock.NewRows(postCols).
				AddRow("post-1", "ev-1", "sp-1", "batch-1", "linkedin", scheduledAt, "UTC", "Ada takes the stage!", "posted", nil, created, updated))

		repo := NewScheduledPostRepository(db)
		got, err := repo.UpdateStatus(ctx, "post-1", domain.PostStatusPosted, nil)
		require.NoError(t, err)
		require.Equal(t, domain.PostStatusPosted, got.Status)
		require.Nil(t, got.Error)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("marks failed with error message", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		errMsg := "social account not connected"
		mock.ExpectQuery(`UPDATE scheduled_posts`).
			WithArgs("failed", errMsg, "post-1").
			WillReturnRows(sqlmock.NewRows(postCols).
				AddRow("post-1", "ev-1", "sp-1", "batch-1", "linkedin", scheduledAt, "UTC", "Ada takes the stage!", "failed", errMsg, created, updated))

		repo := NewScheduledPostRepository(db)
		got, err := repo.UpdateStatus(ctx, "post-1", domain.PostStatusFailed, &errMsg)
		require.NoError(t, err)
		require.Equal(t, domain.PostStatusFailed, got.Status)
		require.NotNil(t, got.Error)
		require.Equal(t, errMsg, *got.Error)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE scheduled_posts`).
			WithArgs("cancelled", nil, "post-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewScheduledPostRepository(db)
		got, err := repo.UpdateStatus(ctx, "post-missing", domain.PostStatusCancelled, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
