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

var speakerCols = []string{"id", "event_id", "name", "title", "company", "bio", "headshot_url", "created_at", "updated_at"}

func TestSpeakerRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		speaker *domain.Speaker
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			speaker: &domain.Speaker{
				EventID:     "ev-1",
				Name:        "Ada Lovelace",
				Title:       "Countess of Computing",
				Company:     "Analytical Engines Ltd",
				Bio:         "Wrote the first program.",
				HeadshotURL: "https://cdn.example.com/ada.jpg",
				CreatedAt:   created,
				UpdatedAt:   created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO speakers \(event_id, name, title, company, bio, headshot_url, created_at, updated_at\)`).
					WithArgs("ev-1", "Ada Lovelace", "Countess of Computing", "Analytical Engines Ltd", "Wrote the first program.", "https://cdn.example.com/ada.jpg", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sp-uuid-1"))
			},
			wantID:  "sp-uuid-1",
			wantErr: false,
		},
		{
			name: "db error",
			speaker: &domain.Speaker{
				EventID:   "ev-1",
				Name:      "Grace",
				CreatedAt: created,
				UpdatedAt: created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO speakers`).
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
			repo := NewSpeakerRepository(db)
			err = repo.Create(ctx, tt.speaker)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.speaker.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSpeakerRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	created2 := created.Add(time.Minute)

	t.Run("oldest first", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(speakerCols).
			AddRow("sp-1", "ev-1", "Ada", "", "", "", "", created, created).
			AddRow("sp-2", "ev-1", "Grace", "", "", "", "", created2, created2)
		mock.ExpectQuery(`SELECT id, event_id, name, title, company, bio, headshot_url, created_at, updated_at`).
			WithArgs("ev-1").
			WillReturnRows(rows)

		repo := NewSpeakerRepository(db)
		got, err := repo.ListByEventID(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "Ada", got[0].Name)
		require.Equal(t, "Grace", got[1].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, name, title, company, bio, headshot_url, created_at, updated_at`).
			WithArgs("ev-none").
			WillReturnRows(sqlmock.NewRows(speakerCols))

		repo := NewSpeakerRepository(db)
		got, err := repo.ListByEventID(ctx, "ev-none")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSpeakerRepository_Update(t *testing.T) {
	ctx := context.Background()
	title := "Rear Admiral"
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("updates only provided fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE speakers SET updated_at = NOW\(\), title = \$1`).
			WithArgs("Rear Admiral", "sp-1").
			WillReturnRows(sqlmock.NewRows(speakerCols).
				AddRow("sp-1", "ev-1", "Grace Hopper", "Rear Admiral", "", "", "", created, updated))

		repo := NewSpeakerRepository(db)
		got, err := repo.Update(ctx, "sp-1", domain.SpeakerUpdate{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "Rear Admiral", got.Title)
		require.Equal(t, "Grace Hopper", got.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no fields falls back to fetch", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, name, title, company, bio, headshot_url, created_at, updated_at`).
			WithArgs("sp-1").
			WillReturnRows(sqlmock.NewRows(speakerCols).
				AddRow("sp-1", "ev-1", "Grace Hopper", "", "", "", "", created, created))

		repo := NewSpeakerRepository(db)
		got, err := repo.Update(ctx, "sp-1", domain.SpeakerUpdate{})
		require.NoError(t, err)
		require.Equal(t, "Grace Hopper", got.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE speakers SET updated_at = NOW\(\), title = \$1`).
			WithArgs("Rear Admiral", "sp-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewSpeakerRepository(db)
		got, err := repo.Update(ctx, "sp-missing", domain.SpeakerUpdate{Title: &title})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSpeakerRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   "sp-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM speakers WHERE id = \$1`).
					WithArgs("sp-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr:    false,
			isNotFound: false,
		},
		{
			name: "not found",
			id:   "sp-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM speakers WHERE id = \$1`).
					WithArgs("sp-missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSpeakerRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.ErrorIs(t, err, domain.ErrNotFound)
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
