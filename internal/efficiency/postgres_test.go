package efficiency

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_GetAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(selectAllSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"blueprint_id", "me", "te", "updated_at"}).
			AddRow(int64(691), int64(10), int64(20), now).
			AddRow(int64(11401), int64(2), int64(4), now))

	all, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.EfficiencyOverrides{691: {ME: 10, TE: 20}, 11401: {ME: 2, TE: 4}}, all)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAllSQL)).WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())

	assert.ErrorIs(t, err, domain.ErrDatabaseError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Get(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    domain.Efficiency
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).
					WithArgs(domain.TypeID(691)).
					WillReturnRows(sqlmock.NewRows([]string{"me", "te"}).AddRow(int64(10), int64(20)))
			},
			want: domain.Efficiency{ME: 10, TE: 20},
		},
		{
			name: "no rows maps to not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).
					WithArgs(domain.TypeID(691)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrBlueprintNotFound,
		},
		{
			name: "driver error maps to database error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).
					WithArgs(domain.TypeID(691)).
					WillReturnError(errors.New("timeout"))
			},
			wantErr: domain.ErrDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.Get(context.Background(), 691)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Upsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO blueprint_efficiency").
		WithArgs(domain.TypeID(691), 10, 20).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), 691, domain.Efficiency{ME: 10, TE: 20}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpsertValidatesBeforeQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	err := repo.Upsert(context.Background(), 691, domain.Efficiency{ME: 200})

	assert.ErrorIs(t, err, domain.ErrInvalidEfficiency)
	assert.NoError(t, mock.ExpectationsWereMet(), "no statement is sent")
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Run("deletes existing row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("DELETE FROM blueprint_efficiency").
			WithArgs(domain.TypeID(691)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 691))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("DELETE FROM blueprint_efficiency").
			WithArgs(domain.TypeID(691)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 691), domain.ErrBlueprintNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
