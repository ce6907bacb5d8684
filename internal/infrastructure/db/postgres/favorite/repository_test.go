package favorite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepository_FetchUserFavorites(t *testing.T) {
	userID, fileA, fileB := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock := newMock(t)
	mock.ExpectQuery(SelectUserFavorites).
		WithArgs(userID, "org_A").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "org_id", "file_id", "created_at"}).
			AddRow(uuid.New(), userID, "org_A", fileA, now).
			AddRow(uuid.New(), userID, "org_A", fileB, now))

	fs, err := NewRepository(mock).FetchUserFavorites(context.Background(), userID, "org_A")
	require.NoError(t, err)
	require.Len(t, fs, 2)

	ids := fs.FileIDs()
	assert.Contains(t, ids, fileA)
	assert.Contains(t, ids, fileB)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ToggleFavorite(t *testing.T) {
	userID, fileID := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		want    bool
		wantErr bool
	}{
		{
			name: "absent favorite is inserted",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectExec(LockFavorite).WithArgs(userID, fileID).
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				m.ExpectExec(DeleteFavorite).WithArgs(userID, "org_A", fileID).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
				m.ExpectExec(InsertFavorite).WithArgs(userID, "org_A", fileID).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				m.ExpectCommit()
			},
			want: true,
		},
		{
			name: "present favorite is removed",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectExec(LockFavorite).WithArgs(userID, fileID).
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				m.ExpectExec(DeleteFavorite).WithArgs(userID, "org_A", fileID).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
				m.ExpectCommit()
			},
			want: false,
		},
		{
			name: "insert failure rolls back",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectExec(LockFavorite).WithArgs(userID, fileID).
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				m.ExpectExec(DeleteFavorite).WithArgs(userID, "org_A", fileID).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
				m.ExpectExec(InsertFavorite).WithArgs(userID, "org_A", fileID).
					WillReturnError(errors.New("disk full"))
				m.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name: "begin failure",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin().WillReturnError(errors.New("pool closed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			got, err := NewRepository(mock).ToggleFavorite(context.Background(), userID, "org_A", fileID)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
