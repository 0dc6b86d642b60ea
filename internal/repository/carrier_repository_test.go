package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCarrier(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCarrierRepository(db)

	mock.ExpectExec("INSERT INTO carriers").
		WithArgs("NewCarrier").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("INSERT INTO carriers").
		WithArgs("TLOT").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.EnsureCarrier(context.Background(), "NewCarrier")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureCarrier(context.Background(), "TLOT")
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureCarrier_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCarrierRepository(db)

	mock.ExpectExec("INSERT INTO carriers").WillReturnError(errors.New("read-only database"))

	_, err := repo.EnsureCarrier(context.Background(), "TLOT")
	assert.ErrorContains(t, err, "failed to ensure carrier TLOT")
}

func TestListCarriers(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCarrierRepository(db)

	mock.ExpectQuery("SELECT id, name FROM carriers ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(3, "LAMART").
			AddRow(5, "Lagny").
			AddRow(1, "LOGITRANS"))

	carriers, err := repo.ListCarriers(context.Background())

	require.NoError(t, err)
	require.Len(t, carriers, 3)
	assert.Equal(t, "LAMART", carriers[0].Name)
	assert.Equal(t, int64(5), carriers[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountCarriers(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCarrierRepository(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	count, err := repo.CountCarriers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}
