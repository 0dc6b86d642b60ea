package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pallet-service/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyIncomingTotals(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM incoming_entries GROUP BY date ORDER BY date")).
		WillReturnRows(sqlmock.NewRows([]string{"date", "good", "lost"}).
			AddRow(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 10, 2).
			AddRow("2024-03-05", 4, 0))

	totals, err := repo.DailyIncomingTotals(context.Background())

	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "2024-03-04", totals[0].Date.String())
	assert.Equal(t, 10, totals[0].Good)
	assert.Equal(t, 2, totals[0].Lost)
	assert.Equal(t, "2024-03-05", totals[1].Date.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyOutgoingTotals_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery("FROM outgoing_entries").WillReturnError(errors.New("boom"))

	_, err := repo.DailyOutgoingTotals(context.Background())
	assert.ErrorContains(t, err, "failed to get daily outgoing totals")
}

func TestPlanningTotals(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery("FROM planning").
		WillReturnRows(sqlmock.NewRows([]string{"count", "pallets", "delay"}).AddRow(4, 100, 0.125))

	totals, err := repo.PlanningTotals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.PlanningTotals{Count: 4, TotalPallets: 100, TotalDelay: 0.125}, totals)
}

func TestTypeTotals(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery("FROM incoming_entries").
		WillReturnRows(sqlmock.NewRows([]string{"eur", "shep", "lpr", "lost"}).AddRow(50, 20, 10, 6))
	mock.ExpectQuery("FROM outgoing_entries").
		WillReturnRows(sqlmock.NewRows([]string{"eur", "shep", "lpr", "lost"}).AddRow(30, 0, 4, 5))

	in, err := repo.IncomingTypeTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 80, in.Good())
	assert.Equal(t, 6, in.Lost)

	out, err := repo.OutgoingTypeTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.LedgerTypeTotals{EUR: 30, LPR: 4, Lost: 5}, out)
}

func TestGoodByCarrier(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE kind IN ($1, $2) GROUP BY carrier")).
		WithArgs(models.KindReception, models.KindReturn).
		WillReturnRows(sqlmock.NewRows([]string{"carrier", "good"}).
			AddRow("Lagny", 40).
			AddRow("TLOT", 5))

	result, err := repo.IncomingGoodByCarrier(context.Background(), []string{models.KindReception, models.KindReturn})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Lagny": 40, "TLOT": 5}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoodByCarrier_NoKinds(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)

	result, err := repo.OutgoingGoodByCarrier(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
