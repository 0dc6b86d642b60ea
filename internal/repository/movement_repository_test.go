package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"pallet-service/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func mustDate(t *testing.T, s string) models.Date {
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func samplePlanning(t *testing.T, kind string) *models.PlannedMovement {
	return &models.PlannedMovement{
		Weekday:     1,
		Week:        10,
		Date:        mustDate(t, "2024-03-04"),
		PlannedTime: 0.3333333333333333,
		Kind:        kind,
		Reference:   "BL-778",
		Carrier:     "NewCarrier",
		Dock:        "Q2",
		PalletCount: 6,
		ArrivalTime: "08:30",
		Delay:       0.02083333333333337,
	}
}

func TestCreateIncomingMovement_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	planning := samplePlanning(t, models.KindReception)
	entry := &models.IncomingEntry{
		Kind:         models.KindReception,
		Week:         10,
		Date:         planning.Date,
		Carrier:      "NewCarrier",
		DocumentRef:  "BL-778",
		PalletCounts: models.PalletCounts{EUR: 5, EURSize: "80x120", SHEPSize: "100x120", LPRSize: "100x120"},
		Lost:         1,
		Total:        6,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO planning").
		WithArgs(1, 10, "2024-03-04", 0.3333333333333333, "Réception", "BL-778", "NewCarrier", "",
			"Q2", 6, "08:30", "", 0.02083333333333337).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO incoming_entries").
		WithArgs("Réception", 10, "2024-03-04", "NewCarrier", "BL-778",
			5, "80x120", 0, "100x120", 0, "100x120", 1, 6, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	err := repo.CreateIncomingMovement(context.Background(), planning, entry)

	require.NoError(t, err)
	assert.Equal(t, int64(7), planning.ID)
	assert.Equal(t, int64(3), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOutgoingMovement_RollsBackWhenLedgerFails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	planning := samplePlanning(t, models.KindShipment)
	entry := &models.OutgoingEntry{
		Kind:     models.KindShipment,
		Week:     10,
		Date:     planning.Date,
		Carrier:  "NewCarrier",
		Returned: models.PalletCounts{EUR: 4},
		Total:    4,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO planning").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectQuery("INSERT INTO outgoing_entries").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.CreateOutgoingMovement(context.Background(), planning, entry)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create outgoing entry")
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncomingMovement_RollsBackWhenPlanningFails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO planning").
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := repo.CreateIncomingMovement(context.Background(), samplePlanning(t, models.KindReturn), &models.IncomingEntry{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create planning")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMovement_CommitFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO planning").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO incoming_entries").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

	err := repo.CreateIncomingMovement(context.Background(), samplePlanning(t, models.KindReception), &models.IncomingEntry{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit movement")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPlanning_AllFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	from := mustDate(t, "2024-03-01")
	to := mustDate(t, "2024-03-31")
	week := 10

	columns := []string{"id", "weekday", "week", "date", "planned_time", "kind", "reference", "carrier",
		"comment", "dock", "pallet_count", "arrival_time", "departure_time", "delay"}
	rows := sqlmock.NewRows(columns).
		AddRow(1, 1, 10, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 0.5, "Réception", "BL-1", "TLOT",
			"", "Q1", 12, "12:30", "13:00", 0.0208)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM planning WHERE kind = $1 AND carrier = $2 AND date >= $3 AND date <= $4 AND dock = $5 AND week = $6 ORDER BY date, id")).
		WithArgs("Réception", "TLOT", "2024-03-01", "2024-03-31", "Q1", 10).
		WillReturnRows(rows)

	result, err := repo.ListPlanning(context.Background(), models.PlanningFilter{
		Kind: "Réception", Carrier: "TLOT", Dock: "Q1", DateFrom: &from, DateTo: &to, Week: &week,
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "2024-03-04", result[0].Date.String())
	assert.Equal(t, 12, result[0].PalletCount)
	assert.Equal(t, "13:00", result[0].DepartureTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIncoming_NoFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	columns := []string{"id", "kind", "week", "date", "carrier", "document_ref", "eur", "eur_size",
		"shep", "shep_size", "lpr", "lpr_size", "lost", "total", "comment"}
	rows := sqlmock.NewRows(columns).
		AddRow(1, "Réception", 10, "2024-03-04", "TLOT", "BL-1", 5, "80x120", 2, "100x120", 0, "100x120", 1, 8, "")

	mock.ExpectQuery(regexp.QuoteMeta("FROM incoming_entries ORDER BY date, id")).
		WillReturnRows(rows)

	result, err := repo.ListIncoming(context.Background(), models.LedgerFilter{})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 7, result[0].Good())
	assert.Equal(t, 8, result[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOutgoing_CarrierAndWeek(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	week := 11
	columns := []string{"id", "kind", "week", "date", "carrier", "document_ref", "eur_returned", "eur_size",
		"shep_returned", "shep_size", "lpr_returned", "lpr_size", "lost", "total", "comment"}
	rows := sqlmock.NewRows(columns).
		AddRow(4, "Expédition", 11, "2024-03-12", "Lagny", "", 3, "80x120", 0, "", 1, "100x120", 2, 6, "casse")

	mock.ExpectQuery(regexp.QuoteMeta("FROM outgoing_entries WHERE carrier = $1 AND week = $2 ORDER BY date, id")).
		WithArgs("Lagny", 11).
		WillReturnRows(rows)

	result, err := repo.ListOutgoing(context.Background(), models.LedgerFilter{Carrier: "Lagny", Week: &week})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 4, result[0].Returned.Good())
	assert.Equal(t, 2, result[0].Lost)
	assert.Equal(t, "casse", result[0].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIncoming_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMovementRepository(db)

	mock.ExpectQuery("FROM incoming_entries").WillReturnError(errors.New("no such table"))

	_, err := repo.ListIncoming(context.Background(), models.LedgerFilter{})
	assert.ErrorContains(t, err, "failed to list incoming entries")
}
