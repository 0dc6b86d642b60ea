package services

import (
	"context"
	"sort"
	"testing"

	"pallet-service/internal/models"

	"github.com/stretchr/testify/require"
)

type fakeCarrierRepo struct {
	names     map[string]bool
	ensureErr error
}

func newFakeCarrierRepo(names ...string) *fakeCarrierRepo {
	repo := &fakeCarrierRepo{names: map[string]bool{}}
	for _, n := range names {
		repo.names[n] = true
	}
	return repo
}

func (f *fakeCarrierRepo) EnsureCarrier(_ context.Context, name string) (bool, error) {
	if f.ensureErr != nil {
		return false, f.ensureErr
	}
	if f.names[name] {
		return false, nil
	}
	f.names[name] = true
	return true, nil
}

func (f *fakeCarrierRepo) ListCarriers(_ context.Context) ([]models.Carrier, error) {
	names := make([]string, 0, len(f.names))
	for n := range f.names {
		names = append(names, n)
	}
	sort.Strings(names)

	carriers := make([]models.Carrier, 0, len(names))
	for i, n := range names {
		carriers = append(carriers, models.Carrier{ID: int64(i + 1), Name: n})
	}
	return carriers, nil
}

func (f *fakeCarrierRepo) CountCarriers(_ context.Context) (int, error) {
	return len(f.names), nil
}

type fakeMovementRepo struct {
	planning  []models.PlannedMovement
	incoming  []models.IncomingEntry
	outgoing  []models.OutgoingEntry
	createErr error
	calls     int
}

func (f *fakeMovementRepo) CreateIncomingMovement(_ context.Context, p *models.PlannedMovement, e *models.IncomingEntry) error {
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = int64(len(f.planning) + 1)
	e.ID = int64(len(f.incoming) + 1)
	f.planning = append(f.planning, *p)
	f.incoming = append(f.incoming, *e)
	return nil
}

func (f *fakeMovementRepo) CreateOutgoingMovement(_ context.Context, p *models.PlannedMovement, e *models.OutgoingEntry) error {
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = int64(len(f.planning) + 1)
	e.ID = int64(len(f.outgoing) + 1)
	f.planning = append(f.planning, *p)
	f.outgoing = append(f.outgoing, *e)
	return nil
}

func (f *fakeMovementRepo) ListPlanning(_ context.Context, _ models.PlanningFilter) ([]models.PlannedMovement, error) {
	return f.planning, nil
}

func (f *fakeMovementRepo) ListIncoming(_ context.Context, _ models.LedgerFilter) ([]models.IncomingEntry, error) {
	return f.incoming, nil
}

func (f *fakeMovementRepo) ListOutgoing(_ context.Context, _ models.LedgerFilter) ([]models.OutgoingEntry, error) {
	return f.outgoing, nil
}

type fakeReportRepo struct {
	dailyIn, dailyOut []models.DailyLedgerTotals
	planning          models.PlanningTotals
	inTypes, outTypes models.LedgerTypeTotals
	inByCarrier       map[string]int
	outByCarrier      map[string]int
	inKinds, outKinds []string
	err               error
}

func (f *fakeReportRepo) DailyIncomingTotals(_ context.Context) ([]models.DailyLedgerTotals, error) {
	return f.dailyIn, f.err
}

func (f *fakeReportRepo) DailyOutgoingTotals(_ context.Context) ([]models.DailyLedgerTotals, error) {
	return f.dailyOut, f.err
}

func (f *fakeReportRepo) PlanningTotals(_ context.Context) (models.PlanningTotals, error) {
	return f.planning, f.err
}

func (f *fakeReportRepo) IncomingTypeTotals(_ context.Context) (models.LedgerTypeTotals, error) {
	return f.inTypes, f.err
}

func (f *fakeReportRepo) OutgoingTypeTotals(_ context.Context) (models.LedgerTypeTotals, error) {
	return f.outTypes, f.err
}

func (f *fakeReportRepo) IncomingGoodByCarrier(_ context.Context, kinds []string) (map[string]int, error) {
	f.inKinds = kinds
	return f.inByCarrier, f.err
}

func (f *fakeReportRepo) OutgoingGoodByCarrier(_ context.Context, kinds []string) (map[string]int, error) {
	f.outKinds = kinds
	return f.outByCarrier, f.err
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}
