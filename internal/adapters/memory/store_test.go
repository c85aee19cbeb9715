package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/models"
)

func TestFleet_RegisterRejectsDuplicateIMO(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	err := s.Fleet().Register(ctx, models.VesselRecord{IMO: "987654321", Name: "S/Y Copycat", LOA: 12})
	require.Error(t, err)
	assert.True(t, errors.Is(err, effects.ErrValidation))
	assert.Contains(t, err.Error(), "S/Y Phisedelia")

	vessels, err := s.Fleet().List(ctx)
	require.NoError(t, err)
	count := 0
	for _, v := range vessels {
		if v.IMO == "987654321" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestFleet_RegisterRebuildsAliasIndex(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	_, _, ok := s.Fleet().Aliases().Resolve("depart S/Y Aurora")
	require.False(t, ok)

	require.NoError(t, s.Fleet().Register(ctx, models.VesselRecord{IMO: "246813579", Name: "S/Y Aurora", LOA: 16}))

	imo, name, ok := s.Fleet().Aliases().Resolve("depart aurora at dawn")
	require.True(t, ok)
	assert.Equal(t, "246813579", imo)
	assert.Equal(t, "S/Y Aurora", name)

	vessels, _ := s.Fleet().List(ctx)
	assert.Equal(t, "S/Y Aurora", vessels[len(vessels)-1].Name, "registration appends")
}

func TestFleet_UpdateAndNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	require.NoError(t, s.Fleet().Update(ctx, "555666777", func(v *models.VesselRecord) {
		v.LegalStatus = models.LegalRed
		v.IMO = "tampered"
	}))
	v, err := s.Fleet().GetByIMO(ctx, "555666777")
	require.NoError(t, err)
	assert.True(t, v.OnLegalHold())

	_, err = s.Fleet().GetByIMO(ctx, "000")
	assert.True(t, errors.Is(err, effects.ErrNotFound))
}

func TestLedger_ChargeAndCredit(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()
	ledger := s.Ledger()

	before, err := ledger.Get(ctx, "M/Y Blue Horizon")
	require.NoError(t, err)
	assert.Equal(t, 850.0, before.Balance)

	after, err := ledger.Charge(ctx, "  m/y   BLUE horizon ", 150)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, after.Balance)
	assert.Equal(t, models.PaymentRecentlyLate, after.PaymentHistoryStatus, "charges keep the history")

	credited, applied, err := ledger.Credit(ctx, "M/Y Blue Horizon", "TX-1", 1200)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, -200.0, credited.Balance, "overpayment is not clamped")
	assert.Equal(t, models.PaymentRegular, credited.PaymentHistoryStatus)

	again, applied, err := ledger.Credit(ctx, "M/Y Blue Horizon", "TX-1", 1200)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, -200.0, again.Balance)
}

func TestLedger_GetDoesNotCreate(t *testing.T) {
	ctx := context.Background()
	s := New()

	e, err := s.Ledger().Get(ctx, "S/Y Ghost")
	require.NoError(t, err)
	assert.Zero(t, e.Balance)

	all, _ := s.Ledger().All(ctx)
	assert.Empty(t, all)

	_, err = s.Ledger().Charge(ctx, "S/Y Ghost", 100)
	require.NoError(t, err)
	all, _ = s.Ledger().All(ctx)
	assert.Equal(t, models.PaymentRegular, all["s/y ghost"].PaymentHistoryStatus)
}

func TestLedger_ConcurrentSettlementAppliesEachRefOnce(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// ten distinct references, each submitted five times
			ref := fmt.Sprintf("TX-%d", i%10)
			_, _, _ = s.Ledger().Credit(ctx, "S/Y Mistral", ref, 10)
		}(i)
	}
	wg.Wait()

	e, _ := s.Ledger().Get(ctx, "S/Y Mistral")
	assert.Equal(t, 1100.0, e.Balance)
	assert.Len(t, e.SettledRefs, 10)
}

func TestTenders_AssignAndRelease(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	require.NoError(t, s.Tenders().Assign(ctx, "T-01", "Pilot S/Y Phisedelia"))
	err := s.Tenders().Assign(ctx, "T-01", "again")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Busy"))

	err = s.Tenders().Assign(ctx, "T-03", "x")
	require.Error(t, err, "tender in maintenance cannot be assigned")

	require.NoError(t, s.Tenders().Release(ctx, "T-01"))
	tenders, _ := s.Tenders().List(ctx)
	assert.Equal(t, models.TenderAvailable, tenders[0].Status)
}

func TestJobs_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	job, err := s.Jobs().Create(ctx, models.MaintenanceJob{VesselName: "S/Y Karayel", JobType: models.JobHaulOut})
	require.NoError(t, err)
	assert.Equal(t, "JOB-1026", job.ID)

	next, _ := s.Jobs().Create(ctx, models.MaintenanceJob{VesselName: "S/Y Karayel"})
	assert.Equal(t, "JOB-1027", next.ID)

	require.NoError(t, s.Jobs().Update(ctx, "JOB-1026", func(j *models.MaintenanceJob) { j.Status = models.JobCompleted }))
	err = s.Jobs().Update(ctx, "JOB-9999", func(j *models.MaintenanceJob) {})
	assert.True(t, errors.Is(err, effects.ErrNotFound))
}

func TestBerths_OccupyFillsZone(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Berths().Occupy(ctx, "T"))
	}
	zones, _ := s.Berths().List(ctx)
	var tHead models.BerthZone
	for _, z := range zones {
		if z.ID == "T" {
			tHead = z
		}
	}
	assert.Equal(t, 8, tHead.Occupied)
	assert.Equal(t, models.ZoneFull, tHead.Status)
	assert.Error(t, s.Berths().Occupy(ctx, "T"))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()
	_, _, _ = s.Ledger().Credit(ctx, "S/Y Mistral", "TX-9", 100)

	snap := s.Snapshot()
	snap.Fleet[0].Name = "mutated"
	snap.Ledger["s/y mistral"].SettledRefs["TX-9"] = false

	vessels, _ := s.Fleet().List(ctx)
	assert.Equal(t, "S/Y Phisedelia", vessels[0].Name)
	e, _ := s.Ledger().Get(ctx, "S/Y Mistral")
	assert.True(t, e.SettledRefs["TX-9"])

	restored := New()
	restored.Restore(s.Snapshot())
	assert.Equal(t, s.Snapshot().Ledger, restored.Snapshot().Ledger)
	job, _ := restored.Jobs().Create(ctx, models.MaintenanceJob{})
	assert.Equal(t, "JOB-1026", job.ID)
}
