package lot

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkwise/parkwise/core/model"
	"github.com/parkwise/parkwise/core/tariff"
)

func newTestLot(t *testing.T) *Lot {
	t.Helper()
	var layout Layout
	layout.SetDefaults()
	return New(layout, tariff.DefaultTable(), nil)
}

func mustVehicle(t *testing.T, class model.VehicleClass, plate string) model.Vehicle {
	t.Helper()
	v, err := model.NewVehicle(class, plate)
	require.NoError(t, err)
	return v
}

// checkInvariants asserts slot/ledger agreement and count conservation.
func checkInvariants(t *testing.T, l *Lot) {
	t.Helper()
	active := l.ActiveList()
	require.Equal(t, l.ActiveCount(), len(active))
	seen := map[string]bool{}
	for _, s := range active {
		require.False(t, seen[s.Plate], "duplicate active session for %s", s.Plate)
		seen[s.Plate] = true
		require.True(t, l.IsOccupied(s.SlotID), "active session %s references free slot %s", s.Plate, s.SlotID)
	}
	occupied := 0
	for _, cat := range model.Categories() {
		used := l.CountUsedByPrefix(cat)
		free := l.VacancySummary()[cat]
		require.Equal(t, l.TotalByCategory(cat), used+free, "category %s", cat)
		occupied += used
	}
	require.Equal(t, len(active), occupied, "occupied slots must match active sessions")
}

func TestParkFreshLot(t *testing.T) {
	l := newTestLot(t)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	sess, err := l.Park(mustVehicle(t, model.Motorcycle, "ABC123"), now)
	require.NoError(t, err)
	assert.Equal(t, "M01", sess.SlotID)
	assert.Equal(t, 59, l.VacancySummary()[model.CategoryMotorcycle])
	checkInvariants(t, l)
}

func TestParkUntilCategoryFull(t *testing.T) {
	l := newTestLot(t)
	now := time.Now()
	for i := 1; i <= 60; i++ {
		sess, err := l.Park(mustVehicle(t, model.Motorcycle, fmt.Sprintf("MOTO%03d", i)), now)
		require.NoError(t, err, "park %d", i)
		if i == 60 {
			assert.Equal(t, "M60", sess.SlotID)
		}
	}
	_, err := l.Park(mustVehicle(t, model.Motorcycle, "MOTO061"), now)
	require.ErrorIs(t, err, ErrNoVacancy)
	checkInvariants(t, l)
}

func TestParkFallbackToSectionB(t *testing.T) {
	l := newTestLot(t)
	now := time.Now()
	for i := 1; i <= 30; i++ {
		_, err := l.Park(mustVehicle(t, model.FourWheelA, fmt.Sprintf("CARA%03d", i)), now)
		require.NoError(t, err)
	}
	sess, err := l.Park(mustVehicle(t, model.FourWheelA, "XYZ999"), now)
	require.NoError(t, err)
	assert.Equal(t, "B01", sess.SlotID)
	checkInvariants(t, l)
}

func TestParkSamePlateTwice(t *testing.T) {
	l := newTestLot(t)
	now := time.Now()
	_, err := l.Park(mustVehicle(t, model.Motorcycle, "ABC123"), now)
	require.NoError(t, err)
	_, err = l.Park(mustVehicle(t, model.Motorcycle, "ABC123"), now)
	require.ErrorIs(t, err, ErrAlreadyParked)
	// the rejected request must not have touched a second slot
	assert.Equal(t, 1, l.ActiveCount())
	assert.Equal(t, 59, l.VacancySummary()[model.CategoryMotorcycle])
}

func TestUnparkAfterFourHours(t *testing.T) {
	l := newTestLot(t)
	entry := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	_, err := l.Park(mustVehicle(t, model.Motorcycle, "DEF456"), entry)
	require.NoError(t, err)
	rcpt, err := l.Unpark("DEF456", entry.Add(4*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 4, rcpt.HoursBilled)
	assert.InDelta(t, 25.0, rcpt.Amount, 1e-9)
	assert.InDelta(t, 25.0, l.TotalRevenue(), 1e-9)
	assert.False(t, l.IsOccupied(rcpt.SlotID))
	checkInvariants(t, l)
}

func TestUnparkNeverParked(t *testing.T) {
	l := newTestLot(t)
	before := l.RecentHistory(100)
	_, err := l.Unpark("GHOST1", time.Now())
	require.ErrorIs(t, err, ErrNotActive)
	assert.Equal(t, before, l.RecentHistory(100))
	assert.Zero(t, l.TotalRevenue())
}

func TestUnparkImmediatelyBillsMinimumHour(t *testing.T) {
	l := newTestLot(t)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	_, err := l.Park(mustVehicle(t, model.FourWheelB, "JKL789"), now)
	require.NoError(t, err)
	rcpt, err := l.Unpark("JKL789", now)
	require.NoError(t, err)
	assert.Equal(t, 1, rcpt.HoursBilled)
	assert.InDelta(t, 40.0, rcpt.Amount, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	l := newTestLot(t)
	entry := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)
	sess, err := l.Park(mustVehicle(t, model.FourWheelA, "RTY111"), entry)
	require.NoError(t, err)
	rcpt, err := l.Unpark("RTY111", entry.Add(30*time.Minute))
	require.NoError(t, err)

	assert.False(t, l.IsOccupied(sess.SlotID))
	_, found := l.FindActive("RTY111")
	assert.False(t, found)
	hist := l.RecentHistory(10)
	require.Len(t, hist, 1)
	assert.False(t, hist[0].Active())
	assert.True(t, !hist[0].ExitTime.Before(hist[0].EntryTime), "entry must not be after exit")
	assert.InDelta(t, rcpt.Amount, hist[0].AmountPaid, 1e-9)
	checkInvariants(t, l)
}

func TestReadIdempotence(t *testing.T) {
	l := newTestLot(t)
	now := time.Now()
	for i := 0; i < 5; i++ {
		_, err := l.Park(mustVehicle(t, model.Motorcycle, fmt.Sprintf("IDM%03d", i)), now)
		require.NoError(t, err)
	}
	first := l.VacancySummary()
	second := l.VacancySummary()
	assert.Equal(t, first, second)
	assert.Equal(t, l.OccupancyRate(), l.OccupancyRate())
}

func TestOccupancyRate(t *testing.T) {
	l := newTestLot(t)
	assert.Zero(t, l.OccupancyRate())
	now := time.Now()
	for i := 0; i < 12; i++ {
		_, err := l.Park(mustVehicle(t, model.Motorcycle, fmt.Sprintf("OCC%03d", i)), now)
		require.NoError(t, err)
	}
	assert.InDelta(t, 10.0, l.OccupancyRate(), 1e-9) // 12 of 120
}

func TestPeakHoursAllBuckets(t *testing.T) {
	l := newTestLot(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, hour := range []int{8, 8, 17} {
		plate := fmt.Sprintf("PKH%02d%d", hour, l.ActiveCount())
		_, err := l.Park(mustVehicle(t, model.Motorcycle, plate), base.Add(time.Duration(hour)*time.Hour))
		require.NoError(t, err)
	}
	hist := l.PeakHours()
	assert.Equal(t, 2, hist[8])
	assert.Equal(t, 1, hist[17])
	total := 0
	for _, c := range hist {
		total += c
	}
	assert.Equal(t, 3, total)
}

func TestRevenueMonotonic(t *testing.T) {
	l := newTestLot(t)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	prev := 0.0
	for i := 0; i < 4; i++ {
		plate := fmt.Sprintf("REV%03d", i)
		_, err := l.Park(mustVehicle(t, model.Motorcycle, plate), now)
		require.NoError(t, err)
		_, err = l.Unpark(plate, now.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		rev := l.TotalRevenue()
		require.GreaterOrEqual(t, rev, prev)
		prev = rev
	}
}

func TestConcurrentParkSamePlate(t *testing.T) {
	l := newTestLot(t)
	now := time.Now()
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.Park(mustVehicle(t, model.Motorcycle, "RACE01"), now)
		}(i)
	}
	wg.Wait()
	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else if !errors.Is(err, ErrAlreadyParked) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes, "exactly one concurrent park may succeed")
	checkInvariants(t, l)
}

func TestConcurrentParkSameCategory(t *testing.T) {
	l := newTestLot(t)
	now := time.Now()
	const workers = 20
	var wg sync.WaitGroup
	slots := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := l.Park(mustVehicle(t, model.FourWheelA, fmt.Sprintf("CONC%03d", i)), now)
			if err == nil {
				slots[i] = sess.SlotID
			}
		}(i)
	}
	wg.Wait()
	seen := map[string]bool{}
	for _, id := range slots {
		require.NotEmpty(t, id)
		require.False(t, seen[id], "slot %s assigned twice", id)
		seen[id] = true
	}
	checkInvariants(t, l)
}
