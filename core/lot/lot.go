package lot

import (
	"fmt"
	"sync"
	"time"

	"github.com/parkwise/parkwise/core/logger"
	"github.com/parkwise/parkwise/core/model"
	"github.com/parkwise/parkwise/core/report"
	"github.com/parkwise/parkwise/core/tariff"
)

// Lot is the inventory-and-ledger engine for one parking facility. All
// compound mutations (park, unpark) run under an exclusive lock so two
// concurrent requests can never race for the same slot or plate; read
// operations share the lock and always observe a consistent snapshot.
type Lot struct {
	mu      sync.RWMutex
	inv     *Inventory
	ledger  *Ledger
	rates   tariff.Table
	revenue float64
	log     logger.Logger
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// New builds a Lot with the given layout and tariff table. A nil logger is
// replaced with a no-op one.
func New(layout Layout, rates tariff.Table, log logger.Logger) *Lot {
	layout.SetDefaults()
	rates.SetDefaults()
	if log == nil {
		log = nopLogger{}
	}
	return &Lot{
		inv:    NewInventory(layout),
		ledger: NewLedger(),
		rates:  rates,
		log:    log,
	}
}

// Park allocates a slot for the vehicle and opens a session at now. The
// active-plate check precedes allocation: a plate that is already parked is
// rejected before any slot is touched.
func (l *Lot) Park(v model.Vehicle, now time.Time) (model.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ledger.ActiveSession(v.Plate); ok {
		parkRejections.WithLabelValues("already_parked").Inc()
		return model.Session{}, fmt.Errorf("park %s: %w", v.Plate, ErrAlreadyParked)
	}
	slot, ok := Allocate(l.inv, v)
	if !ok {
		parkRejections.WithLabelValues("no_vacancy").Inc()
		return model.Session{}, fmt.Errorf("park %s (%s): %w", v.Plate, v.Class, ErrNoVacancy)
	}
	if err := l.inv.Occupy(slot.ID, v.Plate); err != nil {
		return model.Session{}, err
	}
	sess, err := l.ledger.Open(v, slot.ID, now)
	if err != nil {
		// unreachable after the active check; keep the inventory consistent anyway
		_ = l.inv.Vacate(slot.ID)
		return model.Session{}, err
	}
	vehiclesParked.WithLabelValues(v.Class.String()).Inc()
	occupiedSlots.WithLabelValues(string(slot.Category)).Inc()
	l.log.Infof("parked %s at %s", v.Plate, slot.ID)
	return *sess, nil
}

// Receipt summarizes the payment for a completed stay.
type Receipt struct {
	Plate       string
	VehicleType string
	SlotID      string
	EntryTime   time.Time
	ExitTime    time.Time
	Minutes     int64
	HoursBilled int
	Amount      float64
}

// Unpark closes the plate's session at now, frees the slot and computes the
// amount due under the tariff table.
func (l *Lot) Unpark(plate string, now time.Time) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	plate = model.NormalizePlate(plate)
	sess, err := l.ledger.Close(plate, now)
	if err != nil {
		return Receipt{}, fmt.Errorf("unpark %s: %w", plate, err)
	}
	if err := l.inv.Vacate(sess.SlotID); err != nil {
		// inventory and ledger disagree; the session is already closed so
		// surface the desync loudly and carry on with billing
		l.log.Errorf("inventory desync on unpark %s: %v", plate, err)
	} else if s, ok := l.inv.Slot(sess.SlotID); ok {
		occupiedSlots.WithLabelValues(string(s.Category)).Dec()
	}
	minutes := sess.DurationMinutes(now)
	hours := tariff.BilledHours(minutes)
	amount := l.rates.Fee(sess.Vehicle, hours)
	sess.AmountPaid = amount
	l.revenue += amount
	vehiclesUnparked.Inc()
	revenueCollected.Add(amount)
	l.log.Infof("unparked %s from %s after %d min, billed %.2f", plate, sess.SlotID, minutes, amount)
	return Receipt{
		Plate:       plate,
		VehicleType: sess.Vehicle.String(),
		SlotID:      sess.SlotID,
		EntryTime:   sess.EntryTime,
		ExitTime:    sess.ExitTime,
		Minutes:     minutes,
		HoursBilled: hours,
		Amount:      amount,
	}, nil
}

// VacancySummary returns the free slot count per category.
func (l *Lot) VacancySummary() map[model.Category]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	res := make(map[model.Category]int, 3)
	for _, cat := range model.Categories() {
		res[cat] = l.inv.CountBy(cat, func(s model.Slot) bool { return !s.Occupied() })
	}
	return res
}

// OccupancyRate returns the occupied percentage over the whole lot.
func (l *Lot) OccupancyRate() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return report.OccupancyRate(l.occupiedLocked(), l.inv.Total())
}

func (l *Lot) occupiedLocked() int {
	n := 0
	for _, cat := range model.Categories() {
		n += l.inv.CountBy(cat, model.Slot.Occupied)
	}
	return n
}

// CountUsedByPrefix returns the occupied slot count of the category.
func (l *Lot) CountUsedByPrefix(cat model.Category) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inv.CountBy(cat, model.Slot.Occupied)
}

// SlotIDsByPrefix returns the category's slot ids in ascending order.
func (l *Lot) SlotIDsByPrefix(cat model.Category) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inv.IDsByCategory(cat)
}

// IsOccupied reports whether the slot currently holds a vehicle.
func (l *Lot) IsOccupied(slotID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inv.IsOccupied(slotID)
}

// RecentHistory returns copies of the last n history entries in
// chronological order.
func (l *Lot) RecentHistory(n int) []model.Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copySessions(l.ledger.Recent(n))
}

// ActiveList returns copies of the open sessions in the order they were opened.
func (l *Lot) ActiveList() []model.Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copySessions(l.ledger.Active())
}

// FindActive returns the open session for the plate, if any.
func (l *Lot) FindActive(plate string) (model.Session, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.ledger.ActiveSession(model.NormalizePlate(plate))
	if !ok {
		return model.Session{}, false
	}
	return *s, true
}

// PeakHours returns the entry count per hour of day across all history.
func (l *Lot) PeakHours() [24]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return report.PeakHours(l.historyLocked())
}

// StayStats returns mean and standard deviation of closed-session stay
// durations in minutes.
func (l *Lot) StayStats(now time.Time) (mean, stddev float64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return report.StayStats(l.historyLocked(), now)
}

// TotalRevenue returns the accumulated amount paid across closed sessions.
func (l *Lot) TotalRevenue() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revenue
}

// TotalSlots returns the fixed overall slot count.
func (l *Lot) TotalSlots() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inv.Total()
}

// TotalByCategory returns the fixed slot count of the category.
func (l *Lot) TotalByCategory(cat model.Category) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inv.TotalByCategory(cat)
}

// ActiveCount returns the number of currently parked vehicles.
func (l *Lot) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ledger.ActiveCount()
}

// History returns copies of every session ever opened, in append order. The
// CSV exporter consumes this snapshot.
func (l *Lot) History() []model.Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.historyLocked()
}

func (l *Lot) historyLocked() []model.Session {
	return copySessions(l.ledger.History())
}

func copySessions(src []*model.Session) []model.Session {
	res := make([]model.Session, 0, len(src))
	for _, s := range src {
		res = append(res, *s)
	}
	return res
}
