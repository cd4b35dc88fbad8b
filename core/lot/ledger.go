package lot

import (
	"fmt"
	"time"

	"github.com/parkwise/parkwise/core/model"
)

// Ledger owns the canonical session records: an index of open sessions keyed
// by plate plus the append-only history of every session ever opened. The
// active index is a non-owning view into history; closing a session mutates
// the same record that history keeps.
//
// Like Inventory, the ledger relies on the owning Lot for serialization.
type Ledger struct {
	active  map[string]*model.Session
	order   []string // plates in open order, for stable Active() snapshots
	history []*model.Session
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{active: make(map[string]*model.Session)}
}

// Open creates a session for the vehicle, indexes it by plate and appends it
// to history. Fails with ErrAlreadyParked when the plate already has an open
// session.
func (l *Ledger) Open(v model.Vehicle, slotID string, entry time.Time) (*model.Session, error) {
	if _, ok := l.active[v.Plate]; ok {
		return nil, fmt.Errorf("open session for %s: %w", v.Plate, ErrAlreadyParked)
	}
	s := model.NewSession(v, slotID, entry)
	l.active[v.Plate] = s
	l.order = append(l.order, v.Plate)
	l.history = append(l.history, s)
	return s, nil
}

// Close sets the exit time on the plate's open session and removes it from
// the active index. The record itself stays in history.
func (l *Ledger) Close(plate string, exit time.Time) (*model.Session, error) {
	s, ok := l.active[plate]
	if !ok {
		return nil, fmt.Errorf("close session for %s: %w", plate, ErrNotActive)
	}
	s.ExitTime = exit
	delete(l.active, plate)
	for i, p := range l.order {
		if p == plate {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return s, nil
}

// ActiveSession returns the open session for plate, if any.
func (l *Ledger) ActiveSession(plate string) (*model.Session, bool) {
	s, ok := l.active[plate]
	return s, ok
}

// Active returns the open sessions in the order they were opened.
func (l *Ledger) Active() []*model.Session {
	res := make([]*model.Session, 0, len(l.order))
	for _, p := range l.order {
		res = append(res, l.active[p])
	}
	return res
}

// Recent returns the last n history entries in chronological order, fewer if
// the history is shorter.
func (l *Ledger) Recent(n int) []*model.Session {
	if n <= 0 {
		return nil
	}
	start := len(l.history) - n
	if start < 0 {
		start = 0
	}
	return l.history[start:]
}

// History returns all entries in append order.
func (l *Ledger) History() []*model.Session { return l.history }

// ActiveCount returns the number of open sessions.
func (l *Ledger) ActiveCount() int { return len(l.active) }

// Len returns the total number of history entries.
func (l *Ledger) Len() int { return len(l.history) }
