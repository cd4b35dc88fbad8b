package model

import (
	"time"

	"github.com/google/uuid"
)

// Session records one vehicle's stay from entry to eventual exit. A session
// with a zero ExitTime is still active. Records are never deleted: after
// closing they remain part of the permanent history.
type Session struct {
	ID         string
	Plate      string
	Vehicle    VehicleClass
	SlotID     string
	EntryTime  time.Time
	ExitTime   time.Time
	AmountPaid float64
}

// NewSession opens a session for the vehicle at the given slot.
func NewSession(v Vehicle, slotID string, entry time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Plate:     v.Plate,
		Vehicle:   v.Class,
		SlotID:    slotID,
		EntryTime: entry,
	}
}

// Active reports whether the session has no recorded exit yet.
func (s *Session) Active() bool { return s.ExitTime.IsZero() }

// DurationMinutes returns the whole minutes between entry and exit, using
// now as the end for sessions still active.
func (s *Session) DurationMinutes(now time.Time) int64 {
	end := s.ExitTime
	if s.Active() {
		end = now
	}
	return int64(end.Sub(s.EntryTime) / time.Minute)
}
