package lot

import "errors"

var (
	// ErrAlreadyParked is returned when a park request names a plate that
	// already has an open session.
	ErrAlreadyParked = errors.New("vehicle already parked")
	// ErrNoVacancy is returned when neither the preferred category nor its
	// fallback has a free slot.
	ErrNoVacancy = errors.New("no available slot")
	// ErrNotActive is returned when an unpark request names a plate with no
	// open session.
	ErrNotActive = errors.New("no active session for plate")
	// ErrAlreadyOccupied is returned when occupying a slot that holds a vehicle.
	ErrAlreadyOccupied = errors.New("slot already occupied")
	// ErrNotOccupied indicates an inventory/ledger mismatch: vacating a slot
	// that is already free. It should never occur while the invariants hold.
	ErrNotOccupied = errors.New("slot not occupied")
	// ErrUnknownSlot is returned for a slot id outside the fixed inventory.
	ErrUnknownSlot = errors.New("unknown slot id")
)
