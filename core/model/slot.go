package model

// Slot is a single parking space identified by a category-prefixed id such
// as "A07". Occupant holds the plate of the parked vehicle, empty when free.
type Slot struct {
	ID       string
	Category Category
	Occupant string
}

// Occupied reports whether a vehicle currently holds the slot.
func (s Slot) Occupied() bool { return s.Occupant != "" }
