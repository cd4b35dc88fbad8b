package lot

import (
	"fmt"

	"github.com/parkwise/parkwise/core/model"
)

// Inventory holds the fixed slot population partitioned by category. Slot ids
// are generated at construction in ascending numeric order ("M01".."M60",
// "A01".."A30", "B01".."B30" for the default layout) and never change.
//
// Inventory performs no locking of its own; the owning Lot serializes access.
type Inventory struct {
	slots map[string]*model.Slot
	byCat map[model.Category][]string
}

// NewInventory builds the slot population described by the layout.
func NewInventory(layout Layout) *Inventory {
	inv := &Inventory{
		slots: make(map[string]*model.Slot),
		byCat: make(map[model.Category][]string),
	}
	inv.addCategory(model.CategoryMotorcycle, layout.MotorcycleSlots)
	inv.addCategory(model.CategorySectionA, layout.SectionASlots)
	inv.addCategory(model.CategorySectionB, layout.SectionBSlots)
	return inv
}

func (inv *Inventory) addCategory(cat model.Category, count int) {
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("%s%02d", cat, i)
		inv.slots[id] = &model.Slot{ID: id, Category: cat}
		inv.byCat[cat] = append(inv.byCat[cat], id)
	}
}

// FindFree returns the first free slot of the category in ascending id order.
// Pure query, no mutation.
func (inv *Inventory) FindFree(cat model.Category) (model.Slot, bool) {
	for _, id := range inv.byCat[cat] {
		if s := inv.slots[id]; !s.Occupied() {
			return *s, true
		}
	}
	return model.Slot{}, false
}

// Occupy marks the slot as held by plate.
func (inv *Inventory) Occupy(id, plate string) error {
	s, ok := inv.slots[id]
	if !ok {
		return fmt.Errorf("occupy %s: %w", id, ErrUnknownSlot)
	}
	if s.Occupied() {
		return fmt.Errorf("occupy %s: %w", id, ErrAlreadyOccupied)
	}
	s.Occupant = plate
	return nil
}

// Vacate clears the slot's occupancy.
func (inv *Inventory) Vacate(id string) error {
	s, ok := inv.slots[id]
	if !ok {
		return fmt.Errorf("vacate %s: %w", id, ErrUnknownSlot)
	}
	if !s.Occupied() {
		return fmt.Errorf("vacate %s: %w", id, ErrNotOccupied)
	}
	s.Occupant = ""
	return nil
}

// IsOccupied reports whether the slot exists and holds a vehicle.
func (inv *Inventory) IsOccupied(id string) bool {
	s, ok := inv.slots[id]
	return ok && s.Occupied()
}

// Slot returns a copy of the slot with the given id.
func (inv *Inventory) Slot(id string) (model.Slot, bool) {
	s, ok := inv.slots[id]
	if !ok {
		return model.Slot{}, false
	}
	return *s, true
}

// CountBy counts the slots of the category matching pred.
func (inv *Inventory) CountBy(cat model.Category, pred func(model.Slot) bool) int {
	n := 0
	for _, id := range inv.byCat[cat] {
		if pred(*inv.slots[id]) {
			n++
		}
	}
	return n
}

// IDsByCategory returns the slot ids of the category in ascending order.
func (inv *Inventory) IDsByCategory(cat model.Category) []string {
	ids := make([]string, len(inv.byCat[cat]))
	copy(ids, inv.byCat[cat])
	return ids
}

// TotalByCategory returns the fixed slot count of the category.
func (inv *Inventory) TotalByCategory(cat model.Category) int {
	return len(inv.byCat[cat])
}

// Total returns the fixed overall slot count.
func (inv *Inventory) Total() int { return len(inv.slots) }
