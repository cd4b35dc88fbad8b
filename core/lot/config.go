package lot

import "fmt"

// Layout defines the fixed slot population per category, loaded from
// configuration. The cardinality is immutable for the lifetime of the process.
type Layout struct {
	MotorcycleSlots int `json:"motorcycle_slots"`
	SectionASlots   int `json:"section_a_slots"`
	SectionBSlots   int `json:"section_b_slots"`
}

// SetDefaults applies the standard 60/30/30 facility layout.
func (l *Layout) SetDefaults() {
	if l.MotorcycleSlots == 0 {
		l.MotorcycleSlots = 60
	}
	if l.SectionASlots == 0 {
		l.SectionASlots = 30
	}
	if l.SectionBSlots == 0 {
		l.SectionBSlots = 30
	}
}

// Validate checks that every category has at least one slot.
func (l Layout) Validate() error {
	if l.MotorcycleSlots <= 0 || l.SectionASlots <= 0 || l.SectionBSlots <= 0 {
		return fmt.Errorf("layout: slot counts must be positive, got M=%d A=%d B=%d",
			l.MotorcycleSlots, l.SectionASlots, l.SectionBSlots)
	}
	return nil
}
