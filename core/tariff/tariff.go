package tariff

import (
	"fmt"

	"github.com/parkwise/parkwise/core/model"
)

// Rate defines a tiered parking rate: a flat base fee covering the first
// BaseHours, then ExtraHourly per additional hour.
type Rate struct {
	BaseHours   int     `json:"base_hours"`
	BaseFee     float64 `json:"base_fee"`
	ExtraHourly float64 `json:"extra_hourly"`
}

// Table maps the two wheel classes to their rates. Both four-wheel sections
// bill identically.
type Table struct {
	Motorcycle Rate `json:"motorcycle"`
	FourWheel  Rate `json:"four_wheel"`
}

// DefaultTable returns the standard facility tariff.
func DefaultTable() Table {
	return Table{
		Motorcycle: Rate{BaseHours: 3, BaseFee: 20, ExtraHourly: 5},
		FourWheel:  Rate{BaseHours: 3, BaseFee: 40, ExtraHourly: 10},
	}
}

// SetDefaults fills unset rates with the standard tariff.
func (t *Table) SetDefaults() {
	def := DefaultTable()
	if t.Motorcycle == (Rate{}) {
		t.Motorcycle = def.Motorcycle
	}
	if t.FourWheel == (Rate{}) {
		t.FourWheel = def.FourWheel
	}
}

// Validate checks that both rates are usable.
func (t Table) Validate() error {
	for name, r := range map[string]Rate{"motorcycle": t.Motorcycle, "four_wheel": t.FourWheel} {
		if r.BaseHours <= 0 {
			return fmt.Errorf("%s: base_hours must be positive", name)
		}
		if r.BaseFee < 0 || r.ExtraHourly < 0 {
			return fmt.Errorf("%s: fees must not be negative", name)
		}
	}
	return nil
}

// BilledHours converts a stay duration in minutes to billable hours: the
// ceiling in whole hours, never less than one.
func BilledHours(minutes int64) int {
	if minutes <= 0 {
		return 1
	}
	return int((minutes + 59) / 60)
}

// Fee computes the amount due for the class and billed hour count. Pure
// function of its inputs.
func (t Table) Fee(class model.VehicleClass, hours int) float64 {
	r := t.Motorcycle
	if class.IsFourWheel() {
		r = t.FourWheel
	}
	if hours <= r.BaseHours {
		return r.BaseFee
	}
	return r.BaseFee + float64(hours-r.BaseHours)*r.ExtraHourly
}
