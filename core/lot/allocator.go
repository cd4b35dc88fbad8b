package lot

import "github.com/parkwise/parkwise/core/model"

// searchOrder is the category preference chain per vehicle class: motorcycles
// only ever use M, four-wheel vehicles try their own section first and fall
// back to the other one when it is full.
var searchOrder = map[model.VehicleClass][]model.Category{
	model.Motorcycle: {model.CategoryMotorcycle},
	model.FourWheelA: {model.CategorySectionA, model.CategorySectionB},
	model.FourWheelB: {model.CategorySectionB, model.CategorySectionA},
}

// Allocate selects a free slot for the vehicle, walking the preference chain
// in ascending slot-id order. The search is deterministic: the same inventory
// state always yields the same slot. Returns false when every candidate
// category is full.
func Allocate(inv *Inventory, v model.Vehicle) (model.Slot, bool) {
	for _, cat := range searchOrder[v.Class] {
		if s, ok := inv.FindFree(cat); ok {
			return s, true
		}
	}
	return model.Slot{}, false
}
