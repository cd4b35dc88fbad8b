package model

import (
	"errors"
	"strings"
)

// Category identifies one of the three slot groups of the facility.
type Category string

const (
	CategoryMotorcycle Category = "M"
	CategorySectionA   Category = "A"
	CategorySectionB   Category = "B"
)

// Categories returns all slot categories in display order.
func Categories() []Category {
	return []Category{CategoryMotorcycle, CategorySectionA, CategorySectionB}
}

// VehicleClass defines the closed set of vehicle variants the facility accepts.
type VehicleClass int

const (
	Motorcycle VehicleClass = iota
	FourWheelA
	FourWheelB
)

// String returns the human-readable type name, also used in exports.
func (c VehicleClass) String() string {
	switch c {
	case Motorcycle:
		return "Motorcycle"
	case FourWheelA:
		return "FourWheel-A"
	case FourWheelB:
		return "FourWheel-B"
	default:
		return "unknown"
	}
}

// PreferredCategory returns the slot category the class is assigned to first.
func (c VehicleClass) PreferredCategory() Category {
	switch c {
	case FourWheelA:
		return CategorySectionA
	case FourWheelB:
		return CategorySectionB
	default:
		return CategoryMotorcycle
	}
}

// IsFourWheel reports whether the class bills at the four-wheel rate.
func (c VehicleClass) IsFourWheel() bool {
	return c == FourWheelA || c == FourWheelB
}

var (
	// ErrEmptyPlate is returned when a vehicle is constructed without a plate.
	ErrEmptyPlate = errors.New("plate must not be empty")
	// ErrUnknownClass is returned for a vehicle type selector outside the closed set.
	ErrUnknownClass = errors.New("unknown vehicle class")
)

// Vehicle identifies one vehicle by class and normalized plate.
// Immutable once constructed.
type Vehicle struct {
	Class VehicleClass
	Plate string
}

// NormalizePlate strips whitespace and dashes and upper-cases the plate so
// the same physical plate always maps to the same active-session key.
func NormalizePlate(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, " ", "")
	p = strings.ReplaceAll(p, "-", "")
	return strings.ToUpper(p)
}

// NewVehicle builds a Vehicle with a normalized plate.
func NewVehicle(class VehicleClass, plate string) (Vehicle, error) {
	if class < Motorcycle || class > FourWheelB {
		return Vehicle{}, ErrUnknownClass
	}
	p := NormalizePlate(plate)
	if p == "" {
		return Vehicle{}, ErrEmptyPlate
	}
	return Vehicle{Class: class, Plate: p}, nil
}
