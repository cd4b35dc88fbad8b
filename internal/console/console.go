// Package console implements the interactive text menu in front of the lot
// engine. It owns formatting and prompting only; every decision is delegated
// to core packages.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/parkwise/parkwise/core/logger"
	"github.com/parkwise/parkwise/core/lot"
	"github.com/parkwise/parkwise/core/model"
	"github.com/parkwise/parkwise/core/report"
	"github.com/parkwise/parkwise/pkg/export"
)

const displayLayout = "Jan 02 2006 | 03:04:05 PM"

// Console drives the menu loop over an input/output pair. The clock is
// injectable for tests.
type Console struct {
	lot *lot.Lot
	in  *bufio.Scanner
	out io.Writer
	now func() time.Time
	log logger.Logger
}

// New builds a console around the lot.
func New(l *lot.Lot, in io.Reader, out io.Writer, log logger.Logger) *Console {
	return &Console{
		lot: l,
		in:  bufio.NewScanner(in),
		out: out,
		now: time.Now,
		log: log,
	}
}

// SetClock overrides the console clock.
func (c *Console) SetClock(now func() time.Time) { c.now = now }

// Run loops over the main menu until the user exits or input ends.
func (c *Console) Run() {
	for {
		c.printf("\n=== SMART PARKING MANAGEMENT SYSTEM ===\n")
		c.printf("[1] Park vehicle\n")
		c.printf("[2] Unpark vehicle\n")
		c.printf("[3] Vacancy / Occupancy\n")
		c.printf("[4] Slot map\n")
		c.printf("[5] Reports (usage, peak hours)\n")
		c.printf("[6] Export logs to CSV\n")
		c.printf("[7] Active parked vehicles (search)\n")
		c.printf("[8] Exit\n")
		choice, ok := c.prompt("Enter choice (1-8): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			c.handlePark()
		case "2":
			c.handleUnpark()
		case "3":
			c.handleVacancy()
		case "4":
			c.handleSlotMap()
		case "5":
			c.handleReports()
		case "6":
			c.handleExport()
		case "7":
			c.handleActiveList()
		case "8":
			c.printf("Exiting. Goodbye!\n")
			return
		default:
			c.printf("Invalid option.\n")
		}
	}
}

func (c *Console) handlePark() {
	c.printf("Select vehicle type:\n[1] Motorcycle\n[2] Four-wheel (Car)\n")
	sel, ok := c.prompt("Type: ")
	if !ok {
		return
	}
	var class model.VehicleClass
	switch sel {
	case "1":
		class = model.Motorcycle
	case "2":
		section, ok := c.prompt("Preferred section (A/B) - leave blank for automatic: ")
		if !ok {
			return
		}
		if strings.EqualFold(section, "B") {
			class = model.FourWheelB
		} else {
			class = model.FourWheelA
		}
	default:
		c.printf("Invalid type.\n")
		return
	}
	plate, ok := c.prompt("Plate number: ")
	if !ok {
		return
	}
	v, err := model.NewVehicle(class, plate)
	if err != nil {
		c.printf("%s\n", messageFor(err))
		return
	}
	sess, err := c.lot.Park(v, c.now())
	if err != nil {
		c.printf("%s\n", messageFor(err))
		return
	}
	c.printf("Parked %s at %s (%s) at %s\n", sess.Plate, sess.SlotID, sess.Vehicle, sess.EntryTime.Format(export.TimeLayout))
}

func (c *Console) handleUnpark() {
	plate, ok := c.prompt("Plate number: ")
	if !ok {
		return
	}
	if model.NormalizePlate(plate) == "" {
		c.printf("Plate cannot be empty.\n")
		return
	}
	rcpt, err := c.lot.Unpark(plate, c.now())
	if err != nil {
		c.printf("%s\n", messageFor(err))
		return
	}
	c.printReceipt(rcpt)
}

func (c *Console) printReceipt(r lot.Receipt) {
	c.printf("========================================\n")
	c.printf("         PARKING PAYMENT RECEIPT\n")
	c.printf("========================================\n")
	c.printf("Plate Number : %s\n", r.Plate)
	c.printf("Vehicle Type : %s\n", r.VehicleType)
	c.printf("Slot ID      : %s\n", r.SlotID)
	c.printf("Time In      : %s\n", r.EntryTime.Format(displayLayout))
	c.printf("Time Out     : %s\n", r.ExitTime.Format(displayLayout))
	c.printf("Duration     : %d hour(s) billed\n", r.HoursBilled)
	c.printf("Amount Due   : %.2f\n", r.Amount)
	c.printf("========================================\n")
	c.printf("Thank you! Drive safely!\n")
}

func (c *Console) handleVacancy() {
	vac := c.lot.VacancySummary()
	c.printf("%-28s : %d\n", "Motorcycle vacancies", vac[model.CategoryMotorcycle])
	c.printf("%-28s : %d\n", "4-wheel Section A vacancies", vac[model.CategorySectionA])
	c.printf("%-28s : %d\n", "4-wheel Section B vacancies", vac[model.CategorySectionB])
	c.printf("%-28s : %.2f%%\n", "Overall occupancy rate", c.lot.OccupancyRate())
}

func (c *Console) handleSlotMap() {
	c.printf("Motorcycle Slots:\n")
	used := c.lot.CountUsedByPrefix(model.CategoryMotorcycle)
	total := c.lot.TotalByCategory(model.CategoryMotorcycle)
	c.printf("MC: %s%s  (%d/%d)\n", strings.Repeat("#", used), strings.Repeat("-", total-used), used, total)
	c.printf("\nSection A:\n")
	c.printSlotBlocks(model.CategorySectionA, 10)
	c.printf("\nSection B:\n")
	c.printSlotBlocks(model.CategorySectionB, 10)
}

// printSlotBlocks renders one # or - per slot, perLine slots per row.
func (c *Console) printSlotBlocks(cat model.Category, perLine int) {
	ids := c.lot.SlotIDsByPrefix(cat)
	var row strings.Builder
	used := 0
	for i, id := range ids {
		if c.lot.IsOccupied(id) {
			used++
			row.WriteByte('#')
		} else {
			row.WriteByte('-')
		}
		if (i+1)%perLine == 0 || i == len(ids)-1 {
			c.printf("%s  (%d/%d)\n", row.String(), used, len(ids))
			row.Reset()
		}
	}
}

func (c *Console) handleReports() {
	now := c.now()
	c.printf("Report Generated: %s\n", now.Format(displayLayout))
	c.printf("Total slots: %d\n", c.lot.TotalSlots())
	c.printf("Currently parked: %d\n", c.lot.ActiveCount())
	c.printf("Overall occupancy rate: %.2f%%\n", c.lot.OccupancyRate())
	c.printf("\nRecent history (last 10):\n")
	recent := c.lot.RecentHistory(10)
	if len(recent) == 0 {
		c.printf("  No history yet.\n")
	}
	for i := range recent {
		c.printf("  %s\n", formatEntry(&recent[i], now))
	}
	c.printf("\nPeak hours (top 3):\n")
	for _, hc := range report.TopPeakHours(c.lot.PeakHours(), 3) {
		c.printf("  Hour %02d:00 -> %d entries\n", hc.Hour, hc.Count)
	}
	mean, stddev := c.lot.StayStats(now)
	c.printf("\nAverage stay: %.1f min (stddev %.1f)\n", mean, stddev)
	c.printf("Total Revenue: %.2f\n", c.lot.TotalRevenue())
}

func (c *Console) handleExport() {
	fn, ok := c.prompt("Filename (default: parking_history.csv): ")
	if !ok {
		return
	}
	if fn == "" {
		fn = "parking_history.csv"
	}
	if err := export.WriteFile(fn, c.lot.History(), c.now()); err != nil {
		c.log.Errorf("csv export failed: %v", err)
		c.printf("Failed to export: %v\n", err)
		return
	}
	c.printf("Exported history to: %s\n", fn)
}

func (c *Console) handleActiveList() {
	active := c.lot.ActiveList()
	if len(active) == 0 {
		c.printf("No active parked vehicles.\n")
	}
	for i := range active {
		s := &active[i]
		c.printf("  %s | %s | Entered: %s\n", s.Plate, s.Vehicle, s.EntryTime.Format(displayLayout))
	}
	sel, ok := c.prompt("[S]earch by plate    [ENTER] to go back: ")
	if !ok || !strings.EqualFold(sel, "S") {
		return
	}
	plate, ok := c.prompt("Enter plate to search: ")
	if !ok {
		return
	}
	if s, found := c.lot.FindActive(plate); found {
		c.printf("Found active: %s\n", formatEntry(&s, c.now()))
	} else {
		c.printf("No active vehicle with plate %s\n", model.NormalizePlate(plate))
	}
}

func formatEntry(s *model.Session, now time.Time) string {
	exit := "ACTIVE"
	if !s.Active() {
		exit = s.ExitTime.Format(export.TimeLayout)
	}
	paid := ""
	if s.AmountPaid > 0 {
		paid = fmt.Sprintf(" | Paid: %.2f", s.AmountPaid)
	}
	return fmt.Sprintf("%s | %s | %s -> %s | %d mins%s",
		s.Plate, s.Vehicle, s.EntryTime.Format(export.TimeLayout), exit, s.DurationMinutes(now), paid)
}

// messageFor maps core errors to caller-displayable text.
func messageFor(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyPlate):
		return "Plate cannot be empty."
	case errors.Is(err, model.ErrUnknownClass):
		return "Invalid type."
	case errors.Is(err, lot.ErrAlreadyParked):
		return "Vehicle already parked (active)."
	case errors.Is(err, lot.ErrNoVacancy):
		return "No available slot for this vehicle type."
	case errors.Is(err, lot.ErrNotActive):
		return "No active parked vehicle with that plate."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// prompt prints the label and reads one trimmed line. ok is false when input
// is exhausted.
func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
