// Package export serializes parking history snapshots for external
// consumers. The lot's data is unaffected by export outcome.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/parkwise/parkwise/core/model"
)

// TimeLayout is the timestamp format used in exported records.
const TimeLayout = "2006-01-02 15:04:05"

// Header is the fixed CSV header row.
var Header = []string{"plate", "vehicle_type", "slot_id", "entry_time", "exit_time", "duration_minutes", "amount_paid"}

// WriteCSV writes the history to w in CSV format with the fixed header.
// Sessions still active get a blank exit time and a duration measured up to
// now.
func WriteCSV(w io.Writer, history []model.Session, now time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := range history {
		s := &history[i]
		exit := ""
		if !s.Active() {
			exit = s.ExitTime.Format(TimeLayout)
		}
		rec := []string{
			s.Plate,
			s.Vehicle.String(),
			s.SlotID,
			s.EntryTime.Format(TimeLayout),
			exit,
			strconv.FormatInt(s.DurationMinutes(now), 10),
			fmt.Sprintf("%.2f", s.AmountPaid),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the history to w in JSON format.
func WriteJSON(w io.Writer, history []model.Session) error {
	enc := json.NewEncoder(w)
	return enc.Encode(history)
}

// WriteFile writes the history as CSV to the named file. Any I/O failure is
// reported to the caller; the history snapshot itself is untouched.
func WriteFile(path string, history []model.Session, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export to %s: %w", path, err)
	}
	if err := WriteCSV(f, history, now); err != nil {
		_ = f.Close()
		return fmt.Errorf("export to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export to %s: %w", path, err)
	}
	return nil
}
