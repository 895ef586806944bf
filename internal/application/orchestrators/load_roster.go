package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"academia/internal/application/registration"
	"academia/internal/domain/attendance"
	"academia/internal/domain/person"
)

// AttendanceService is the slice of the attendance API the registration
// workflows need.
type AttendanceService interface {
	ListByClass(ctx context.Context, classID int, date string) ([]attendance.Record, error)
	Check(ctx context.Context, classID int) (attendance.RegistrationCheck, error)
	Create(ctx context.Context, draft attendance.Draft) (attendance.Record, error)
	Delete(ctx context.Context, id int) error
}

// RosterService fetches the students enrolled in a class.
type RosterService interface {
	Roster(ctx context.Context, classID int) ([]person.Person, error)
}

// LoadRosterInput carries the (class, date) selection being opened.
type LoadRosterInput struct {
	SessionID string
	ClassID   int
	Date      string // YYYY-MM-DD
}

// LoadRosterResult carries the installed sheet, or Stale when a newer
// selection superseded this load while it was in flight.
type LoadRosterResult struct {
	Sheet registration.Sheet
	Stale bool
}

// LoadRosterDeps holds dependencies for LoadRoster.
type LoadRosterDeps struct {
	Attendance AttendanceService
	Classes    RosterService
	Book       *registration.Book
}

// ExecuteLoadRoster opens the registration sheet for a class and date:
// first the registration gate, then the roster, then the day's saved
// records merged in. The gate is consulted before the roster so a
// blocked day renders its reason immediately.
// PRE: ClassID > 0 and Date is set
// POST: the session's sheet holds one row per enrolled student
// POST: on a fetch error the previously open sheet is left untouched
// INVARIANT: a load completing after a newer Begin leaves the book untouched
func ExecuteLoadRoster(ctx context.Context, input LoadRosterInput, deps LoadRosterDeps) (LoadRosterResult, error) {
	if input.ClassID <= 0 || input.Date == "" {
		return LoadRosterResult{}, errors.New("clase y fecha son obligatorias")
	}

	generation := deps.Book.Begin(input.SessionID, input.ClassID, input.Date)

	check, err := deps.Attendance.Check(ctx, input.ClassID)
	if err != nil {
		// The gate is advisory here; the backend still enforces it on
		// save. Let the user in rather than blocking on a flaky check.
		slog.Warn("attendance_event", "event", "check_failed", "class_id", input.ClassID, "error", err)
		check = attendance.RegistrationCheck{Allowed: true}
	}

	students, err := deps.Classes.Roster(ctx, input.ClassID)
	if err != nil {
		return LoadRosterResult{}, err
	}
	students = attendance.DedupeRoster(students)

	records, err := deps.Attendance.ListByClass(ctx, input.ClassID, input.Date)
	if err != nil {
		return LoadRosterResult{}, err
	}

	rows := mergeRoster(students, records)
	if !deps.Book.Complete(input.SessionID, generation, check, rows) {
		slog.Info("attendance_event", "event", "stale_load_discarded", "class_id", input.ClassID, "date", input.Date)
		return LoadRosterResult{Stale: true}, nil
	}

	sheet, _ := deps.Book.Get(input.SessionID)
	return LoadRosterResult{Sheet: sheet}, nil
}

// mergeRoster joins the enrolled students with the day's saved records.
// Records for students no longer on the roster are dropped from view;
// they still exist backend-side until the next save replaces them.
func mergeRoster(students []person.Person, records []attendance.Record) []registration.Row {
	byStudent := make(map[int]attendance.Record, len(records))
	for _, r := range records {
		if r.Student != nil {
			byStudent[r.Student.ID] = r
		}
	}

	rows := make([]registration.Row, 0, len(students))
	for _, s := range students {
		row := registration.Row{Student: s}
		if r, ok := byStudent[s.ID]; ok {
			record := r
			row.Existing = &record
			row.Present = r.Present()
			row.Notes = r.Notes
		}
		rows = append(rows, row)
	}
	return rows
}
