package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"academia/internal/application/registration"
	"academia/internal/domain/attendance"
)

// ErrRegistrationBlocked marks a save attempt on a day the backend's
// gate refuses. The message carries the user-facing reason.
type ErrRegistrationBlocked struct {
	Check attendance.RegistrationCheck
}

func (e ErrRegistrationBlocked) Error() string {
	if e.Check.Message != "" {
		return e.Check.Message
	}
	return e.Check.BlockedMessage()
}

// SaveAttendanceInput names the session whose sheet is being saved.
type SaveAttendanceInput struct {
	SessionID string
}

// RowOutcome is the fate of one sheet row during a save.
type RowOutcome struct {
	StudentID int
	Saved     bool
	Err       error
}

// SaveAttendanceResult carries the per-row outcomes and the reconciled
// sheet.
type SaveAttendanceResult struct {
	Saved    int
	Failed   int
	Outcomes []RowOutcome
	Sheet    registration.Sheet
}

// SaveAttendanceDeps holds dependencies for SaveAttendance.
type SaveAttendanceDeps struct {
	Attendance AttendanceService
	Book       *registration.Book
}

// ExecuteSaveAttendance persists the open sheet with replace semantics:
// each row's old record is deleted, then a fresh record is created for
// every student, present or absent. Rows fail independently so a retry
// only redoes what is still pending.
// PRE: the session has an open sheet
// POST: the sheet's rows reflect the backend state after the save
// INVARIANT: a blocked gate means zero backend mutations
func ExecuteSaveAttendance(ctx context.Context, input SaveAttendanceInput, deps SaveAttendanceDeps) (SaveAttendanceResult, error) {
	sheet, ok := deps.Book.Get(input.SessionID)
	if !ok {
		return SaveAttendanceResult{}, registration.ErrNoSheet
	}
	if !sheet.Check.Allowed {
		slog.Info("attendance_event", "event", "save_blocked",
			"class_id", sheet.ClassID, "date", sheet.Date, "reason", sheet.Check.Message)
		return SaveAttendanceResult{}, ErrRegistrationBlocked{Check: sheet.Check}
	}

	result := SaveAttendanceResult{Outcomes: make([]RowOutcome, 0, len(sheet.Rows))}
	rows := make([]registration.Row, len(sheet.Rows))
	copy(rows, sheet.Rows)

	for i := range rows {
		outcome := saveRow(ctx, deps.Attendance, sheet, &rows[i])
		if outcome.Err != nil {
			result.Failed++
		} else {
			result.Saved++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	// Re-ask the gate: a successful save usually flips it to "already
	// registered this week".
	check, err := deps.Attendance.Check(ctx, sheet.ClassID)
	if err != nil {
		check = sheet.Check
	}
	if err := deps.Book.Reconcile(input.SessionID, check, rows); err != nil {
		return result, err
	}
	result.Sheet, _ = deps.Book.Get(input.SessionID)

	slog.Info("attendance_event", "event", "saved",
		"class_id", sheet.ClassID, "date", sheet.Date,
		"saved", result.Saved, "failed", result.Failed)

	if result.Failed > 0 {
		return result, errors.New("algunas asistencias no se pudieron guardar")
	}
	return result, nil
}

// saveRow replaces one row's persisted state: delete the old record if
// any, then create a new one carrying the row's mark. Every student gets
// a record; an unmarked row is written as absent. The row is updated in
// place so a partial failure leaves it resumable.
func saveRow(ctx context.Context, svc AttendanceService, sheet registration.Sheet, row *registration.Row) RowOutcome {
	outcome := RowOutcome{StudentID: row.Student.ID}

	if row.Existing != nil {
		if err := svc.Delete(ctx, row.Existing.ID); err != nil {
			outcome.Err = err
			return outcome
		}
		row.Existing = nil
	}

	status := attendance.StatusAbsent
	if row.Present {
		status = attendance.StatusPresent
	}
	draft := attendance.Draft{
		Date:      sheet.Date,
		Status:    status,
		Notes:     row.Notes,
		StudentID: row.Student.ID,
		ClassID:   sheet.ClassID,
	}
	record, err := svc.Create(ctx, draft)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	row.Existing = &record
	outcome.Saved = true
	return outcome
}
