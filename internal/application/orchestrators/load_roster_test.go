package orchestrators

import (
	"context"
	"errors"
	"testing"

	"academia/internal/application/registration"
	"academia/internal/domain/attendance"
	"academia/internal/domain/person"
)

// mockAttendance is a map-backed AttendanceService double.
type mockAttendance struct {
	records   []attendance.Record
	check     attendance.RegistrationCheck
	checkErr  error
	listErr   error
	createErr map[int]error // per-student create failures
	deleteErr map[int]error // per-record delete failures

	created []attendance.Draft
	deleted []int
	nextID  int
}

func (m *mockAttendance) ListByClass(ctx context.Context, classID int, date string) ([]attendance.Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func (m *mockAttendance) Check(ctx context.Context, classID int) (attendance.RegistrationCheck, error) {
	if m.checkErr != nil {
		return attendance.RegistrationCheck{}, m.checkErr
	}
	return m.check, nil
}

func (m *mockAttendance) Create(ctx context.Context, draft attendance.Draft) (attendance.Record, error) {
	if err := m.createErr[draft.StudentID]; err != nil {
		return attendance.Record{}, err
	}
	m.created = append(m.created, draft)
	m.nextID++
	return attendance.Record{
		ID:      1000 + m.nextID,
		Date:    draft.Date,
		Status:  draft.Status,
		Notes:   draft.Notes,
		Student: &person.Ref{ID: draft.StudentID},
	}, nil
}

func (m *mockAttendance) Delete(ctx context.Context, id int) error {
	if err := m.deleteErr[id]; err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockRoster is a RosterService double.
type mockRoster struct {
	students []person.Person
	err      error
}

func (m *mockRoster) Roster(ctx context.Context, classID int) ([]person.Person, error) {
	return m.students, m.err
}

// TestLoadRoster_MergesExistingRecords verifies saved records pre-mark
// their rows.
func TestLoadRoster_MergesExistingRecords(t *testing.T) {
	att := &mockAttendance{
		check: attendance.RegistrationCheck{Allowed: true},
		records: []attendance.Record{
			{ID: 500, Status: attendance.StatusPresent, Notes: "llegó temprano", Student: &person.Ref{ID: 3}},
		},
	}
	roster := &mockRoster{students: []person.Person{{ID: 3}, {ID: 4}}}
	book := registration.NewBook()

	result, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{
		SessionID: "s1", ClassID: 10, Date: "2026-08-30",
	}, LoadRosterDeps{Attendance: att, Classes: roster, Book: book})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stale {
		t.Fatal("unexpected stale result")
	}
	if len(result.Sheet.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Sheet.Rows))
	}

	ana := result.Sheet.Rows[0]
	if !ana.Present || ana.Notes != "llegó temprano" || ana.Existing == nil || ana.Existing.ID != 500 {
		t.Errorf("row with saved record not merged: %+v", ana)
	}
	if result.Sheet.Rows[1].Present || result.Sheet.Rows[1].Existing != nil {
		t.Errorf("row without record should start unmarked: %+v", result.Sheet.Rows[1])
	}
}

// TestLoadRoster_DedupesStudents verifies duplicate roster entries collapse
// to one row.
func TestLoadRoster_DedupesStudents(t *testing.T) {
	att := &mockAttendance{check: attendance.RegistrationCheck{Allowed: true}}
	roster := &mockRoster{students: []person.Person{{ID: 3}, {ID: 3}, {ID: 4}}}
	book := registration.NewBook()

	result, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{
		SessionID: "s1", ClassID: 10, Date: "2026-08-30",
	}, LoadRosterDeps{Attendance: att, Classes: roster, Book: book})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sheet.Rows) != 2 {
		t.Errorf("expected 2 deduped rows, got %d", len(result.Sheet.Rows))
	}
}

// TestLoadRoster_CheckFailureFailsOpen verifies a broken gate endpoint
// still lets the sheet open.
func TestLoadRoster_CheckFailureFailsOpen(t *testing.T) {
	att := &mockAttendance{checkErr: errors.New("timeout")}
	roster := &mockRoster{students: []person.Person{{ID: 3}}}
	book := registration.NewBook()

	result, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{
		SessionID: "s1", ClassID: 10, Date: "2026-08-30",
	}, LoadRosterDeps{Attendance: att, Classes: roster, Book: book})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Sheet.Check.Allowed {
		t.Error("a failed check must fail open; the backend re-validates on save")
	}
}

// TestLoadRoster_RosterFailurePropagates verifies a roster error aborts the
// load.
func TestLoadRoster_RosterFailurePropagates(t *testing.T) {
	att := &mockAttendance{check: attendance.RegistrationCheck{Allowed: true}}
	roster := &mockRoster{err: errors.New("backend caído")}
	book := registration.NewBook()

	if _, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{
		SessionID: "s1", ClassID: 10, Date: "2026-08-30",
	}, LoadRosterDeps{Attendance: att, Classes: roster, Book: book}); err == nil {
		t.Error("expected roster error to propagate")
	}
}

// TestLoadRoster_FailedLoadKeepsPreviousSheet verifies a broken fetch for a
// new selection leaves the sheet the user was editing intact.
func TestLoadRoster_FailedLoadKeepsPreviousSheet(t *testing.T) {
	att := &mockAttendance{check: attendance.RegistrationCheck{Allowed: true}}
	roster := &mockRoster{students: []person.Person{{ID: 3}, {ID: 4}}}
	book := registration.NewBook()
	deps := LoadRosterDeps{Attendance: att, Classes: roster, Book: book}

	if _, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{
		SessionID: "s1", ClassID: 10, Date: "2026-08-30",
	}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	book.Toggle("s1", 3)

	roster.err = errors.New("backend caído")
	if _, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{
		SessionID: "s1", ClassID: 11, Date: "2026-09-01",
	}, deps); err == nil {
		t.Fatal("expected the failed load to error")
	}

	sheet, ok := book.Get("s1")
	if !ok {
		t.Fatal("expected the previous sheet to survive the failed load")
	}
	if sheet.ClassID != 10 || sheet.MarkedCount() != 1 {
		t.Errorf("previous sheet lost by a failed load: %+v", sheet)
	}
}

// TestLoadRoster_StaleLoadDiscarded verifies a load that finishes after a
// newer Begin reports Stale and leaves the book alone.
func TestLoadRoster_StaleLoadDiscarded(t *testing.T) {
	book := registration.NewBook()
	roster := &mockRoster{students: []person.Person{{ID: 3}}}

	// The roster call for the first load switches the selection, as if the
	// user picked another class while the request was in flight.
	att := &mockAttendance{check: attendance.RegistrationCheck{Allowed: true}}
	racer := &racingRoster{inner: roster, book: book}

	result, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{
		SessionID: "s1", ClassID: 10, Date: "2026-08-30",
	}, LoadRosterDeps{Attendance: att, Classes: racer, Book: book})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Stale {
		t.Fatal("expected the superseded load to report Stale")
	}
	if sheet, ok := book.Get("s1"); ok {
		t.Errorf("stale load leaked into the book: %+v", sheet)
	}
}

// racingRoster begins a newer selection mid-load.
type racingRoster struct {
	inner RosterService
	book  *registration.Book
	done  bool
}

func (r *racingRoster) Roster(ctx context.Context, classID int) ([]person.Person, error) {
	if !r.done {
		r.done = true
		r.book.Begin("s1", 11, "2026-08-30")
	}
	return r.inner.Roster(ctx, classID)
}

// TestLoadRoster_RequiresSelection verifies the preconditions.
func TestLoadRoster_RequiresSelection(t *testing.T) {
	book := registration.NewBook()
	deps := LoadRosterDeps{Attendance: &mockAttendance{}, Classes: &mockRoster{}, Book: book}
	if _, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{SessionID: "s1", ClassID: 0, Date: "2026-08-30"}, deps); err == nil {
		t.Error("expected error without a class")
	}
	if _, err := ExecuteLoadRoster(context.Background(), LoadRosterInput{SessionID: "s1", ClassID: 10}, deps); err == nil {
		t.Error("expected error without a date")
	}
}
