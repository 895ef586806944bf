// Package registration holds the server-side working state of the
// attendance registration page: the roster sheet a user is marking up
// before saving. Marks live only here until the save is confirmed;
// toggling a checkbox never touches the backend.
package registration

import (
	"errors"
	"sync"

	"academia/internal/domain/attendance"
	"academia/internal/domain/person"
)

// ErrNoSheet marks an operation against a session with no open sheet.
var ErrNoSheet = errors.New("no hay una hoja de asistencia abierta")

// Row is one student line on the sheet.
type Row struct {
	Student  person.Person
	Present  bool
	Notes    string
	Existing *attendance.Record // persisted record backing this row, if any
}

// Sheet is the working roster for one (class, date) selection.
type Sheet struct {
	Generation int64
	ClassID    int
	Date       string // YYYY-MM-DD
	Check      attendance.RegistrationCheck
	Rows       []Row
}

// MarkedCount reports how many rows are marked present.
func (s Sheet) MarkedCount() int {
	n := 0
	for _, row := range s.Rows {
		if row.Present {
			n++
		}
	}
	return n
}

// pendingLoad is a selection whose roster is still being fetched.
type pendingLoad struct {
	generation int64
	classID    int
	date       string
}

// Book tracks one open sheet per console session. A new selection is
// pending until its load completes; the live sheet stays readable and
// editable in the meantime.
// INVARIANT: a completed load only lands if its generation is still current
type Book struct {
	mu      sync.RWMutex
	sheets  map[string]*Sheet
	pending map[string]pendingLoad
	nextGen int64
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		sheets:  make(map[string]*Sheet),
		pending: make(map[string]pendingLoad),
	}
}

// Begin registers a new (class, date) selection for the session and
// returns the generation token the load must present on completion.
// The sheet already open for the session, if any, stays in place until
// the load completes, so a failed fetch loses nothing.
func (b *Book) Begin(sessionID string, classID int, date string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextGen++
	b.pending[sessionID] = pendingLoad{generation: b.nextGen, classID: classID, date: date}
	return b.nextGen
}

// Complete installs the loaded rows and check as the session's sheet.
// POST: returns false without mutating when the generation is stale
func (b *Book) Complete(sessionID string, generation int64, check attendance.RegistrationCheck, rows []Row) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pending[sessionID]
	if !ok || p.generation != generation {
		return false
	}
	delete(b.pending, sessionID)
	b.sheets[sessionID] = &Sheet{
		Generation: generation,
		ClassID:    p.classID,
		Date:       p.date,
		Check:      check,
		Rows:       rows,
	}
	return true
}

// Get returns a copy of the session's open sheet.
func (b *Book) Get(sessionID string) (Sheet, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	sheet, ok := b.sheets[sessionID]
	if !ok {
		return Sheet{}, false
	}
	return snapshot(sheet), true
}

// Toggle flips the presence mark of one student. Purely local: no
// backend call happens until the sheet is saved.
// POST: returns the new mark state
func (b *Book) Toggle(sessionID string, studentID int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sheet, ok := b.sheets[sessionID]
	if !ok {
		return false, ErrNoSheet
	}
	for i := range sheet.Rows {
		if sheet.Rows[i].Student.ID == studentID {
			sheet.Rows[i].Present = !sheet.Rows[i].Present
			return sheet.Rows[i].Present, nil
		}
	}
	return false, errors.New("el estudiante no está en la hoja")
}

// SetNotes records the per-row observation text.
func (b *Book) SetNotes(sessionID string, studentID int, notes string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	sheet, ok := b.sheets[sessionID]
	if !ok {
		return ErrNoSheet
	}
	for i := range sheet.Rows {
		if sheet.Rows[i].Student.ID == studentID {
			sheet.Rows[i].Notes = notes
			return nil
		}
	}
	return errors.New("el estudiante no está en la hoja")
}

// Reconcile replaces the sheet's rows and gate after a save. The sheet
// keeps its generation; superseded loads remain rejected either way.
func (b *Book) Reconcile(sessionID string, check attendance.RegistrationCheck, rows []Row) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	sheet, ok := b.sheets[sessionID]
	if !ok {
		return ErrNoSheet
	}
	sheet.Check = check
	sheet.Rows = rows
	return nil
}

// Drop discards the session's open sheet and any pending selection.
func (b *Book) Drop(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sheets, sessionID)
	delete(b.pending, sessionID)
}

func snapshot(sheet *Sheet) Sheet {
	out := *sheet
	out.Rows = make([]Row, len(sheet.Rows))
	copy(out.Rows, sheet.Rows)
	return out
}
