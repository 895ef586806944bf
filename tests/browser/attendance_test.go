package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestAttendance_RosterDedupes verifies the registration sheet lists each
// enrolled student once even when the backend repeats one.
func TestAttendance_RosterDedupes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/asistencias?clase=10"); err != nil {
		t.Fatal(err)
	}

	rows := page.Locator("tbody tr")
	count, err := rows.Count()
	if err != nil {
		t.Fatalf("failed to count roster rows: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 roster rows after dedupe, got %d", count)
	}
	body, _ := page.Locator("main").TextContent()
	if !strings.Contains(body, "Ana García") || !strings.Contains(body, "Luis Pérez") {
		t.Errorf("roster missing expected students: %q", body)
	}
}

// TestAttendance_ToggleAndSave marks one student present, saves, and
// verifies the backend received a record for every roster row: Presente
// for the marked student and Ausente for the untouched one.
func TestAttendance_ToggleAndSave(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/asistencias?clase=10"); err != nil {
		t.Fatal(err)
	}

	// Mark Ana present. The toggle is local; nothing hits the backend yet.
	if err := page.Locator("tbody tr").First().Locator("button.mark").Click(); err != nil {
		t.Fatalf("failed to toggle attendance: %v", err)
	}
	if err := page.Locator("button.mark.present").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("toggle did not render as present: %v", err)
	}
	app.Backend.mu.Lock()
	created := len(app.Backend.CreatedAttendances)
	app.Backend.mu.Unlock()
	if created != 0 {
		t.Fatalf("toggle must not write to the backend, got %d records", created)
	}

	if err := page.Locator("form[action='/asistencias/guardar'] button").Click(); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := page.Locator(".toast-success").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("expected success toast after save: %v", err)
	}

	app.Backend.mu.Lock()
	defer app.Backend.mu.Unlock()
	if len(app.Backend.CreatedAttendances) != 2 {
		t.Fatalf("expected a record per roster row (2), got %d", len(app.Backend.CreatedAttendances))
	}
	byStudent := map[float64]map[string]any{}
	for _, rec := range app.Backend.CreatedAttendances {
		id, _ := rec["idEstudiante"].(float64)
		byStudent[id] = rec
		if rec["idClase"] != float64(10) {
			t.Errorf("expected idClase=10, got %v", rec["idClase"])
		}
	}
	if rec := byStudent[3]; rec == nil || rec["estadoAsis"] != "Presente" {
		t.Errorf("expected Ana (3) registered as Presente, got %v", rec)
	}
	if rec := byStudent[4]; rec == nil || rec["estadoAsis"] != "Ausente" {
		t.Errorf("expected Luis (4) registered as Ausente, got %v", rec)
	}
}

// TestAttendance_BlockedGate verifies a refusing registration check shows
// the day-mismatch message, disables saving, and keeps the backend clean.
func TestAttendance_BlockedGate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	app := newTestApp(t)
	app.Backend.mu.Lock()
	app.Backend.BlockRegistration = true
	app.Backend.mu.Unlock()

	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/asistencias?clase=10"); err != nil {
		t.Fatal(err)
	}

	toast, _ := page.Locator(".toast-error").TextContent()
	if !strings.Contains(toast, "Hoy es Martes") || !strings.Contains(toast, "Lunes") {
		t.Errorf("blocked message should name both days, got %q", toast)
	}

	saveButton := page.Locator("form[action='/asistencias/guardar'] button")
	if disabled, _ := saveButton.IsDisabled(); !disabled {
		t.Error("save button should be disabled while registration is blocked")
	}

	app.Backend.mu.Lock()
	defer app.Backend.mu.Unlock()
	if len(app.Backend.CreatedAttendances) != 0 || len(app.Backend.DeletedAttendances) != 0 {
		t.Error("blocked registration must not touch the backend")
	}
}
