package reservation

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"enkai-reserve/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// one shared in-memory database
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&domain.User{}, &domain.ReservationItem{},
		&domain.Reservation{}, &domain.UserActivity{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	s := NewService(db, 5)
	s.now = func() time.Time {
		return time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func seedProject(t *testing.T, db *gorm.DB) domain.ReservationItem {
	t.Helper()
	p := domain.ReservationItem{
		ID:        "proj-1",
		Title:     "spring gathering",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		IsActive:  true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func TestSave_UpsertKeepsOneRow(t *testing.T) {
	db := newTestDB(t)
	s := newTestService(t, db)
	p := seedProject(t, db)

	if _, err := s.Save("u1", SaveInput{
		ReservationItemID: p.ID,
		AvailableDates:    []string{"2025-03-29", "2025-03-30"},
		Message:           "first",
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := s.Save("u1", SaveInput{
		ReservationItemID: p.ID,
		AvailableDates:    []string{"2025-03-30", "2025-03-31"},
		Message:           "second",
	}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var rows []domain.Reservation
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("find rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Message != "second" {
		t.Errorf("message = %q, want second", rows[0].Message)
	}
	if got := DecodeDates(rows[0].AvailableDates); len(got) != 2 || got[0] != "2025-03-30" || got[1] != "2025-03-31" {
		t.Errorf("dates = %v, want overwrite by second submission", got)
	}
}

func TestSave_QuotaMonotonicity(t *testing.T) {
	db := newTestDB(t)
	s := newTestService(t, db)
	p := seedProject(t, db)

	for i := 1; i <= 5; i++ {
		res, err := s.Save("u1", SaveInput{
			ReservationItemID: p.ID,
			AvailableDates:    []string{"2025-03-29"},
			Message:           "try",
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if want := 5 - i; res.RemainingUpdates != want {
			t.Errorf("after %d writes remaining = %d, want %d", i, res.RemainingUpdates, want)
		}
	}

	_, err := s.Save("u1", SaveInput{
		ReservationItemID: p.ID,
		AvailableDates:    []string{"2025-03-31"},
		Message:           "blocked",
	})
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("sixth save err = %v, want ErrQuotaExceeded", err)
	}

	// the rejected write must not have touched the stored row
	var row domain.Reservation
	if err := db.First(&row, "user_id = ?", "u1").Error; err != nil {
		t.Fatalf("find row: %v", err)
	}
	if row.Message != "try" {
		t.Errorf("message = %q, rejection must not mutate state", row.Message)
	}
	if got := DecodeDates(row.AvailableDates); len(got) != 1 || got[0] != "2025-03-29" {
		t.Errorf("dates = %v, rejection must not mutate state", got)
	}
}

func TestSave_QuotaIsPerDay(t *testing.T) {
	db := newTestDB(t)
	s := newTestService(t, db)
	p := seedProject(t, db)

	for i := 0; i < 5; i++ {
		if _, err := s.Save("u1", SaveInput{
			ReservationItemID: p.ID, AvailableDates: []string{"2025-03-29"},
		}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	// next day: new counter key, quota opens again
	s.now = func() time.Time {
		return time.Date(2025, 3, 29, 9, 0, 0, 0, time.UTC)
	}
	res, err := s.Save("u1", SaveInput{
		ReservationItemID: p.ID, AvailableDates: []string{"2025-03-30"},
	})
	if err != nil {
		t.Fatalf("next-day save: %v", err)
	}
	if res.RemainingUpdates != 4 {
		t.Errorf("remaining = %d, want 4", res.RemainingUpdates)
	}
}

func TestSave_Validation(t *testing.T) {
	db := newTestDB(t)
	s := newTestService(t, db)
	p := seedProject(t, db)

	cases := []struct {
		name  string
		dates []string
	}{
		{"empty", nil},
		{"malformed", []string{"03/29/2025"}},
		{"past", []string{"2025-03-27"}},
		{"outside window", []string{"2025-04-02"}},
	}
	for _, tc := range cases {
		_, err := s.Save("u1", SaveInput{ReservationItemID: p.ID, AvailableDates: tc.dates})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: err = %v, want ValidationError", tc.name, err)
		}
	}

	// rejected submissions must not consume quota
	if got := s.Remaining("u1", "2025-03-28"); got != 5 {
		t.Errorf("remaining = %d, validation failures must not charge quota", got)
	}
}

func TestSave_ClosedProject(t *testing.T) {
	db := newTestDB(t)
	s := newTestService(t, db)

	inactive := domain.ReservationItem{
		ID: "p-inactive", Title: "closed", StartDate: "2025-03-01", EndDate: "2025-03-31",
	}
	pastDeadline := domain.ReservationItem{
		ID: "p-deadline", Title: "late", StartDate: "2025-03-01", EndDate: "2025-03-31",
		Deadline: "2025-03-20", IsActive: true,
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&pastDeadline).Error; err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{inactive.ID, pastDeadline.ID} {
		_, err := s.Save("u1", SaveInput{ReservationItemID: id, AvailableDates: []string{"2025-03-29"}})
		if !errors.Is(err, ErrProjectClosed) {
			t.Errorf("save to %s: err = %v, want ErrProjectClosed", id, err)
		}
	}

	_, err := s.Save("u1", SaveInput{ReservationItemID: "missing", AvailableDates: []string{"2025-03-29"}})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestOverviewAndDelete(t *testing.T) {
	db := newTestDB(t)
	s := newTestService(t, db)
	p := seedProject(t, db)

	if _, err := s.Save("u1", SaveInput{
		ReservationItemID: p.ID,
		AvailableDates:    []string{"2025-03-29", "2025-03-30"},
		Message:           "hello",
		Name:              "Taro Yamada",
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	aggs, remaining, err := s.Overview("u1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(aggs) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(aggs))
	}
	if remaining != 4 {
		t.Errorf("remaining = %d, want 4", remaining)
	}
	a := aggs[0]
	if a.ProjectID != p.ID || a.LatestMessage != "hello" || len(a.SelectedDates) != 2 {
		t.Errorf("aggregate = %+v", a)
	}

	n, err := s.Delete("u1", p.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d rows, want 1", n)
	}
	aggs, _, err = s.Overview("u1")
	if err != nil {
		t.Fatalf("overview after delete: %v", err)
	}
	if len(aggs) != 0 {
		t.Errorf("got %d aggregates after delete, want 0", len(aggs))
	}
}
