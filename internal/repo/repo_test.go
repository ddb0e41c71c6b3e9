package repo

import (
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
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&domain.User{}, &domain.OneTimeCode{}, &domain.ReservationItem{},
		&domain.Reservation{}, &domain.UserActivity{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestReservationUpsert_OneRowPerPair(t *testing.T) {
	db := newTestDB(t)
	r := NewReservationRepo(db)

	first := domain.Reservation{
		ID: "r1", UserID: "u1", ReservationItemID: "p1",
		AvailableDates: `["2025-03-29"]`, Message: "a", CreatedAt: time.Now(),
	}
	if err := r.Upsert(&first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := domain.Reservation{
		ID: "r2", UserID: "u1", ReservationItemID: "p1",
		AvailableDates: `["2025-03-31"]`, Message: "b", CreatedAt: time.Now(),
	}
	if err := r.Upsert(&second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var rows []domain.Reservation
	if err := db.Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Message != "b" || rows[0].AvailableDates != `["2025-03-31"]` {
		t.Errorf("row = %+v, want second write's payload", rows[0])
	}

	// a different project gets its own row
	other := domain.Reservation{
		ID: "r3", UserID: "u1", ReservationItemID: "p2",
		AvailableDates: `["2025-04-01"]`, CreatedAt: time.Now(),
	}
	if err := r.Upsert(&other); err != nil {
		t.Fatalf("other upsert: %v", err)
	}
	if err := db.Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestActivityTryIncrement(t *testing.T) {
	db := newTestDB(t)
	r := NewActivityRepo(db)

	for i := 1; i <= 5; i++ {
		ok, err := r.TryIncrement("u1", "2025-03-28", 5)
		if err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("increment %d rejected, want accepted", i)
		}
		n, err := r.Count("u1", "2025-03-28")
		if err != nil {
			t.Fatal(err)
		}
		if n != i {
			t.Errorf("count = %d, want %d", n, i)
		}
	}

	ok, err := r.TryIncrement("u1", "2025-03-28", 5)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("sixth increment accepted, want rejected")
	}

	// other users and other days are independent
	if ok, _ := r.TryIncrement("u2", "2025-03-28", 5); !ok {
		t.Error("other user blocked")
	}
	if ok, _ := r.TryIncrement("u1", "2025-03-29", 5); !ok {
		t.Error("next day blocked")
	}
}

func TestOTPReplaceAndConsume(t *testing.T) {
	db := newTestDB(t)
	r := NewOTPRepo(db)
	now := time.Now()

	old := domain.OneTimeCode{ID: "c1", Email: "a@example.com", Code: "111111", ExpiresAt: now.Add(10 * time.Minute)}
	if err := r.Replace(&old); err != nil {
		t.Fatal(err)
	}
	fresh := domain.OneTimeCode{ID: "c2", Email: "a@example.com", Code: "222222", ExpiresAt: now.Add(10 * time.Minute)}
	if err := r.Replace(&fresh); err != nil {
		t.Fatal(err)
	}

	// the superseded code is gone
	if got, err := r.Consume("a@example.com", "111111", now); err != nil || got != nil {
		t.Fatalf("old code: got %v err %v, want nil nil", got, err)
	}
	got, err := r.Consume("a@example.com", "222222", now)
	if err != nil || got == nil {
		t.Fatalf("fresh code: got %v err %v", got, err)
	}
	// consuming deletes
	if got, _ := r.Consume("a@example.com", "222222", now); got != nil {
		t.Fatal("code consumable twice")
	}
}

func TestOTPConsume_Expired(t *testing.T) {
	db := newTestDB(t)
	r := NewOTPRepo(db)
	now := time.Now()

	expired := domain.OneTimeCode{ID: "c1", Email: "a@example.com", Code: "111111", ExpiresAt: now.Add(-time.Minute)}
	if err := r.Replace(&expired); err != nil {
		t.Fatal(err)
	}
	if got, err := r.Consume("a@example.com", "111111", now); err != nil || got != nil {
		t.Fatalf("expired code: got %v err %v, want nil nil", got, err)
	}
}

func TestUserRepo_CountCreatedSince(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepo(db)
	base := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)

	for i, created := range []time.Time{
		base.Add(-time.Hour), // yesterday
		base.Add(time.Hour),
		base.Add(2 * time.Hour),
	} {
		u := domain.User{ID: string(rune('a' + i)), Email: string(rune('a'+i)) + "@example.com"}
		if err := r.Create(&u); err != nil {
			t.Fatal(err)
		}
		if err := db.Model(&domain.User{}).Where("id = ?", u.ID).
			UpdateColumn("created_at", created).Error; err != nil {
			t.Fatal(err)
		}
	}

	n, err := r.CountCreatedSince(base)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}
