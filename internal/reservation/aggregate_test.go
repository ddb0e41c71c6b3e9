package reservation

import (
	"reflect"
	"testing"
	"time"

	"enkai-reserve/internal/domain"
)

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func TestFold_UnionAndLatestMessage(t *testing.T) {
	rows := []domain.Reservation{
		{
			UserID: "u1", ReservationItemID: "p1", Name: "old name",
			AvailableDates: `["2025-03-29","2025-03-30"]`,
			Message:        "first",
			CreatedAt:      ts("2025-03-01T10:00:00Z"),
		},
		{
			UserID: "u1", ReservationItemID: "p1", Name: "new name",
			AvailableDates: `["2025-03-30","2025-03-31"]`,
			Message:        "second",
			CreatedAt:      ts("2025-03-02T10:00:00Z"),
		},
	}
	aggs := Fold(rows, projects(), "2025-03-01")
	if len(aggs) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(aggs))
	}
	a := aggs[0]
	wantDates := []string{"2025-03-29", "2025-03-30", "2025-03-31"}
	if !reflect.DeepEqual(a.SelectedDates, wantDates) {
		t.Errorf("dates = %v, want %v", a.SelectedDates, wantDates)
	}
	if a.LatestMessage != "second" || a.LatestName != "new name" {
		t.Errorf("latest = (%q, %q), want (second, new name)", a.LatestMessage, a.LatestName)
	}
}

func TestFold_Idempotent(t *testing.T) {
	rows := []domain.Reservation{
		{UserID: "u1", ReservationItemID: "p1", AvailableDates: `["2025-03-29"]`, Message: "a", CreatedAt: ts("2025-03-01T10:00:00Z")},
		{UserID: "u1", ReservationItemID: "p1", AvailableDates: `["2025-03-30"]`, Message: "b", CreatedAt: ts("2025-03-02T10:00:00Z")},
		{UserID: "u2", ReservationItemID: "p3", AvailableDates: `["2025-07-02"]`, CreatedAt: ts("2025-03-03T10:00:00Z")},
	}
	first := Fold(rows, projects(), "2025-03-01")
	for i := 0; i < 5; i++ {
		again := Fold(rows, projects(), "2025-03-01")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first, again)
		}
	}
}

func TestFold_ExcludesPastDates(t *testing.T) {
	rows := []domain.Reservation{
		{UserID: "u1", ReservationItemID: "p1", AvailableDates: `["2025-03-05","2025-03-29"]`, CreatedAt: ts("2025-03-01T10:00:00Z")},
	}
	aggs := Fold(rows, projects(), "2025-03-10")
	if len(aggs) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(aggs))
	}
	if !reflect.DeepEqual(aggs[0].SelectedDates, []string{"2025-03-29"}) {
		t.Fatalf("dates = %v, past date must be dropped", aggs[0].SelectedDates)
	}
}

func TestFold_SkipsUnknownProject(t *testing.T) {
	rows := []domain.Reservation{
		{UserID: "u1", ReservationItemID: "gone", AvailableDates: `["2025-03-29"]`, CreatedAt: ts("2025-03-01T10:00:00Z")},
	}
	if aggs := Fold(rows, projects(), "2025-03-01"); len(aggs) != 0 {
		t.Fatalf("got %d aggregates, want 0", len(aggs))
	}
}

func TestFold_SeparatePerUserAndProject(t *testing.T) {
	rows := []domain.Reservation{
		{UserID: "u1", ReservationItemID: "p1", AvailableDates: `["2025-03-29"]`, CreatedAt: ts("2025-03-01T10:00:00Z")},
		{UserID: "u2", ReservationItemID: "p1", AvailableDates: `["2025-03-30"]`, CreatedAt: ts("2025-03-01T11:00:00Z")},
		{UserID: "u1", ReservationItemID: "p3", AvailableDates: `["2025-07-02"]`, CreatedAt: ts("2025-03-01T12:00:00Z")},
	}
	aggs := Fold(rows, projects(), "2025-03-01")
	if len(aggs) != 3 {
		t.Fatalf("got %d aggregates, want 3", len(aggs))
	}
	// sorted by project start date: p1, p1, p3
	if aggs[0].ProjectID != "p1" || aggs[1].ProjectID != "p1" || aggs[2].ProjectID != "p3" {
		t.Fatalf("order = %s,%s,%s", aggs[0].ProjectID, aggs[1].ProjectID, aggs[2].ProjectID)
	}
}
