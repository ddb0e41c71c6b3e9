package reservation

import (
	"testing"

	"enkai-reserve/internal/domain"
)

func projects() []domain.ReservationItem {
	return []domain.ReservationItem{
		{ID: "p1", Title: "spring", StartDate: "2025-03-01", EndDate: "2025-03-31"},
		{ID: "p2", Title: "overlap", StartDate: "2025-03-20", EndDate: "2025-04-10"},
		{ID: "p3", Title: "summer", StartDate: "2025-07-01", EndDate: "2025-07-05"},
	}
}

func TestMatchProject_InsideWindow(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-03-01", "p1"}, // inclusive start
		{"2025-03-31", "p1"}, // inclusive end
		{"2025-03-15", "p1"},
		{"2025-04-01", "p2"},
		{"2025-07-03", "p3"},
	}
	for _, tc := range cases {
		got := MatchProject(tc.date, projects())
		if got == nil || got.ID != tc.want {
			t.Errorf("MatchProject(%s) = %v, want %s", tc.date, got, tc.want)
		}
	}
}

func TestMatchProject_OverlapFirstWins(t *testing.T) {
	// 2025-03-25 is inside both p1 and p2; slice order decides.
	got := MatchProject("2025-03-25", projects())
	if got == nil || got.ID != "p1" {
		t.Fatalf("MatchProject overlap = %v, want p1", got)
	}
}

func TestMatchProject_NoWindow(t *testing.T) {
	for _, date := range []string{"2025-02-28", "2025-05-01", "2025-12-31"} {
		if got := MatchProject(date, projects()); got != nil {
			t.Errorf("MatchProject(%s) = %s, want nil", date, got.ID)
		}
	}
}
