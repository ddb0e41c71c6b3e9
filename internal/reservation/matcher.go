package reservation

import "enkai-reserve/internal/domain"

// MatchProject returns the first project whose inclusive
// [StartDate, EndDate] window contains date, or nil. Iteration order is the
// caller's slice order; ListActive hands projects over ascending by
// StartDate, so overlapping windows resolve to the earlier-starting one.
//
// This is a validation aid only. The stored reservation_item_id foreign key
// is the sole project association on a reservation row.
func MatchProject(date string, projects []domain.ReservationItem) *domain.ReservationItem {
	for i := range projects {
		p := &projects[i]
		if p.StartDate <= date && date <= p.EndDate {
			return p
		}
	}
	return nil
}

// InWindow reports whether date falls inside the project's window.
func InWindow(date string, p *domain.ReservationItem) bool {
	return p.StartDate <= date && date <= p.EndDate
}
