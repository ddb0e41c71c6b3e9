package reservation

import (
	"sort"
	"time"

	"enkai-reserve/internal/domain"
)

// Aggregate is the canonical view of one user's selections for one project:
// the union of dates across their raw rows, with the message and name taken
// from the most recent submission.
type Aggregate struct {
	UserID           string    `json:"userId,omitempty"`
	ProjectID        string    `json:"projectId"`
	ProjectTitle     string    `json:"projectTitle"`
	ProjectStartDate string    `json:"projectStartDate"`
	SelectedDates    []string  `json:"selectedDates"`
	LatestName       string    `json:"name,omitempty"`
	LatestMessage    string    `json:"message"`
	LatestSubmission time.Time `json:"latestSubmissionTime"`
}

// Fold collapses raw reservation rows into one Aggregate per
// (userID, projectID). Rows referencing an unknown project are skipped;
// dates strictly before today are excluded regardless of project window.
// The result is sorted by project start date, dates ascending. Folding is
// pure: the same rows always produce the same aggregates.
func Fold(rows []domain.Reservation, projects []domain.ReservationItem, today string) []Aggregate {
	byID := make(map[string]*domain.ReservationItem, len(projects))
	for i := range projects {
		byID[projects[i].ID] = &projects[i]
	}

	type key struct{ user, project string }
	agg := make(map[key]*Aggregate)
	dates := make(map[key]map[string]struct{})

	for i := range rows {
		r := &rows[i]
		p, ok := byID[r.ReservationItemID]
		if !ok {
			continue
		}
		k := key{r.UserID, r.ReservationItemID}
		a := agg[k]
		if a == nil {
			a = &Aggregate{
				UserID:           r.UserID,
				ProjectID:        p.ID,
				ProjectTitle:     p.Title,
				ProjectStartDate: p.StartDate,
			}
			agg[k] = a
			dates[k] = make(map[string]struct{})
		}
		for _, d := range DecodeDates(r.AvailableDates) {
			if d < today {
				continue
			}
			dates[k][d] = struct{}{}
		}
		if r.CreatedAt.After(a.LatestSubmission) {
			a.LatestSubmission = r.CreatedAt
			a.LatestMessage = r.Message
			a.LatestName = r.Name
		}
	}

	out := make([]Aggregate, 0, len(agg))
	for k, a := range agg {
		ds := make([]string, 0, len(dates[k]))
		for d := range dates[k] {
			ds = append(ds, d)
		}
		sort.Strings(ds)
		a.SelectedDates = ds
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectStartDate != out[j].ProjectStartDate {
			return out[i].ProjectStartDate < out[j].ProjectStartDate
		}
		return out[i].ProjectID < out[j].ProjectID
	})
	return out
}
