package reservation

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
	"enkai-reserve/internal/repo"
	"enkai-reserve/pkg/utils"
)

var (
	ErrQuotaExceeded   = errors.New("daily update quota exceeded")
	ErrProjectNotFound = errors.New("reservation project not found")
	ErrProjectClosed   = errors.New("reservation project closed")
)

// ValidationError carries a user-facing message for a bad submission.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

type Service struct {
	db         *gorm.DB
	quotaLimit int
	now        func() time.Time
}

func NewService(db *gorm.DB, quotaLimit int) *Service {
	return &Service{db: db, quotaLimit: quotaLimit, now: time.Now}
}

type SaveInput struct {
	ReservationItemID string
	AvailableDates    []string
	Message           string
	Name              string
}

type SaveResult struct {
	Reservation      domain.Reservation
	RemainingUpdates int
}

// Save validates the submission, charges the daily quota and upserts the
// (user, project) row in one transaction. A quota rejection mutates nothing
// reservation-side: the transaction only commits the counter row itself
// when the bump succeeds.
func (s *Service) Save(userID string, in SaveInput) (*SaveResult, error) {
	now := s.now()
	today := Day(now)

	var out SaveResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := repo.NewProjectRepo(tx).FindByID(in.ReservationItemID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProjectNotFound
		}
		if !p.IsActive {
			return ErrProjectClosed
		}
		if p.Deadline != "" && today > p.Deadline {
			return ErrProjectClosed
		}

		dates := NormalizeDates(in.AvailableDates)
		if len(dates) == 0 {
			return &ValidationError{Reason: "at least one date is required"}
		}
		for _, d := range dates {
			if !ValidDay(d) {
				return &ValidationError{Reason: fmt.Sprintf("invalid date %q", d)}
			}
			if d < today {
				return &ValidationError{Reason: fmt.Sprintf("date %s is in the past", d)}
			}
			if !InWindow(d, p) {
				return &ValidationError{Reason: fmt.Sprintf("date %s is outside the event window", d)}
			}
		}

		ok, err := repo.NewActivityRepo(tx).TryIncrement(userID, today, s.quotaLimit)
		if err != nil {
			return err
		}
		if !ok {
			return ErrQuotaExceeded
		}

		res := domain.Reservation{
			ID:                utils.NewID(),
			UserID:            userID,
			ReservationItemID: p.ID,
			Name:              in.Name,
			AvailableDates:    EncodeDates(dates),
			Message:           in.Message,
			CreatedAt:         now,
		}
		if err := repo.NewReservationRepo(tx).Upsert(&res); err != nil {
			return err
		}
		out.Reservation = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.RemainingUpdates = s.Remaining(userID, today)
	return &out, nil
}

// Remaining is max(0, limit - today's counter).
func (s *Service) Remaining(userID, today string) int {
	n, err := repo.NewActivityRepo(s.db).Count(userID, today)
	if err != nil {
		return 0
	}
	if n >= s.quotaLimit {
		return 0
	}
	return s.quotaLimit - n
}

// Overview folds the caller's raw rows into aggregates and reports how many
// updates they have left today.
func (s *Service) Overview(userID string) ([]Aggregate, int, error) {
	rows, err := repo.NewReservationRepo(s.db).ListByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	projects, err := repo.NewProjectRepo(s.db).ListAll()
	if err != nil {
		return nil, 0, err
	}
	today := Day(s.now())
	return Fold(rows, projects, today), s.Remaining(userID, today), nil
}

// Board is the public attendee list: everyone's aggregates.
func (s *Service) Board() ([]Aggregate, error) {
	rows, err := repo.NewReservationRepo(s.db).ListAll()
	if err != nil {
		return nil, err
	}
	projects, err := repo.NewProjectRepo(s.db).ListAll()
	if err != nil {
		return nil, err
	}
	return Fold(rows, projects, Day(s.now())), nil
}

// Delete drops all of the caller's rows for one project.
func (s *Service) Delete(userID, itemID string) (int64, error) {
	return repo.NewReservationRepo(s.db).DeleteByUserAndItem(userID, itemID)
}
