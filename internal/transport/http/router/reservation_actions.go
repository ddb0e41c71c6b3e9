package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"enkai-reserve/internal/core/cache"
	"enkai-reserve/internal/domain"
	"enkai-reserve/internal/mail"
	"enkai-reserve/internal/repo"
	"enkai-reserve/internal/reservation"
	httpez "enkai-reserve/internal/transport/http/ez"
	mdw "enkai-reserve/internal/transport/http/middleware"
)

const msgUpdateLimit = "本日の更新回数制限（5回）に達しました。明日再度お試しください。"

const cacheKeyActiveItems = "items:active"

func mountReservationActions(api, authed *gin.RouterGroup, d Deps) {
	ezPublic := httpez.New(api)
	ezAuth := httpez.New(authed)

	// --- GET /reservation-items：公开，只读 active，按 startDate 升序 ---
	type itemsOut struct {
		Items []domain.ReservationItem `json:"items"`
	}
	httpez.RegisterAction[struct{}, itemsOut](ezPublic, d.DB, httpez.Action[struct{}, itemsOut]{
		Method: http.MethodGet,
		Path:   "/reservation-items",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (itemsOut, error) {
			out, err := cache.GetOrLoadJSON(d.Cache, c.Request.Context(), cacheKeyActiveItems, 30*time.Second,
				func(ctx context.Context) (*itemsOut, error) {
					items, err := repo.NewProjectRepo(tx).ListActive()
					if err != nil {
						return nil, err
					}
					return &itemsOut{Items: items}, nil
				})
			if err != nil {
				return itemsOut{}, httpez.Internal("list projects failed", err)
			}
			if out == nil {
				return itemsOut{Items: []domain.ReservationItem{}}, nil
			}
			return *out, nil
		},
	})

	// --- GET /reservations：本人聚合视图 + 剩余更新次数 ---
	type overviewOut struct {
		Reservations     []reservation.Aggregate `json:"reservations"`
		RemainingUpdates int                     `json:"remainingUpdates"`
	}
	httpez.RegisterAction[struct{}, overviewOut](ezAuth, d.DB, httpez.Action[struct{}, overviewOut]{
		Method: http.MethodGet,
		Path:   "/reservations",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (overviewOut, error) {
			aggs, remaining, err := d.Resv.Overview(c.GetString(mdw.KeyUserID))
			if err != nil {
				return overviewOut{}, httpez.Internal("aggregate reservations failed", err)
			}
			if aggs == nil {
				aggs = []reservation.Aggregate{}
			}
			// own view: drop the redundant user id
			for i := range aggs {
				aggs[i].UserID = ""
			}
			return overviewOut{Reservations: aggs, RemainingUpdates: remaining}, nil
		},
	})

	// --- POST /reservations：配额 + 自然键 upsert，确认邮件尽力而为 ---
	type saveIn struct {
		ReservationItemID string   `json:"reservationItemId" binding:"required"`
		AvailableDates    []string `json:"availableDates"    binding:"required,min=1"`
		Message           string   `json:"message"           binding:"omitempty,max=2000"`
		FirstName         string   `json:"firstName"         binding:"omitempty,max=64"`
		LastName          string   `json:"lastName"          binding:"omitempty,max=64"`
	}
	type saveOut struct {
		ID               string   `json:"id"`
		SelectedDates    []string `json:"selectedDates"`
		RemainingUpdates int      `json:"remainingUpdates"`
	}
	httpez.RegisterAction[saveIn, saveOut](ezAuth, d.DB, httpez.Action[saveIn, saveOut]{
		Method: http.MethodPost,
		Path:   "/reservations",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *saveIn) (saveOut, error) {
			uid := c.GetString(mdw.KeyUserID)
			u, err := repo.NewUserRepo(tx).FindByID(uid)
			if err != nil {
				return saveOut{}, httpez.Internal("lookup user failed", err)
			}
			if u == nil {
				return saveOut{}, httpez.Unauthorized("unauthorized")
			}
			name := u.DisplayName()
			if in.FirstName != "" && in.LastName != "" {
				name = in.FirstName + " " + in.LastName
			}

			res, err := d.Resv.Save(uid, reservation.SaveInput{
				ReservationItemID: in.ReservationItemID,
				AvailableDates:    in.AvailableDates,
				Message:           in.Message,
				Name:              name,
			})
			if err != nil {
				var ve *reservation.ValidationError
				switch {
				case errors.Is(err, reservation.ErrQuotaExceeded):
					mdw.CountQuotaRejection()
					return saveOut{}, httpez.RateLimited(msgUpdateLimit)
				case errors.Is(err, reservation.ErrProjectNotFound):
					return saveOut{}, httpez.NotFound("reservation project not found")
				case errors.Is(err, reservation.ErrProjectClosed):
					return saveOut{}, httpez.BadRequest("reservation is closed for this event")
				case errors.As(err, &ve):
					return saveOut{}, httpez.BadRequest(ve.Reason)
				default:
					return saveOut{}, httpez.Internal("save reservation failed", err)
				}
			}

			// 确认邮件：失败只记日志，不影响写入
			go func(email, name, itemID string, dates []string) {
				p, err := repo.NewProjectRepo(d.DB).FindByID(itemID)
				if err != nil || p == nil {
					return
				}
				if err := d.Mail.Send([]string{email},
					mail.ConfirmationSubject(p.Title),
					mail.ConfirmationBody(name, p.Title, dates)); err != nil {
					d.Log.Warn("confirmation mail failed",
						zap.String("to", email), zap.Error(err))
				}
			}(u.Email, name, in.ReservationItemID, reservation.DecodeDates(res.Reservation.AvailableDates))

			return saveOut{
				ID:               res.Reservation.ID,
				SelectedDates:    reservation.DecodeDates(res.Reservation.AvailableDates),
				RemainingUpdates: res.RemainingUpdates,
			}, nil
		},
	})

	// --- DELETE /reservations?itemId= ---
	type deleteQ struct {
		ItemID string `form:"itemId" binding:"required"`
	}
	httpez.RegisterAction[deleteQ, gin.H](ezAuth, d.DB, httpez.Action[deleteQ, gin.H]{
		Method: http.MethodDelete,
		Path:   "/reservations",
		Binder: httpez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *deleteQ) (gin.H, error) {
			n, err := d.Resv.Delete(c.GetString(mdw.KeyUserID), in.ItemID)
			if err != nil {
				return nil, httpez.Internal("delete reservations failed", err)
			}
			return gin.H{"deleted": n}, nil
		},
	})

	// --- GET /stats：公开出席板 ---
	type statsRow struct {
		Name              string   `json:"name"`
		FirstName         string   `json:"firstName"`
		AvailableDates    []string `json:"availableDates"`
		ReservationItemID string   `json:"reservationItemId"`
	}
	httpez.RegisterAction[struct{}, []statsRow](ezPublic, d.DB, httpez.Action[struct{}, []statsRow]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]statsRow, error) {
			aggs, err := d.Resv.Board()
			if err != nil {
				return nil, httpez.Internal("load stats failed", err)
			}
			users, _, err := repo.NewUserRepo(tx).List(0, 10000)
			if err != nil {
				return nil, httpez.Internal("load users failed", err)
			}
			byID := make(map[string]*domain.User, len(users))
			for i := range users {
				byID[users[i].ID] = &users[i]
			}
			out := make([]statsRow, 0, len(aggs))
			for _, a := range aggs {
				row := statsRow{
					Name:              a.LatestName,
					AvailableDates:    a.SelectedDates,
					ReservationItemID: a.ProjectID,
				}
				if u := byID[a.UserID]; u != nil {
					row.Name = u.DisplayName()
					row.FirstName = u.FirstName
				}
				out = append(out, row)
			}
			return out, nil
		},
	})
}

func mountAdminReservationActions(admin *gin.RouterGroup, d Deps) {
	ezAdmin := httpez.New(admin)

	// --- GET /admin/v1/reservations：原始行 + 用户信息 ---
	type row struct {
		ID                string    `json:"id"`
		UserID            string    `json:"userId"`
		UserName          string    `json:"userName"`
		UserEmail         string    `json:"userEmail"`
		ReservationItemID string    `json:"reservationItemId"`
		AvailableDates    []string  `json:"availableDates"`
		Message           string    `json:"message"`
		CreatedAt         time.Time `json:"createdAt"`
	}
	type listOut struct {
		Total int   `json:"total"`
		Items []row `json:"items"`
	}
	httpez.RegisterAction[struct{}, listOut](ezAdmin, d.DB, httpez.Action[struct{}, listOut]{
		Method: http.MethodGet,
		Path:   "/reservations",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (listOut, error) {
			rows, err := repo.NewReservationRepo(tx).ListAll()
			if err != nil {
				return listOut{}, httpez.Internal("list reservations failed", err)
			}
			users, _, err := repo.NewUserRepo(tx).List(0, 10000)
			if err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}
			byID := make(map[string]*domain.User, len(users))
			for i := range users {
				byID[users[i].ID] = &users[i]
			}
			out := listOut{Items: make([]row, 0, len(rows))}
			for _, r := range rows {
				item := row{
					ID:                r.ID,
					UserID:            r.UserID,
					ReservationItemID: r.ReservationItemID,
					AvailableDates:    reservation.DecodeDates(r.AvailableDates),
					Message:           r.Message,
					CreatedAt:         r.CreatedAt,
				}
				if u := byID[r.UserID]; u != nil {
					item.UserName = u.DisplayName()
					item.UserEmail = u.Email
				} else {
					item.UserName = r.Name
				}
				out.Items = append(out.Items, item)
			}
			out.Total = len(out.Items)
			return out, nil
		},
	})
}
