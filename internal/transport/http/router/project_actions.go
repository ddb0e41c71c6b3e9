package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
	"enkai-reserve/internal/repo"
	"enkai-reserve/internal/reservation"
	httpez "enkai-reserve/internal/transport/http/ez"
	"enkai-reserve/pkg/utils"
)

func mountAdminProjectActions(admin *gin.RouterGroup, d Deps) {
	ezAdmin := httpez.New(admin)

	type projectIn struct {
		Title       string `json:"title"       binding:"required,max=191"`
		StartDate   string `json:"startDate"   binding:"required"`
		EndDate     string `json:"endDate"`
		Deadline    string `json:"deadline"`
		StartTime   string `json:"startTime"`
		Location    string `json:"location"`
		ShopName    string `json:"shopName"`
		Description string `json:"description"`
		IsActive    *bool  `json:"isActive"`
	}

	normalize := func(in *projectIn) (*domain.ReservationItem, error) {
		if !reservation.ValidDay(in.StartDate) {
			return nil, httpez.BadRequest("startDate must be yyyy-MM-dd")
		}
		end := in.EndDate
		if end == "" {
			end = in.StartDate
		}
		if !reservation.ValidDay(end) || end < in.StartDate {
			return nil, httpez.BadRequest("endDate must be yyyy-MM-dd and not before startDate")
		}
		if in.Deadline != "" && !reservation.ValidDay(in.Deadline) {
			return nil, httpez.BadRequest("deadline must be yyyy-MM-dd")
		}
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		return &domain.ReservationItem{
			Title:       in.Title,
			StartDate:   in.StartDate,
			EndDate:     end,
			Deadline:    in.Deadline,
			StartTime:   in.StartTime,
			Location:    in.Location,
			ShopName:    in.ShopName,
			Description: in.Description,
			IsActive:    active,
		}, nil
	}

	// --- POST /admin/v1/reservation-items ---
	httpez.RegisterAction[projectIn, domain.ReservationItem](ezAdmin, d.DB, httpez.Action[projectIn, domain.ReservationItem]{
		Method: http.MethodPost,
		Path:   "/reservation-items",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *projectIn) (domain.ReservationItem, error) {
			p, err := normalize(in)
			if err != nil {
				return domain.ReservationItem{}, err
			}
			p.ID = utils.NewID()
			if err := repo.NewProjectRepo(tx).Create(p); err != nil {
				return domain.ReservationItem{}, httpez.Internal("create project failed", err)
			}
			d.Cache.Invalidate(c, cacheKeyActiveItems)
			return *p, nil
		},
	})

	// --- PUT /admin/v1/reservation-items/:id ---
	httpez.RegisterAction[projectIn, domain.ReservationItem](ezAdmin, d.DB, httpez.Action[projectIn, domain.ReservationItem]{
		Method: http.MethodPut,
		Path:   "/reservation-items/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *projectIn) (domain.ReservationItem, error) {
			projects := repo.NewProjectRepo(tx)
			existing, err := projects.FindByID(c.Param("id"))
			if err != nil {
				return domain.ReservationItem{}, httpez.Internal("lookup project failed", err)
			}
			if existing == nil {
				return domain.ReservationItem{}, httpez.NotFound("project not found")
			}
			p, aerr := normalize(in)
			if aerr != nil {
				return domain.ReservationItem{}, aerr
			}
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			if err := projects.Update(p); err != nil {
				return domain.ReservationItem{}, httpez.Internal("update project failed", err)
			}
			d.Cache.Invalidate(c, cacheKeyActiveItems)
			return *p, nil
		},
	})

	// --- DELETE /admin/v1/reservation-items/:id （连带删除预约行） ---
	httpez.RegisterAction[struct{}, gin.H](ezAdmin, d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/reservation-items/:id",
		Binder: httpez.BindNone,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			projects := repo.NewProjectRepo(tx)
			existing, err := projects.FindByID(id)
			if err != nil {
				return nil, httpez.Internal("lookup project failed", err)
			}
			if existing == nil {
				return nil, httpez.NotFound("project not found")
			}
			if err := repo.NewReservationRepo(tx).DeleteByItem(id); err != nil {
				return nil, httpez.Internal("delete reservations failed", err)
			}
			if err := projects.Delete(id); err != nil {
				return nil, httpez.Internal("delete project failed", err)
			}
			d.Cache.Invalidate(c, cacheKeyActiveItems)
			return gin.H{"id": id}, nil
		},
	})
}
