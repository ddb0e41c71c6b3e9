package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"enkai-reserve/internal/core/cache"
	"enkai-reserve/internal/domain"
	httpez "enkai-reserve/internal/transport/http/ez"
)

const cacheKeySiteConfig = "siteconfig:default"

func mountConfigActions(api *gin.RouterGroup, d Deps) {
	ezPublic := httpez.New(api)

	// --- GET /config：首次读取时落默认行 ---
	httpez.RegisterAction[struct{}, domain.SiteConfig](ezPublic, d.DB, httpez.Action[struct{}, domain.SiteConfig]{
		Method: http.MethodGet,
		Path:   "/config",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (domain.SiteConfig, error) {
			out, err := cache.GetOrLoadJSON(d.Cache, c.Request.Context(), cacheKeySiteConfig, time.Minute,
				func(ctx context.Context) (*domain.SiteConfig, error) {
					var cfg domain.SiteConfig
					err := tx.First(&cfg, "id = ?", domain.SiteConfigDefaultID).Error
					if errors.Is(err, gorm.ErrRecordNotFound) {
						seeded := domain.DefaultSiteConfig()
						if e := tx.Create(seeded).Error; e != nil {
							return nil, e
						}
						return seeded, nil
					}
					if err != nil {
						return nil, err
					}
					return &cfg, nil
				})
			if err != nil {
				return domain.SiteConfig{}, httpez.Internal("load config failed", err)
			}
			return *out, nil
		},
	})
}

func mountAdminConfigActions(admin *gin.RouterGroup, d Deps) {
	ezAdmin := httpez.New(admin)

	// --- PUT /admin/v1/config ---
	httpez.RegisterAction[domain.SiteConfig, domain.SiteConfig](ezAdmin, d.DB, httpez.Action[domain.SiteConfig, domain.SiteConfig]{
		Method: http.MethodPut,
		Path:   "/config",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *domain.SiteConfig) (domain.SiteConfig, error) {
			in.ID = domain.SiteConfigDefaultID
			if err := tx.Save(in).Error; err != nil {
				return domain.SiteConfig{}, httpez.Internal("save config failed", err)
			}
			d.Cache.Invalidate(c, cacheKeySiteConfig)
			return *in, nil
		},
	})
}
