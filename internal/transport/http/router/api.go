package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"enkai-reserve/internal/core/auth"
	"enkai-reserve/internal/core/cache"
	"enkai-reserve/internal/core/config"
	"enkai-reserve/internal/domain"
	"enkai-reserve/internal/mail"
	"enkai-reserve/internal/reservation"
	mdw "enkai-reserve/internal/transport/http/middleware"
)

// Deps is everything the route actions need, built once in main and passed
// down; no route file owns a client of its own.
type Deps struct {
	Log   *zap.Logger
	DB    *gorm.DB
	JWT   *auth.JWTer
	Cache *cache.Cache
	Mail  mail.Sender
	Cfg   *config.Config
	Resv  *reservation.Service
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(d.Log),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 鉴权分组
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWT, ""))

	Register(&noticeModule{d: d})
	Register(&archiveModule{d: d})
	MountAllAPI(api)

	mountAuthActions(api, authed, d)
	mountReservationActions(api, authed, d)
	mountConfigActions(api, d)
	mountSearchActions(api, d)

	return r
}

func NewAdminEngine(d Deps) *gin.Engine {
	r := gin.New()

	// 管理端流量小，直接用 ginzap 记请求日志
	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(100, 200),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(d.Log),
		mdw.Metrics(),
		ginzap.Ginzap(d.Log, time.RFC3339, true),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWT, domain.RoleAdmin))

	Register(&noticeModule{d: d})
	Register(&archiveModule{d: d})
	MountAllAdmin(admin)

	mountAdminUserActions(admin, d)
	mountAdminProjectActions(admin, d)
	mountAdminReservationActions(admin, d)
	mountAdminConfigActions(admin, d)
	mountAdminEmailActions(admin, d)

	return r
}
