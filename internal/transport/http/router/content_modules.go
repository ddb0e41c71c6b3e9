package router

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"enkai-reserve/internal/domain"
	httpez "enkai-reserve/internal/transport/http/ez"
)

// noticeModule and archiveModule ride the generic content registrar: public
// reads on the user API, writes behind the admin group.

type noticeModule struct{ d Deps }

func (m *noticeModule) Priority() int { return 10 }

func (m *noticeModule) MountAPI(api *gin.RouterGroup) {
	httpez.Crud(httpez.CrudConfig[domain.Notice]{
		DB:      m.d.DB,
		Read:    api,
		Path:    "/notices",
		New:     func() *domain.Notice { return &domain.Notice{} },
		OrderBy: "updated_at DESC",
	})
}

func (m *noticeModule) MountAdmin(admin *gin.RouterGroup) {
	httpez.Crud(httpez.CrudConfig[domain.Notice]{
		DB:      m.d.DB,
		Write:   admin,
		Path:    "/notices",
		New:     func() *domain.Notice { return &domain.Notice{} },
		OrderBy: "updated_at DESC",
	})
}

type archiveModule struct{ d Deps }

func eventHooks() httpez.CrudHooks[domain.Event] {
	return httpez.CrudHooks[domain.Event]{
		BeforeSave: func(c *gin.Context, e *domain.Event) error {
			if e.ImageList == nil {
				e.ImageList = []string{}
			}
			b, _ := json.Marshal(e.ImageList)
			e.Images = string(b)
			if e.Status == "" {
				e.Status = "archived"
			}
			return nil
		},
		AfterGet: func(c *gin.Context, e *domain.Event) {
			e.ImageList = []string{}
			_ = json.Unmarshal([]byte(e.Images), &e.ImageList)
		},
	}
}

func (m *archiveModule) MountAPI(api *gin.RouterGroup) {
	httpez.Crud(httpez.CrudConfig[domain.Event]{
		DB:      m.d.DB,
		Read:    api,
		Path:    "/events",
		New:     func() *domain.Event { return &domain.Event{} },
		Hooks:   eventHooks(),
		OrderBy: "date DESC",
	})
}

func (m *archiveModule) MountAdmin(admin *gin.RouterGroup) {
	httpez.Crud(httpez.CrudConfig[domain.Event]{
		DB:      m.d.DB,
		Write:   admin,
		Path:    "/events",
		New:     func() *domain.Event { return &domain.Event{} },
		Hooks:   eventHooks(),
		OrderBy: "date DESC",
	})
}
