package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
	httpez "enkai-reserve/internal/transport/http/ez"
)

func mountSearchActions(api *gin.RouterGroup, d Deps) {
	ezPublic := httpez.New(api)

	type searchQ struct {
		Q string `form:"q"`
	}
	type hit struct {
		Type  string `json:"type"` // "notice" | "event"
		ID    string `json:"id"`
		Title string `json:"title"`
		Sub   string `json:"sub"`
	}
	httpez.RegisterAction[searchQ, []hit](ezPublic, d.DB, httpez.Action[searchQ, []hit]{
		Method: http.MethodGet,
		Path:   "/search",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, tx *gorm.DB, in *searchQ) ([]hit, error) {
			q := strings.TrimSpace(in.Q)
			if len([]rune(q)) < 2 {
				return []hit{}, nil
			}
			like := "%" + q + "%"

			var notices []domain.Notice
			if err := tx.Where("title LIKE ? OR content LIKE ?", like, like).
				Limit(10).Find(&notices).Error; err != nil {
				return nil, httpez.Internal("search notices failed", err)
			}
			var events []domain.Event
			if err := tx.Where("title LIKE ? OR description LIKE ?", like, like).
				Limit(10).Find(&events).Error; err != nil {
				return nil, httpez.Internal("search events failed", err)
			}

			out := make([]hit, 0, len(notices)+len(events))
			for _, n := range notices {
				out = append(out, hit{Type: "notice", ID: n.ID, Title: n.Title, Sub: "お知らせ"})
			}
			for _, e := range events {
				out = append(out, hit{Type: "event", ID: e.ID, Title: e.Title, Sub: "Event Archive"})
			}
			return out, nil
		},
	})
}
