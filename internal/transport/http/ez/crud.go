package ez

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mdw "enkai-reserve/internal/transport/http/middleware"
	resp "enkai-reserve/internal/transport/http/response"
	"enkai-reserve/pkg/utils"
)

// CrudHooks lets a module massage rows at the boundary (serialize JSON
// columns, stamp defaults) without writing its own handlers.
type CrudHooks[T any] struct {
	BeforeSave func(c *gin.Context, m *T) error
	AfterGet   func(c *gin.Context, m *T)
	ScopeList  func(c *gin.Context, q *gorm.DB) *gorm.DB
}

// CrudConfig registers content CRUD split across two groups: reads mount on
// Read (public), writes on Write (the admin-authed group). Rows are global,
// not owner-scoped; OwnerID, when the model has one, records which admin
// last wrote the row.
type CrudConfig[T any] struct {
	DB    *gorm.DB
	Read  *gin.RouterGroup
	Write *gin.RouterGroup
	Path  string
	New   func() *T

	Hooks   CrudHooks[T]
	OrderBy string // 为空则按 created_at DESC
}

func Crud[T any](cfg CrudConfig[T]) {
	order := cfg.OrderBy
	if order == "" {
		order = "created_at DESC"
	}

	if cfg.Read != nil {
		cfg.Read.GET(cfg.Path, func(c *gin.Context) {
			page := atoiDefault(c.Query("page"), 1)
			size := atoiDefault(c.Query("size"), 50)
			if size <= 0 || size > 100 {
				size = 50
			}
			q := cfg.DB.WithContext(c).Model(cfg.New())
			if cfg.Hooks.ScopeList != nil {
				q = cfg.Hooks.ScopeList(c, q)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				writeErr(c, resp.CodeServerError, err.Error())
				return
			}
			var items []T
			if err := q.Order(order).Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
				writeErr(c, resp.CodeServerError, err.Error())
				return
			}
			if cfg.Hooks.AfterGet != nil {
				for i := range items {
					cfg.Hooks.AfterGet(c, &items[i])
				}
			}
			c.JSON(http.StatusOK, resp.OK(gin.H{
				"list": items, "total": total, "page": page, "size": size,
			}))
		})

		cfg.Read.GET(cfg.Path+"/:id", func(c *gin.Context) {
			m := cfg.New()
			err := cfg.DB.WithContext(c).First(m, "id = ?", c.Param("id")).Error
			if err != nil {
				writeErr(c, resp.CodeNotFound, "not found")
				return
			}
			if cfg.Hooks.AfterGet != nil {
				cfg.Hooks.AfterGet(c, m)
			}
			c.JSON(http.StatusOK, resp.OK(m))
		})
	}

	if cfg.Write == nil {
		return
	}

	cfg.Write.POST(cfg.Path, func(c *gin.Context) {
		m := cfg.New()
		if err := c.ShouldBindJSON(m); err != nil {
			writeErr(c, resp.CodeBadRequest, err.Error())
			return
		}
		if id, ok := readStringField(m, "ID"); ok && id == "" {
			_ = writeStringField(m, "ID", utils.NewID())
		}
		_ = writeStringField(m, "OwnerID", c.GetString(mdw.KeyUserID))
		if cfg.Hooks.BeforeSave != nil {
			if err := cfg.Hooks.BeforeSave(c, m); err != nil {
				writeErr(c, resp.CodeBadRequest, err.Error())
				return
			}
		}
		if err := cfg.DB.WithContext(c).Create(m).Error; err != nil {
			writeErr(c, resp.CodeBadRequest, err.Error())
			return
		}
		if cfg.Hooks.AfterGet != nil {
			cfg.Hooks.AfterGet(c, m)
		}
		c.JSON(http.StatusOK, resp.OK(m))
	})

	cfg.Write.PUT(cfg.Path+"/:id", func(c *gin.Context) {
		id := c.Param("id")
		existing := cfg.New()
		if err := cfg.DB.WithContext(c).First(existing, "id = ?", id).Error; err != nil {
			writeErr(c, resp.CodeNotFound, "not found")
			return
		}
		in := cfg.New()
		if err := c.ShouldBindJSON(in); err != nil {
			writeErr(c, resp.CodeBadRequest, err.Error())
			return
		}
		_ = writeStringField(in, "ID", id)
		_ = writeStringField(in, "OwnerID", c.GetString(mdw.KeyUserID))
		if cfg.Hooks.BeforeSave != nil {
			if err := cfg.Hooks.BeforeSave(c, in); err != nil {
				writeErr(c, resp.CodeBadRequest, err.Error())
				return
			}
		}
		if err := cfg.DB.WithContext(c).Model(cfg.New()).Where("id = ?", id).Updates(in).Error; err != nil {
			writeErr(c, resp.CodeBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
	})

	cfg.Write.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
		res := cfg.DB.WithContext(c).Where("id = ?", c.Param("id")).Delete(cfg.New())
		if res.Error != nil {
			writeErr(c, resp.CodeServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			writeErr(c, resp.CodeNotFound, "not found")
			return
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
	})
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func readStringField(obj any, name string) (string, bool) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return "", false
	}
	f := v.Elem().FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.String {
		return "", false
	}
	return f.String(), true
}

func writeStringField(obj any, name, val string) bool {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return false
	}
	f := v.Elem().FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.String || !f.CanSet() {
		return false
	}
	f.SetString(val)
	return true
}
