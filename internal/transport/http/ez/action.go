package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
	mdw "enkai-reserve/internal/transport/http/middleware"
	resp "enkai-reserve/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none"
)

// AErr is the one error shape the action layer maps to the wire: Code picks
// the HTTP status, Msg is user-facing, Err is for logs only.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func RateLimited(msg string) error  { return &AErr{Code: resp.CodeRateLimited, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Auth    bool          // 要求登录（检查 userId）
	Roles   []domain.Role // 限定角色（可选）
	UseTx   bool          // 包事务执行
	Handler func(c *gin.Context, db *gorm.DB, in *I) (O, error)
}

// RegisterAction mounts one non-CRUD action. Auth/role checks, input
// binding, the optional transaction and error-to-status mapping all live
// here so handlers stay plain functions.
func RegisterAction[I any, O any](e EZ, db *gorm.DB, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth {
			uid := c.GetString(mdw.KeyUserID)
			if uid == "" {
				writeErr(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			if len(a.Roles) > 0 {
				role := mdw.RoleFrom(c)
				ok := false
				for _, r := range a.Roles {
					if role == r {
						ok = true
						break
					}
				}
				if !ok {
					writeErr(c, resp.CodeForbidden, "forbidden")
					return
				}
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			writeErr(c, resp.CodeBadRequest, bindErr.Error())
			return
		}

		run := func(tx *gorm.DB) (O, error) { return a.Handler(c, tx, &in) }
		var out O
		var err error
		if a.UseTx {
			err = db.WithContext(c).Transaction(func(tx *gorm.DB) error {
				o, e := run(tx)
				out = o
				return e
			})
		} else {
			out, err = run(db.WithContext(c))
		}

		if err != nil {
			var ae *AErr
			if errors.As(err, &ae) {
				writeErr(c, ae.Code, ae.Error())
				return
			}
			writeErr(c, resp.CodeServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func writeErr(c *gin.Context, code int, msg string) {
	c.JSON(resp.HTTPStatus(code), resp.Error(code, msg))
}
