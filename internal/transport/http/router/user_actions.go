package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
	"enkai-reserve/internal/repo"
	httpez "enkai-reserve/internal/transport/http/ez"
	"enkai-reserve/pkg/utils"
)

func mountAdminUserActions(admin *gin.RouterGroup, d Deps) {
	ezAdmin := httpez.New(admin)

	// --- GET /admin/v1/users ---
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"` // 按 email/name 模糊搜
	}
	type row struct {
		ID           string      `json:"id"`
		Username     string      `json:"username"`
		FirstName    string      `json:"firstName"`
		LastName     string      `json:"lastName"`
		Name         string      `json:"name"`
		Email        string      `json:"email"`
		Role         domain.Role `json:"role"`
		IsSubscribed bool        `json:"isSubscribed"`
		CreatedAt    time.Time   `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}
	httpez.RegisterAction[listQ, listOut](ezAdmin, d.DB, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, tx *gorm.DB, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			q := tx.Model(&domain.User{})
			if s := strings.TrimSpace(in.Q); s != "" {
				like := "%" + s + "%"
				q = q.Where("email LIKE ? OR name LIKE ? OR username LIKE ?", like, like, like)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				return listOut{}, httpez.Internal("count users failed", err)
			}
			var us []domain.User
			if err := q.Order("created_at DESC").Limit(in.Limit).Offset(in.Offset).Find(&us).Error; err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}
			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{
					ID: u.ID, Username: u.Username, FirstName: u.FirstName,
					LastName: u.LastName, Name: u.DisplayName(), Email: u.Email,
					Role: u.Role, IsSubscribed: u.IsSubscribed, CreatedAt: u.CreatedAt,
				})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/users：管理员直接建号（不走 OTP/注册上限） ---
	type createIn struct {
		Username  string `json:"username"  binding:"required,max=64"`
		Password  string `json:"password"  binding:"required"`
		Role      string `json:"role"      binding:"omitempty,oneof=user admin"`
		FirstName string `json:"firstName" binding:"omitempty,max=64"`
		LastName  string `json:"lastName"  binding:"omitempty,max=64"`
	}
	httpez.RegisterAction[createIn, row](ezAdmin, d.DB, httpez.Action[createIn, row]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *createIn) (row, error) {
			role := domain.RoleUser
			if in.Role != "" {
				role, _ = domain.ParseRole(in.Role)
			}
			name := in.Username
			if in.FirstName != "" && in.LastName != "" {
				name = in.FirstName + " " + in.LastName
			}
			u := domain.User{
				ID:           utils.NewID(),
				Username:     in.Username,
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				Name:         name,
				PasswordHash: utils.HashPassword(in.Password),
				Role:         role,
			}
			if strings.Contains(in.Username, "@") {
				u.Email = strings.ToLower(in.Username)
			}
			if err := repo.NewUserRepo(tx).Create(&u); err != nil {
				return row{}, httpez.BadRequest(err.Error())
			}
			return row{
				ID: u.ID, Username: u.Username, FirstName: u.FirstName,
				LastName: u.LastName, Name: u.DisplayName(), Email: u.Email,
				Role: u.Role, CreatedAt: u.CreatedAt,
			}, nil
		},
	})

	// --- PUT /admin/v1/users/:id：姓名/角色/订阅 ---
	type updateIn struct {
		FirstName    *string `json:"firstName"`
		LastName     *string `json:"lastName"`
		Role         *string `json:"role"`
		IsSubscribed *bool   `json:"isSubscribed"`
	}
	httpez.RegisterAction[updateIn, gin.H](ezAdmin, d.DB, httpez.Action[updateIn, gin.H]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *updateIn) (gin.H, error) {
			users := repo.NewUserRepo(tx)
			u, err := users.FindByID(c.Param("id"))
			if err != nil {
				return nil, httpez.Internal("lookup user failed", err)
			}
			if u == nil {
				return nil, httpez.NotFound("user not found")
			}
			if in.FirstName != nil {
				u.FirstName = *in.FirstName
			}
			if in.LastName != nil {
				u.LastName = *in.LastName
			}
			if in.FirstName != nil && in.LastName != nil {
				u.Name = *in.FirstName + " " + *in.LastName
			}
			if in.Role != nil {
				role, ok := domain.ParseRole(*in.Role)
				if !ok {
					return nil, httpez.BadRequest("unknown role")
				}
				u.Role = role
			}
			if in.IsSubscribed != nil {
				u.IsSubscribed = *in.IsSubscribed
			}
			if err := users.Update(u); err != nil {
				return nil, httpez.Internal("update user failed", err)
			}
			return gin.H{"id": u.ID}, nil
		},
	})

	// --- DELETE /admin/v1/users/:id （软删） ---
	httpez.RegisterAction[struct{}, gin.H](ezAdmin, d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			if err := repo.NewUserRepo(tx).Delete(id); err != nil {
				return nil, httpez.Internal("delete user failed", err)
			}
			return gin.H{"id": id}, nil
		},
	})
}
