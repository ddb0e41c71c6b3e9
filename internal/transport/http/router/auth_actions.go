package router

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
	"enkai-reserve/internal/mail"
	"enkai-reserve/internal/repo"
	httpez "enkai-reserve/internal/transport/http/ez"
	mdw "enkai-reserve/internal/transport/http/middleware"
	"enkai-reserve/pkg/utils"
)

const msgSignupLimit = "本日の新規登録制限（100名）に達しました。明日再度お試しください。"

func mountAuthActions(api, authed *gin.RouterGroup, d Deps) {
	// 登录相关接口单独再加每 IP 限速，防爆破
	ezPublic := httpez.New(api.Group("", mdw.RateLimitPerIP(5, 20)))
	ezAuth := httpez.New(authed)

	// --- POST /auth/otp：删旧码 → 发 6 位验证码 ---
	type otpIn struct {
		Email string `json:"email" binding:"required,email"`
	}
	httpez.RegisterAction[otpIn, gin.H](ezPublic, d.DB, httpez.Action[otpIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/otp",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *otpIn) (gin.H, error) {
			email := strings.ToLower(strings.TrimSpace(in.Email))
			code := strconv.Itoa(100000 + rand.Intn(900000))
			otp := domain.OneTimeCode{
				ID:        utils.NewID(),
				Email:     email,
				Code:      code,
				ExpiresAt: time.Now().Add(time.Duration(d.Cfg.Quota.OTPTTLMin) * time.Minute),
			}
			if err := repo.NewOTPRepo(tx).Replace(&otp); err != nil {
				return nil, httpez.Internal("store otp failed", err)
			}
			if err := d.Mail.Send([]string{email}, mail.OTPSubject(), mail.OTPBody(code)); err != nil {
				return nil, httpez.Internal("send otp failed", err)
			}
			return gin.H{"sent": true}, nil
		},
	})

	// --- POST /auth/signup：OTP 验证 + 当日注册上限 ---
	type signupIn struct {
		Email        string `json:"email"     binding:"required,email"`
		FirstName    string `json:"firstName" binding:"required,max=64"`
		LastName     string `json:"lastName"  binding:"required,max=64"`
		Password     string `json:"password"  binding:"required"`
		Code         string `json:"code"      binding:"required,len=6"`
		IsSubscribed bool   `json:"isSubscribed"`
	}
	type signupOut struct {
		Email string `json:"email"`
	}
	httpez.RegisterAction[signupIn, signupOut](ezPublic, d.DB, httpez.Action[signupIn, signupOut]{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Binder: httpez.BindJSON,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *signupIn) (signupOut, error) {
			email := strings.ToLower(strings.TrimSpace(in.Email))
			if !utils.ValidPassword(in.Password) {
				return signupOut{}, httpez.BadRequest("password must be 8-16 characters with both letters and numbers")
			}

			users := repo.NewUserRepo(tx)
			otp, err := repo.NewOTPRepo(tx).Consume(email, in.Code, time.Now())
			if err != nil {
				return signupOut{}, httpez.Internal("verify code failed", err)
			}
			if otp == nil {
				return signupOut{}, httpez.BadRequest("invalid or expired verification code")
			}

			if existing, err := users.FindByEmail(email); err != nil {
				return signupOut{}, httpez.Internal("lookup user failed", err)
			} else if existing != nil {
				return signupOut{}, httpez.BadRequest("user already exists")
			}

			// 当日注册上限（全站）
			n, err := users.CountCreatedSince(startOfToday())
			if err != nil {
				return signupOut{}, httpez.Internal("count signups failed", err)
			}
			if n >= int64(d.Cfg.Quota.DailySignups) {
				return signupOut{}, httpez.RateLimited(msgSignupLimit)
			}

			role := domain.RoleUser
			if d.Cfg.Site.AdminEmail != "" && email == strings.ToLower(d.Cfg.Site.AdminEmail) {
				role = domain.RoleAdmin
			}
			u := domain.User{
				ID:           utils.NewID(),
				Email:        email,
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				Name:         in.FirstName + " " + in.LastName,
				PasswordHash: utils.HashPassword(in.Password),
				Role:         role,
				IsSubscribed: in.IsSubscribed,
			}
			if err := users.Create(&u); err != nil {
				return signupOut{}, httpez.Internal("create user failed", err)
			}
			return signupOut{Email: u.Email}, nil
		},
	})

	// --- POST /auth/login ---
	type loginIn struct {
		Login    string `json:"login"    binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string      `json:"token"`
		User  interface{} `json:"user"`
	}
	httpez.RegisterAction[loginIn, loginOut](ezPublic, d.DB, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *loginIn) (loginOut, error) {
			u, err := repo.NewUserRepo(tx).FindByLogin(strings.TrimSpace(in.Login))
			if err != nil {
				return loginOut{}, httpez.Internal("lookup user failed", err)
			}
			if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			}
			tok, err := d.JWT.Issue(u.ID, u.Role)
			if err != nil || tok == "" {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{
				Token: tok,
				User: gin.H{
					"id": u.ID, "email": u.Email, "name": u.DisplayName(),
					"role": u.Role, "isSubscribed": u.IsSubscribed,
				},
			}, nil
		},
	})

	// --- POST /auth/reset-password：OTP 验证后更新密码 ---
	type resetIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Code     string `json:"code"     binding:"required,len=6"`
		Password string `json:"password" binding:"required"`
	}
	httpez.RegisterAction[resetIn, gin.H](ezPublic, d.DB, httpez.Action[resetIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/reset-password",
		Binder: httpez.BindJSON,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *resetIn) (gin.H, error) {
			email := strings.ToLower(strings.TrimSpace(in.Email))
			if !utils.ValidPassword(in.Password) {
				return nil, httpez.BadRequest("password must be 8-16 characters with both letters and numbers")
			}
			otp, err := repo.NewOTPRepo(tx).Consume(email, in.Code, time.Now())
			if err != nil {
				return nil, httpez.Internal("verify code failed", err)
			}
			if otp == nil {
				return nil, httpez.BadRequest("invalid or expired verification code")
			}
			users := repo.NewUserRepo(tx)
			u, err := users.FindByEmail(email)
			if err != nil {
				return nil, httpez.Internal("lookup user failed", err)
			}
			if u == nil {
				return nil, httpez.NotFound("user not found")
			}
			u.PasswordHash = utils.HashPassword(in.Password)
			if err := users.Update(u); err != nil {
				return nil, httpez.Internal("update password failed", err)
			}
			return gin.H{"updated": true}, nil
		},
	})

	// --- GET /me ---
	type meOut struct {
		ID           string      `json:"id"`
		Email        string      `json:"email"`
		FirstName    string      `json:"firstName"`
		LastName     string      `json:"lastName"`
		Name         string      `json:"name"`
		Role         domain.Role `json:"role"`
		IsSubscribed bool        `json:"isSubscribed"`
	}
	httpez.RegisterAction[struct{}, meOut](ezAuth, d.DB, httpez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (meOut, error) {
			u, err := repo.NewUserRepo(tx).FindByID(c.GetString(mdw.KeyUserID))
			if err != nil {
				return meOut{}, httpez.Internal("lookup user failed", err)
			}
			if u == nil {
				return meOut{}, httpez.NotFound("user not found")
			}
			return meOut{
				ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
				Name: u.DisplayName(), Role: u.Role, IsSubscribed: u.IsSubscribed,
			}, nil
		},
	})

	// --- PUT /me：本人只能改订阅状态 ---
	type meIn struct {
		IsSubscribed *bool `json:"isSubscribed"`
	}
	httpez.RegisterAction[meIn, gin.H](ezAuth, d.DB, httpez.Action[meIn, gin.H]{
		Method: http.MethodPut,
		Path:   "/me",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *meIn) (gin.H, error) {
			users := repo.NewUserRepo(tx)
			u, err := users.FindByID(c.GetString(mdw.KeyUserID))
			if err != nil {
				return nil, httpez.Internal("lookup user failed", err)
			}
			if u == nil {
				return nil, httpez.NotFound("user not found")
			}
			if in.IsSubscribed != nil {
				u.IsSubscribed = *in.IsSubscribed
			}
			if err := users.Update(u); err != nil {
				return nil, httpez.Internal("update user failed", err)
			}
			return gin.H{"id": u.ID, "isSubscribed": u.IsSubscribed}, nil
		},
	})
}

// startOfToday is local midnight, matching the reservation day key.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
