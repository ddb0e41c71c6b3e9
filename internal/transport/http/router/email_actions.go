package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"enkai-reserve/internal/mail"
	"enkai-reserve/internal/repo"
	httpez "enkai-reserve/internal/transport/http/ez"
)

func mountAdminEmailActions(admin *gin.RouterGroup, d Deps) {
	ezAdmin := httpez.New(admin)

	// --- POST /admin/v1/send-email：群发给订阅用户，异步 ---
	type sendIn struct {
		Subject string `json:"subject" binding:"required,max=191"`
		Body    string `json:"body"    binding:"required"`
	}
	httpez.RegisterAction[sendIn, gin.H](ezAdmin, d.DB, httpez.Action[sendIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/send-email",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *sendIn) (gin.H, error) {
			users, err := repo.NewUserRepo(tx).ListSubscribed()
			if err != nil {
				return nil, httpez.Internal("list subscribers failed", err)
			}
			recipients := make([]string, 0, len(users))
			for _, u := range users {
				if u.Email != "" {
					recipients = append(recipients, u.Email)
				}
			}
			go func(subject, body string, rcpts []string) {
				sent := mail.Broadcast(d.Mail, d.Log, rcpts, subject, body)
				d.Log.Info("broadcast finished",
					zap.Int("recipients", len(rcpts)), zap.Int("sent", sent))
			}(in.Subject, in.Body, recipients)
			return gin.H{"recipients": len(recipients)}, nil
		},
	})
}
