package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bucketlist/internal/domain"
	"bucketlist/internal/service"
	"bucketlist/internal/transport/http/ez"
)

type SettingsHandler struct {
	users *service.UserService
}

func NewSettingsHandler(users *service.UserService) *SettingsHandler {
	return &SettingsHandler{users: users}
}

// 指针 + required：false 合法，缺省或非布尔为 400
type settingsIn struct {
	ActivityRemindersEnabled *bool `json:"activityRemindersEnabled" binding:"required"`
}

type settingsOut struct {
	Settings domain.Settings `json:"settings"`
}

func (h *SettingsHandler) Mount(_, private ez.EZ) {
	ez.RegisterAction(private, ez.Action[struct{}, settingsOut]{
		Method: http.MethodGet,
		Path:   "/user/settings",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (settingsOut, error) {
			s, err := h.users.GetSettings(c.Request.Context(), ez.UserID(c))
			if err != nil {
				return settingsOut{}, err
			}
			return settingsOut{Settings: s}, nil
		},
	})

	ez.RegisterAction(private, ez.Action[settingsIn, settingsOut]{
		Method: http.MethodPatch,
		Path:   "/user/settings",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *settingsIn) (settingsOut, error) {
			s, err := h.users.UpdateSettings(c.Request.Context(), ez.UserID(c), domain.Settings{
				ActivityRemindersEnabled: *in.ActivityRemindersEnabled,
			})
			if err != nil {
				return settingsOut{}, err
			}
			return settingsOut{Settings: s}, nil
		},
	})
}
