package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bucketlist/internal/service"
	"bucketlist/internal/transport/http/ez"
)

type ReminderHandler struct {
	svc *service.ReminderService
}

func NewReminderHandler(svc *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

type inactiveIn struct {
	Days int `form:"days"`
}

func (h *ReminderHandler) Mount(_, private ez.EZ) {
	ez.RegisterAction(private, ez.Action[inactiveIn, *service.InactiveReport]{
		Method: http.MethodGet,
		Path:   "/reminders/inactive-lists",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *inactiveIn) (*service.InactiveReport, error) {
			return h.svc.InactiveLists(c.Request.Context(), ez.UserID(c), in.Days)
		},
	})
}
