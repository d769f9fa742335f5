package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bucketlist/internal/domain"
	"bucketlist/internal/service"
	"bucketlist/internal/transport/http/ez"
)

type ItemHandler struct {
	svc *service.ListService
}

func NewItemHandler(svc *service.ListService) *ItemHandler { return &ItemHandler{svc: svc} }

type addItemIn struct {
	Text                string  `json:"text"`
	SourceLibraryIdeaID *string `json:"sourceLibraryIdeaId"`
}

// completedAt 由服务端推导，请求里出现也会被忽略
type updateItemIn struct {
	Text        *string `json:"text"`
	IsCompleted *bool   `json:"isCompleted"`
}

type itemOut struct {
	Item *domain.BucketListItem `json:"item"`
}

func (h *ItemHandler) Mount(_, private ez.EZ) {
	ez.RegisterAction(private, ez.Action[addItemIn, itemOut]{
		Method: http.MethodPost,
		Path:   "/lists/:id/items",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *addItemIn) (itemOut, error) {
			it, err := h.svc.AddItem(c.Request.Context(), ez.UserID(c), c.Param("id"), service.AddItemInput{
				Text:                in.Text,
				SourceLibraryIdeaID: in.SourceLibraryIdeaID,
			})
			if err != nil {
				return itemOut{}, err
			}
			return itemOut{Item: it}, nil
		},
	})

	ez.RegisterAction(private, ez.Action[updateItemIn, itemOut]{
		Method: http.MethodPatch,
		Path:   "/items/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateItemIn) (itemOut, error) {
			it, err := h.svc.UpdateItem(c.Request.Context(), ez.UserID(c), c.Param("id"), service.UpdateItemInput{
				Text:        in.Text,
				IsCompleted: in.IsCompleted,
			})
			if err != nil {
				return itemOut{}, err
			}
			return itemOut{Item: it}, nil
		},
	})

	ez.RegisterAction(private, ez.Action[struct{}, deletedOut]{
		Method: http.MethodDelete,
		Path:   "/items/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (deletedOut, error) {
			id := c.Param("id")
			if err := h.svc.DeleteItem(c.Request.Context(), ez.UserID(c), id); err != nil {
				return deletedOut{}, err
			}
			return deletedOut{ID: id}, nil
		},
	})
}
