package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bucketlist/internal/domain"
	"bucketlist/internal/service"
	"bucketlist/internal/transport/http/ez"
)

// ListHandler 列表与条目；所有接口都要求登录
type ListHandler struct {
	svc *service.ListService
}

func NewListHandler(svc *service.ListService) *ListHandler { return &ListHandler{svc: svc} }

type listNameIn struct {
	Name string `json:"name"`
}

type listsOut struct {
	Lists []domain.ListView `json:"lists"`
}

type listOut struct {
	List domain.ListView `json:"list"`
}

type deletedOut struct {
	ID string `json:"id"`
}

func (h *ListHandler) Mount(_, private ez.EZ) {
	ez.RegisterAction(private, ez.Action[struct{}, listsOut]{
		Method: http.MethodGet,
		Path:   "/lists",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (listsOut, error) {
			lists, err := h.svc.ListListsForOwner(c.Request.Context(), ez.UserID(c))
			if err != nil {
				return listsOut{}, err
			}
			return listsOut{Lists: lists}, nil
		},
	})

	ez.RegisterAction(private, ez.Action[listNameIn, listOut]{
		Method: http.MethodPost,
		Path:   "/lists",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *listNameIn) (listOut, error) {
			l, err := h.svc.CreateList(c.Request.Context(), ez.UserID(c), in.Name)
			if err != nil {
				return listOut{}, err
			}
			return listOut{List: l.View()}, nil
		},
	})

	ez.RegisterAction(private, ez.Action[struct{}, *service.ListWithItems]{
		Method: http.MethodGet,
		Path:   "/lists/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.ListWithItems, error) {
			return h.svc.GetListWithItems(c.Request.Context(), ez.UserID(c), c.Param("id"))
		},
	})

	ez.RegisterAction(private, ez.Action[listNameIn, listOut]{
		Method: http.MethodPatch,
		Path:   "/lists/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *listNameIn) (listOut, error) {
			l, err := h.svc.RenameList(c.Request.Context(), ez.UserID(c), c.Param("id"), in.Name)
			if err != nil {
				return listOut{}, err
			}
			return listOut{List: l.View()}, nil
		},
	})

	ez.RegisterAction(private, ez.Action[struct{}, deletedOut]{
		Method: http.MethodDelete,
		Path:   "/lists/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (deletedOut, error) {
			id := c.Param("id")
			if err := h.svc.DeleteList(c.Request.Context(), ez.UserID(c), id); err != nil {
				return deletedOut{}, err
			}
			return deletedOut{ID: id}, nil
		},
	})
}
