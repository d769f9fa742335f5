// Package handler 各业务路由模块；每个模块实现 Mount(public, private)。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bucketlist/internal/domain"
	"bucketlist/internal/service"
	"bucketlist/internal/transport/http/ez"
)

type AuthHandler struct {
	users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler { return &AuthHandler{users: users} }

// 认证接口需要最先挂载
func (h *AuthHandler) Priority() int { return 10 }

type credentialsIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userOut struct {
	User *domain.User `json:"user"`
}

func (h *AuthHandler) Mount(public, _ ez.EZ) {
	ez.RegisterAction(public, ez.Action[credentialsIn, userOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *credentialsIn) (userOut, error) {
			u, err := h.users.Register(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return userOut{}, err
			}
			return userOut{User: u}, nil
		},
	})

	ez.RegisterAction(public, ez.Action[credentialsIn, *service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *credentialsIn) (*service.LoginResult, error) {
			return h.users.Login(c.Request.Context(), in.Email, in.Password)
		},
	})
}
