// Package ez 把 handler 函数注册成路由：绑定入参 → 执行 → 统一信封。
package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bucketlist/internal/domain"
	resp "bucketlist/internal/transport/http/response"
)

// CtxUserID 鉴权中间件写入的用户 ID
const CtxUserID = "userId"

// ctxRequestID 与 middleware.KeyRequestID 保持一致
const ctxRequestID = "X-Request-ID"

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, log *zap.Logger) EZ {
	if log == nil {
		log = zap.NewNop()
	}
	return EZ{g: g, log: log}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // GET | POST | PATCH | PUT | DELETE
	Path    string // 例："/lists/:id/items"
	Binder  Binder
	Auth    bool // 是否要求登录（检查 userId）
	Status  int  // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

func UserID(c *gin.Context) string { return c.GetString(CtxUserID) }

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 鉴权
		if a.Auth && UserID(c) == "" {
			e.fail(c, &AErr{Code: resp.CodeUnauthorized, Msg: "authentication required"})
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			e.fail(c, fromBindError(bindErr))
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, FromError(err))
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func (e EZ) fail(c *gin.Context, ae *AErr) {
	msg := ae.Error()
	if ae.Code >= http.StatusInternalServerError {
		e.log.Error("request failed",
			zap.String("rid", c.GetString(ctxRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("uid", UserID(c)),
			zap.String("kind", ae.Kind),
			zap.Error(ae),
		)
		// 内部细节不外泄
		msg = resp.CodeMsgMap[ae.Code]
	}
	c.AbortWithStatusJSON(ae.Code, resp.Fail(ae.Code, ae.Kind, msg, ae.Details))
}

// 统一错误对象
type AErr struct {
	Code    int
	Kind    string
	Msg     string
	Details map[string]string
	Err     error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		if e.Err != nil && e.Code >= http.StatusInternalServerError {
			return e.Msg + ": " + e.Err.Error()
		}
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }

var kindStatus = map[domain.Kind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindConflict:     http.StatusConflict,
	domain.KindInternal:     http.StatusInternalServerError,
}

// FromError 领域错误 → HTTP 状态 + kind
func FromError(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Kind == "" {
			ae.Kind = resp.CodeKindMap[ae.Code]
		}
		return ae
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AErr{Code: resp.CodeTimeout, Kind: resp.KindTimeout, Msg: "request timed out", Err: err}
	}
	var de *domain.Error
	if errors.As(err, &de) {
		code, ok := kindStatus[de.Kind]
		if !ok {
			code = http.StatusInternalServerError
		}
		return &AErr{Code: code, Kind: string(de.Kind), Msg: de.Msg, Details: de.Fields, Err: de.Err}
	}
	return &AErr{Code: resp.CodeServerError, Kind: string(domain.KindInternal), Msg: "internal error", Err: err}
}
