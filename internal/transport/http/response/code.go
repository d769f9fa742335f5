package response

// 错误码直接沿用 HTTP 状态；成功为 0
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooLarge        = 413
	CodeTooManyRequests = 429
	CodeServerError     = 500
	CodeUnavailable     = 503
	CodeTimeout         = 504
)

// CodeMsgMap 用于集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:              "OK",
	CodeBadRequest:      "Bad Request",
	CodeUnauthorized:    "Unauthorized",
	CodeForbidden:       "Forbidden",
	CodeNotFound:        "Not Found",
	CodeConflict:        "Conflict",
	CodeTooLarge:        "Request Entity Too Large",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "Internal Server Error",
	CodeUnavailable:     "Service Unavailable",
	CodeTimeout:         "Gateway Timeout",
}

// 传输层自己产生的 kind（领域层之外）
const (
	KindRateLimited = "rate_limited"
	KindTooLarge    = "payload_too_large"
	KindUnavailable = "unavailable"
	KindTimeout     = "timeout"
)

// CodeKindMap 状态码对应的默认 kind
var CodeKindMap = map[int]string{
	CodeBadRequest:      "validation_error",
	CodeUnauthorized:    "unauthorized",
	CodeForbidden:       "forbidden",
	CodeNotFound:        "not_found",
	CodeConflict:        "conflict",
	CodeTooLarge:        KindTooLarge,
	CodeTooManyRequests: KindRateLimited,
	CodeServerError:     "internal",
	CodeUnavailable:     KindUnavailable,
	CodeTimeout:         KindTimeout,
}
