package response

type Resp struct {
	Code    int               `json:"code"`
	Kind    string            `json:"kind,omitempty"`
	Msg     string            `json:"msg"`
	Details map[string]string `json:"details,omitempty"`
	Data    interface{}       `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	return Fail(code, CodeKindMap[code], customMsg, nil)
}

// Fail 带 kind 与字段级明细的失败响应
func Fail(code int, kind, customMsg string, details map[string]string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	if kind == "" {
		kind = CodeKindMap[code]
	}
	r := New(code, msg, struct{}{})
	r.Kind = kind
	if len(details) > 0 {
		r.Details = details
	}
	return r
}
