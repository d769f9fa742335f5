package ez

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"bucketlist/internal/domain"
	resp "bucketlist/internal/transport/http/response"
)

func init() {
	// 校验错误里用 json/form 字段名，而不是 Go 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// fromBindError gin 绑定失败 → validation_error + 字段明细
func fromBindError(err error) *AErr {
	var (
		ve  validator.ValidationErrors
		ute *json.UnmarshalTypeError
		se  *json.SyntaxError
		mbe *http.MaxBytesError
	)
	switch {
	case errors.As(err, &mbe):
		return &AErr{Code: resp.CodeTooLarge, Kind: resp.KindTooLarge, Msg: "request body too large"}
	case errors.As(err, &ve):
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return validationErr(fields)
	case errors.As(err, &ute):
		field := ute.Field
		if field == "" {
			field = "body"
		}
		return validationErr(map[string]string{field: "must be a " + ute.Type.String()})
	case errors.As(err, &se), errors.Is(err, io.ErrUnexpectedEOF):
		return validationErr(map[string]string{"body": "malformed JSON"})
	case errors.Is(err, io.EOF):
		return validationErr(map[string]string{"body": "request body is required"})
	default:
		return validationErr(map[string]string{"request": err.Error()})
	}
}

func validationErr(fields map[string]string) *AErr {
	return &AErr{
		Code:    resp.CodeBadRequest,
		Kind:    string(domain.KindValidation),
		Msg:     "invalid request",
		Details: fields,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return "is invalid"
	}
}
