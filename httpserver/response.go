package httpserver

import (
	"errors"
	"fmt"
	"strconv"

	"movieshelf/errs"

	"github.com/labstack/echo/v4"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"
)

// apiErrorCodes are the envelope codes of application errors. Other errors
// get "100" followed by their HTTP status.
var apiErrorCodes = map[string]string{
	errs.EINVALID:        "100010",
	errs.EUNAUTHORIZED:   "100401",
	errs.ENOTFOUND:       "100404",
	errs.ECONFLICT:       "100409",
	errs.EINTERNAL:       defaultErrorCode,
	errs.ENOTIMPLEMENTED: "100501",
}

// APIResponse is the envelope of every response. Info carries a notice the
// view shows to the user, e.g. after a wishlist change.
type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return writeNotice(c, status, result, "")
}

func writeNotice(c echo.Context, status int, result interface{}, notice string) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
		Info:    notice,
	})
}

func writeList(c echo.Context, status int, data interface{}) error {
	return writeSuccess(c, status, map[string]interface{}{"data": data})
}

func writeError(c echo.Context, status int, message string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
	})
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		if code, ok := apiErrorCodes[appErr.Code]; ok {
			return code
		}
	}
	if status == 0 {
		return defaultErrorCode
	}
	return fmt.Sprintf("100%03d", status)
}
