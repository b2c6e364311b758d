package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"movieshelf/errs"
)

// joined mimics errors that unwrap to several causes, like catalog load errors.
type joined struct {
	errs []error
}

func (j joined) Error() string   { return "joined" }
func (j joined) Unwrap() []error { return j.errs }

func TestError_Error(t *testing.T) {
	err := &errs.Error{Code: errs.ENOTFOUND, Message: "movie not found"}

	assert.Equal(t, "application error: code=not_found message=movie not found", err.Error())
	assert.Equal(t, "application error: code=internal message=", (&errs.Error{Code: errs.EINTERNAL}).Error())
}

func TestErrorCodeAndMessage(t *testing.T) {
	notFound := errs.Errorf(errs.ENOTFOUND, "catalog source %s not found", "movies.txt")

	tests := []struct {
		name            string
		err             error
		expectedCode    string
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedCode:    "",
			expectedMessage: "",
		},
		{
			name:            "application error",
			err:             notFound,
			expectedCode:    errs.ENOTFOUND,
			expectedMessage: "catalog source movies.txt not found",
		},
		{
			name:            "wrapped application error",
			err:             fmt.Errorf("load: %w", notFound),
			expectedCode:    errs.ENOTFOUND,
			expectedMessage: "catalog source movies.txt not found",
		},
		{
			name:            "application error among several causes",
			err:             joined{errs: []error{errors.New("open movies.txt"), notFound}},
			expectedCode:    errs.ENOTFOUND,
			expectedMessage: "catalog source movies.txt not found",
		},
		{
			name:            "plain error is internal",
			err:             errors.New("disk gone"),
			expectedCode:    errs.EINTERNAL,
			expectedMessage: "Internal error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, errs.ErrorCode(tt.err))
			assert.Equal(t, tt.expectedMessage, errs.ErrorMessage(tt.err))
		})
	}
}

func TestErrorf(t *testing.T) {
	err := errs.Errorf(errs.EINVALID, "malformed year at line %d", 3)

	assert.Equal(t, errs.EINVALID, err.Code)
	assert.Equal(t, "malformed year at line 3", err.Message)
	assert.Equal(t, "100%", errs.Errorf(errs.EINVALID, "100%%").Message)
}

func TestErrorCodes(t *testing.T) {
	codes := []string{errs.ECONFLICT, errs.EINTERNAL, errs.EINVALID, errs.ENOTFOUND, errs.ENOTIMPLEMENTED, errs.EUNAUTHORIZED}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code)
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}
