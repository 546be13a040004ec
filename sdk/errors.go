package sdk

import (
	"fmt"
	"strings"

	"github.com/everFinance/names/schema"
)

type ApiError struct {
	StatusCode int
	Err        string // "<kind>: <reason>"
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("resp failed, http code: %d, errMsg: %s", e.StatusCode, e.Err)
}

// Unwrap maps the error kind sent by the server back to its schema error.
func (e *ApiError) Unwrap() error {
	for _, kind := range schema.ErrKinds {
		if e.Err == kind.Error() || strings.HasPrefix(e.Err, kind.Error()+":") {
			return kind
		}
	}
	return nil
}
