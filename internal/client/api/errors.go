package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/newsroom/internal/common"
)

// ErrUnavailable means the server could not be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// responseError turns a non-success response into a common sentinel carrying
// the server's detail message.
func responseError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	sentinel := sentinelFor(resp.StatusCode)
	if body.Detail == "" {
		return fmt.Errorf("%w (status %d)", sentinel, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s", sentinel, body.Detail)
}

func sentinelFor(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return common.ErrUnauthenticated
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusBadRequest:
		return common.ErrDuplicateIdentifier
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusUnprocessableEntity:
		return common.ErrorValidation
	case http.StatusTooManyRequests:
		return common.ErrTooManyRequests
	default:
		return common.ErrorInternal
	}
}
