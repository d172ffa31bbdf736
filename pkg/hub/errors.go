package hub

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StatusError is returned when the hub responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string // Reason phrase, e.g. "Not Found".
	Body       string // Raw response body.
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Hub API error: %d %s\n%s", e.StatusCode, e.Status, e.Body)
}

func newStatusError(resp *http.Response, body []byte) *StatusError {
	status := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if status == "" {
		status = http.StatusText(resp.StatusCode)
	}

	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     status,
		Body:       string(body),
	}
}
