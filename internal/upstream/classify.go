// Package upstream fetches profile pages and sorts every outcome into one of
// a few error kinds the HTTP layer knows how to report.
package upstream

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrInvalidUsername = errors.Base("invalid username")
	ErrNotFound        = errors.Base("user not found")
	ErrRateLimited     = errors.Base("origin rate limit exceeded")
	ErrUpstreamStatus  = errors.Base("unexpected upstream status")
	ErrTimeout         = errors.Base("upstream request timed out")
	ErrFetch           = errors.Base("upstream request failed")
)

// StatusError is an upstream response with a status other than 200, 404 or 429.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}

// Fetcher retrieves the raw HTML of a user's profile page.
type Fetcher interface {
	Fetch(ctx context.Context, username string) (string, error)
}

// Classify maps the outcome of a request to nil or a classified error. A
// non-zero status wins over err, since it proves the upstream answered.
func Classify(status int, err error) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return errors.WithStack(ErrNotFound)
	case status == http.StatusTooManyRequests:
		return errors.WithStack(ErrRateLimited)
	case status != 0:
		return errors.WithStack(&StatusError{Code: status})
	case err == nil:
		return errors.Errorf("%w: no response", ErrFetch)
	case errors.Is(err, context.Canceled):
		return errors.Errorf("%w: request cancelled: %s", ErrFetch, err)
	case isTimeout(err):
		return errors.Errorf("%w: %s", ErrTimeout, err)
	default:
		return errors.Errorf("%w: %s", ErrFetch, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ProfileURL joins baseURL and an escaped username. Usernames that would
// escape the profile path are rejected with ErrInvalidUsername.
func ProfileURL(baseURL string, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || username == "." || username == ".." || strings.Contains(username, "/") {
		return "", errors.WithDetails(ErrInvalidUsername, "username", username)
	}
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(username), nil
}
