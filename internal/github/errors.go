package github

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v72/github"
)

// ErrorKind classifies an API failure.
type ErrorKind string

const (
	// KindNetwork is a transport-level failure before any HTTP status.
	KindNetwork ErrorKind = "network"
	// KindHTTP is a non-2xx response from the API.
	KindHTTP ErrorKind = "http"
)

// APIError is a typed GitHub API failure. HTTP failures carry the status,
// the originating URL and a rate-limit snapshot taken from the response
// headers.
type APIError struct {
	Kind       ErrorKind
	StatusCode int    // 0 for network errors
	URL        string // originating request URL, when known
	Message    string // best-effort upstream message

	// RateRemaining is the remaining-calls count, -1 when unknown.
	RateRemaining int
	// RateResetSeconds is seconds until the rate window resets, clamped
	// at 0; nil when the header was missing or unparseable.
	RateResetSeconds *int

	Err error
}

func (e *APIError) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("network error while calling GitHub: %v", e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("GitHub request failed (%d)", e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// wrapError converts go-github failures into an *APIError wrapped with op
// context. nil passes through.
func (c *Client) wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		apiErr := &APIError{
			Kind:          KindHTTP,
			StatusCode:    http.StatusForbidden,
			Message:       rateErr.Message,
			RateRemaining: rateErr.Rate.Remaining,
			Err:           err,
		}
		if rateErr.Response != nil {
			apiErr.StatusCode = rateErr.Response.StatusCode
			apiErr.URL = requestURL(rateErr.Response)
		}
		if !rateErr.Rate.Reset.IsZero() {
			apiErr.RateResetSeconds = secondsUntil(rateErr.Rate.Reset.Time, c.now())
		}
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		apiErr := &APIError{
			Kind:          KindHTTP,
			StatusCode:    respErr.Response.StatusCode,
			URL:           requestURL(respErr.Response),
			Message:       respErr.Message,
			RateRemaining: -1,
			Err:           err,
		}
		if v := respErr.Response.Header.Get("X-Ratelimit-Remaining"); v != "" {
			if n, parseErr := strconv.Atoi(v); parseErr == nil {
				apiErr.RateRemaining = n
			}
		}
		if v := respErr.Response.Header.Get("X-Ratelimit-Reset"); v != "" {
			if unix, parseErr := strconv.ParseInt(v, 10, 64); parseErr == nil {
				apiErr.RateResetSeconds = secondsUntil(time.Unix(unix, 0), c.now())
			}
		}
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	return fmt.Errorf("%s: %w", op, &APIError{Kind: KindNetwork, RateRemaining: -1, Err: err})
}

func requestURL(resp *http.Response) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return ""
}

func secondsUntil(reset, now time.Time) *int {
	s := int(reset.Sub(now).Seconds())
	if s < 0 {
		s = 0
	}
	return &s
}

// AsAPIError extracts the wrapped *APIError when present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// FormatError renders an error the way the dashboard shows it: a specific
// wait message when the rate limit is exhausted, guidance for common
// statuses, and the raw upstream message otherwise.
func FormatError(err error) string {
	if err == nil {
		return "Unknown error"
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		return err.Error()
	}

	if apiErr.StatusCode == http.StatusForbidden && apiErr.RateRemaining == 0 {
		wait := ""
		if apiErr.RateResetSeconds != nil {
			mins := int(math.Ceil(float64(*apiErr.RateResetSeconds) / 60))
			wait = fmt.Sprintf(" Try again in ~%d min.", mins)
		}
		return "GitHub rate limit exceeded." + wait
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return "Unauthorized (token invalid or missing scopes)."
	case http.StatusForbidden:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Forbidden."
	case http.StatusNotFound:
		return "Not found (repo/endpoint)."
	}

	return apiErr.Error()
}
