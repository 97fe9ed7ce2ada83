package github

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(req *http.Request, statusCode int, body string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: statusCode,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func newTestClient(t *testing.T, fn roundTripFunc) *Client {
	t.Helper()
	c, err := NewClient(Options{
		Token:      "test-token",
		HTTPClient: &http.Client{Transport: fn},
	}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return c
}

// fixedNow pins the clock so rate-limit reset math is deterministic.
func fixedNow(t *testing.T, c *Client, at time.Time) {
	t.Helper()
	c.now = func() time.Time { return at }
}
