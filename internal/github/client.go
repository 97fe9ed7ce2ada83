// Package github wraps the GitHub REST API behind typed requests and
// typed failures. All calls are read-only.
package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com/"

// Options configures a Client.
type Options struct {
	Token      string
	BaseURL    string       // defaults to the public API
	HTTPClient *http.Client // tests inject a mock transport here
}

// Client is a thin, read-only wrapper over the GitHub REST API.
type Client struct {
	gh  *gh.Client
	log *slog.Logger
	now func() time.Time
}

// NewClient builds a client with a bearer-token transport and a request
// timeout. The upstream has none; a stalled fetch should not pin one of
// the pool slots forever.
func NewClient(opts Options, log *slog.Logger) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		httpClient = &http.Client{
			Transport: &oauth2.Transport{Source: ts, Base: base},
			Timeout:   httpClient.Timeout,
		}
	}

	client := gh.NewClient(httpClient)

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse API base URL %q: %w", baseURL, err)
	}
	client.BaseURL = parsed

	if log == nil {
		log = slog.Default()
	}

	return &Client{gh: client, log: log, now: time.Now}, nil
}

// userFromGH converts a go-github user to our User type.
func userFromGH(u *gh.User) User {
	if u == nil {
		return User{Login: "unknown"}
	}
	return User{
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
	}
}
