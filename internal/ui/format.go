package ui

import (
	"fmt"
	"strings"
	"time"
)

// timeAgo renders a compact relative age: "42s ago", "5m ago", "3h ago",
// "12d ago". Zero or future timestamps come out as "just now".
func timeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "just now"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// displayRepo strips a configured prefix from a repo name for section
// headers, so "platform-billing" can show as "billing".
func displayRepo(repo, stripPrefix string) string {
	if stripPrefix == "" {
		return repo
	}
	trimmed := strings.TrimPrefix(repo, stripPrefix)
	if trimmed == "" {
		return repo
	}
	return trimmed
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

func joinLogins(logins []string) string {
	return strings.Join(logins, ", ")
}
