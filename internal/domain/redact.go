package domain

import (
	"net/url"
	"strings"
)

// RedactURL keeps scheme and host of an RPC URL and drops credentials, path and query.
// Anything that is not a URL with a host, such as an IPC path, is returned unchanged.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	redacted := u.Scheme + "://" + u.Host
	if u.Path != "" && u.Path != "/" || u.RawQuery != "" || u.User != nil {
		redacted += "/…"
	}
	return redacted
}

// redactedError masks an RPC URL in the message of the error it wraps
type redactedError struct {
	err  error
	raw  string
	safe string
}

func (e *redactedError) Error() string {
	return strings.ReplaceAll(e.err.Error(), e.raw, e.safe)
}

func (e *redactedError) Unwrap() error {
	return e.err
}

// RedactEndpoint masks rpcURL wherever it appears in the message of err.
// HTTP transport errors quote the request URL, and provider URLs carry API keys.
// A *DeployError stays outermost so its stage and cause are still reachable.
func RedactEndpoint(err error, rpcURL string) error {
	safe := RedactURL(rpcURL)
	if err == nil || safe == rpcURL || !strings.Contains(err.Error(), rpcURL) {
		return err
	}
	if de, ok := err.(*DeployError); ok {
		return &DeployError{Stage: de.Stage, Err: &redactedError{err: de.Err, raw: rpcURL, safe: safe}}
	}
	return &redactedError{err: err, raw: rpcURL, safe: safe}
}
