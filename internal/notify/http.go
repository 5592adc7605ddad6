package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// maxErrorBody bounds how much of a failed response is kept for the error.
const maxErrorBody = 512

// postJSON marshals payload and POSTs it to target.
func (b base) postJSON(ctx context.Context, target string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ErrSendFailed{Channel: b.name, Cause: fmt.Errorf("marshal payload: %w", err)}
	}
	return b.post(ctx, target, "application/json", body)
}

// postForm POSTs url-encoded values to target.
func (b base) postForm(ctx context.Context, target string, values url.Values) error {
	return b.post(ctx, target, "application/x-www-form-urlencoded", []byte(values.Encode()))
}

func (b base) post(ctx context.Context, target, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return &ErrSendFailed{Channel: b.name, Cause: fmt.Errorf("build request: %w", redact(err))}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := b.client.Do(req)
	if err != nil {
		return &ErrSendFailed{Channel: b.name, Cause: fmt.Errorf("post: %w", redact(err))}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ErrSendFailed{
			Channel:    b.name,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("platform returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return nil
}

// redact strips the request URL from transport errors. Webhook URLs and bot
// tokens are credentials and must not end up in logs.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

// joinLines joins the non-empty parts with newlines.
func joinLines(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
