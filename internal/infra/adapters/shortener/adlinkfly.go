package shortener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"telegram-link-shortener/internal/config"
	"telegram-link-shortener/internal/domain/ports/adapter"
	"telegram-link-shortener/internal/infra/metrics"

	"github.com/tidwall/gjson"
)

var _ adapter.ShortenerAdapter = (*AdLinkFlyAdapter)(nil)

// maxBody caps how much of an upstream response is read.
const maxBody = 1 << 20

// AdLinkFlyAdapter talks to an AdLinkFly-compatible API:
// GET <base><path>?api=<token>&url=<url> -> {"status":"success","shortenedUrl":"..."}
type AdLinkFlyAdapter struct {
	endpoint    string
	resultField string
	rawQuery    bool
	client      *http.Client
}

// NewAdLinkFlyAdapter validates the base URL. A nil client means a plain
// http.Client with no timeout of its own; callers bound requests through ctx.
func NewAdLinkFlyAdapter(cfg config.ShortenerConfig, client *http.Client) (*AdLinkFlyAdapter, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("shortener base url empty")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid shortener base url %q", cfg.BaseURL)
	}
	path := cfg.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	field := cfg.ResultField
	if field == "" {
		field = "shortenedUrl"
	}
	if client == nil {
		client = &http.Client{}
	}
	return &AdLinkFlyAdapter{
		endpoint:    base + path,
		resultField: field,
		rawQuery:    cfg.RawQuery,
		client:      client,
	}, nil
}

func (a *AdLinkFlyAdapter) Name() string { return "adlinkfly" }

// requestURL builds the GET target. With rawQuery the token and URL are spliced
// in verbatim, which breaks for URLs containing '&' or '#'.
func (a *AdLinkFlyAdapter) requestURL(token, rawURL string) string {
	if a.rawQuery {
		return a.endpoint + "?api=" + token + "&url=" + rawURL
	}
	q := url.Values{}
	q.Set("api", token)
	q.Set("url", rawURL)
	return a.endpoint + "?" + q.Encode()
}

// Shorten issues one GET and extracts the configured result field.
func (a *AdLinkFlyAdapter) Shorten(ctx context.Context, token, rawURL string) (short string, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveShortenerCall(a.Name(), time.Since(start).Milliseconds(), err == nil)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.requestURL(token, rawURL), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("shortener request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read shortener response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("shortener http %d: %s", resp.StatusCode, snippet(body))
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("shortener returned malformed json: %s", snippet(body))
	}

	if st := gjson.GetBytes(body, "status"); st.Exists() && strings.EqualFold(st.String(), "error") {
		msg := gjson.GetBytes(body, "message").String()
		return "", fmt.Errorf("shortener rejected request: %s", msg)
	}

	res := gjson.GetBytes(body, a.resultField)
	if !res.Exists() || strings.TrimSpace(res.String()) == "" {
		return "", fmt.Errorf("shortener response has no %q field", a.resultField)
	}
	return strings.TrimSpace(res.String()), nil
}

func snippet(b []byte) string {
	const n = 200
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
