package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/kioskfeed/internal/errors"
	"github.com/diogo/kioskfeed/internal/models"
)

// httpDateLayout is the layout of the Date response header
const httpDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// maxFeedBody caps the bytes read from a feed response
const maxFeedBody = 4 << 20

// Doer is the part of tls_client.HttpClient the feed client needs
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FeedFetcher is implemented by clients able to load a channel feed
type FeedFetcher interface {
	FetchFeed(ctx context.Context, chatID string) (*FeedResult, error)
}

// FeedResult is a parsed feed plus response metadata
type FeedResult struct {
	Feed *models.Feed
	// ServerTime is the parsed Date header, zero when absent or unparseable
	ServerTime time.Time
	// ReceivedAt is the local time the response was read
	ReceivedAt time.Time
}

// FeedClient fetches channel feeds from the kiosk backend
type FeedClient struct {
	httpClient Doer
	baseURL    string
	timeout    time.Duration
	headers    map[string]string
	now        func() time.Time
}

// FeedClientOption is a function that configures the client
type FeedClientOption func(*FeedClient)

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) FeedClientOption {
	return func(c *FeedClient) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the transport, mostly for tests
func WithHTTPClient(doer Doer) FeedClientOption {
	return func(c *FeedClient) {
		c.httpClient = doer
	}
}

// WithHeader adds or overrides a request header
func WithHeader(key, value string) FeedClientOption {
	return func(c *FeedClient) {
		c.headers[key] = value
	}
}

// WithClock overrides the function used to stamp ReceivedAt
func WithClock(now func() time.Time) FeedClientOption {
	return func(c *FeedClient) {
		c.now = now
	}
}

// NewFeedClient creates a FeedClient for the backend at baseURL
func NewFeedClient(baseURL string, opts ...FeedClientOption) (*FeedClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apierrors.NewConfigError("server", fmt.Sprintf("invalid server URL %q", baseURL))
	}

	client := &FeedClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		timeout: models.DefaultRequestTimeout,
		headers: models.DefaultHeaders(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		timeoutSeconds := int(client.timeout / time.Second)
		if timeoutSeconds < 1 {
			timeoutSeconds = 1
		}
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(timeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}
		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// FeedURL returns the full feed URL for a channel
func (c *FeedClient) FeedURL(chatID string) string {
	return c.baseURL + models.FeedPath + "?" + models.ChatParam + "=" + url.QueryEscape(chatID)
}

// FetchFeed issues GET /feed.json?chat=<id> and parses the answer
func (c *FeedClient) FetchFeed(ctx context.Context, chatID string) (*FeedResult, error) {
	if strings.TrimSpace(chatID) == "" {
		return nil, apierrors.NewMissingChatError()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.FeedURL(chatID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apierrors.NewNetworkError("create feed request", endpoint, err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apierrors.NewTimeoutError(endpoint, fmt.Sprintf("no answer within %s", c.timeout))
		}
		return nil, apierrors.NewNetworkError("fetch feed", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody+1))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apierrors.NewTimeoutError(endpoint, "reading response body")
		}
		return nil, apierrors.NewNetworkError("read feed body", endpoint, err)
	}
	if len(body) > maxFeedBody {
		return nil, apierrors.NewParseError(fmt.Sprintf("body exceeds the %d byte limit", maxFeedBody), "")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewFeedError(resp.StatusCode, endpoint, "unexpected status").WithBody(string(body))
	}

	feed, err := ParseFeed(body)
	if err != nil {
		return nil, err
	}

	result := &FeedResult{
		Feed:       feed,
		ReceivedAt: c.now(),
	}
	if date := resp.Header.Get("Date"); date != "" {
		if t, err := time.Parse(httpDateLayout, date); err == nil {
			result.ServerTime = t
		}
	}
	return result, nil
}

// ParseFeed decodes a feed body of shape {"title"?: string, "messages": [...]}
func ParseFeed(body []byte) (*models.Feed, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("body is not valid JSON", "")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, apierrors.NewParseError("body is not a JSON object", "")
	}

	feed := &models.Feed{Messages: []models.Message{}}
	if title := root.Get("title"); title.Type == gjson.String {
		feed.Title = title.String()
	}

	messages := root.Get("messages")
	if !messages.Exists() || messages.Type == gjson.Null {
		return feed, nil
	}
	if !messages.IsArray() {
		return nil, apierrors.NewParseError("messages is not an array", "messages")
	}

	var parseErr error
	index := 0
	messages.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = apierrors.NewParseError("message is not an object", fmt.Sprintf("messages.%d", index))
			return false
		}
		index++
		feed.Messages = append(feed.Messages, models.Message{
			Content:   stringField(value, "content"),
			Author:    stringField(value, "author"),
			Timestamp: stringField(value, "timestamp"),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return feed, nil
}

// stringField returns a string member, or "" when missing or of another type
func stringField(obj gjson.Result, name string) string {
	v := obj.Get(name)
	if v.Type != gjson.String {
		return ""
	}
	return v.String()
}
