package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/gitlab-client/internal/auth"
	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// Request is one API call. Path is relative to the client's base URL and
// may already carry an encoded query string; Query is appended after it.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client sends requests to the GitLab API.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	authorizer auth.Authorizer
	logger     gitlab.Logger
	debug      bool
	userAgent  string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	metrics    *requestMetrics
	metricsErr error
}

// NewClient creates a client for baseURL, e.g. https://gitlab.com/api/v4.
// authorizer may be nil for unauthenticated access. Retries are disabled
// until WithRetryConfig is applied.
func NewClient(baseURL string, authorizer auth.Authorizer, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient,
		authorizer: authorizer,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.metricsErr != nil && client.logger != nil {
		client.logger.Warn("Failed to register metrics", map[string]interface{}{
			"error": client.metricsErr.Error(),
		})
	}

	return client
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET for path with optional extra query values.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// GetPage issues a GET for path, adding page and per_page when they are
// positive.
func (c *Client) GetPage(ctx context.Context, path string, page, perPage int) (*Response, error) {
	query := url.Values{}
	if page > 0 {
		query.Set(constants.PageParam, strconv.Itoa(page))
	}

	if perPage > 0 {
		query.Set(constants.PerPageParam, strconv.Itoa(perPage))
	}

	return c.Get(ctx, path, query)
}

// Do sends req. A non-2xx status returns the response together with a
// *gitlab.ResponseError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.limiter != nil {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	requestID := httpReq.Header.Get(constants.HeaderRequestID)
	c.logDebug("HTTP Request", map[string]interface{}{
		"method":     req.Method,
		"url":        httpReq.URL.String(),
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.execute(httpReq)
	duration := time.Since(start)

	c.metrics.observe(req.Method, resp, duration)

	if resp != nil {
		c.logDebug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         httpReq.URL.String(),
			"status_code": resp.StatusCode,
			"request_id":  requestID,
			"duration":    duration.String(),
		})
	}

	return resp, err
}

func (c *Client) newRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	target := c.buildURL(req.Path, req.Query)

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(constants.HeaderRequestID, uuid.NewString())

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.authorizer != nil {
		err = c.authorizer.Authorize(ctx, httpReq.Header)
		if err != nil {
			return nil, fmt.Errorf("authorizing request: %w", err)
		}
	}

	return httpReq, nil
}

// buildURL joins the base URL, the (possibly pre-encoded) path and extra
// query values, choosing '?' or '&' depending on whether path already
// carries a query.
func (c *Client) buildURL(path string, query url.Values) string {
	target := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) == 0 {
		return target
	}

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	return target + separator + query.Encode()
}

func (c *Client) execute(httpReq *retryablehttp.Request) (*Response, error) {
	if c.breaker == nil {
		return c.roundTrip(httpReq)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(httpReq)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", gitlab.ErrCircuitOpen, err)
	}

	resp, _ := result.(*Response)

	return resp, err
}

func (c *Client) roundTrip(httpReq *retryablehttp.Request) (*Response, error) {
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		respErr := gitlab.ParseResponseError(httpResp.StatusCode, body)
		respErr.Method = httpReq.Method
		respErr.URL = httpReq.URL.String()

		return resp, respErr
	}

	return resp, nil
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}
