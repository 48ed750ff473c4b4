package http

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output and retry messages.
// Retry attempts are only logged together with WithDebug(true); failures
// are always logged.
func WithLogger(logger gitlab.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.httpClient.Logger = &leveledLogger{client: c}
	}
}

// WithDebug logs every request and response at debug level.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the timeout of a single HTTP attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryConfig retries connection errors, 429 and 5xx responses up to
// retryMax times with exponential backoff. 4xx responses are not retried.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
		c.httpClient.CheckRetry = retryablehttp.DefaultRetryPolicy
		c.httpClient.Backoff = retryablehttp.DefaultBackoff
	}
}

// WithRateLimit allows at most requestsPerSecond requests with the given
// burst. Callers block in Do until a token is available or ctx ends.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			return
		}

		if burst < 1 {
			burst = 1
		}

		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithCircuitBreaker fails fast with gitlab.ErrCircuitOpen once enough
// requests failed with a connection error or a 5xx status. 4xx responses
// count as successes.
func WithCircuitBreaker(name string) Option {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     name,
			Interval: constants.BreakerInterval,
			Timeout:  constants.BreakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

				return counts.Requests >= constants.BreakerMinRequests && failureRatio >= constants.BreakerFailureRatio
			},
			IsSuccessful: isBreakerSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				if c.logger != nil {
					c.logger.Warn("Circuit breaker state changed", map[string]interface{}{
						"name": name,
						"from": from.String(),
						"to":   to.String(),
					})
				}
			},
		})
	}
}

func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}

	if errors.Is(err, context.Canceled) {
		return true
	}

	respErr := &gitlab.ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode < http.StatusInternalServerError
	}

	return false
}

// WithMetrics registers request metrics on registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *Client) {
		if registerer != nil {
			c.metrics, c.metricsErr = newRequestMetrics(registerer)
		}
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify() Option {
	return func(c *Client) {
		transport, ok := c.httpClient.HTTPClient.Transport.(*http.Transport)
		if !ok {
			return
		}

		transport = transport.Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- guarded by dev mode in glclient
		c.httpClient.HTTPClient.Transport = transport
	}
}

// leveledLogger adapts the client's gitlab.Logger to
// retryablehttp.LeveledLogger. Debug and Info follow the client's debug flag.
type leveledLogger struct {
	client *Client
}

func (l *leveledLogger) fields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.client.logger.Error(msg, l.fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	if l.client.debug {
		l.client.logger.Info(msg, l.fields(keysAndValues))
	}
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	if l.client.debug {
		l.client.logger.Debug(msg, l.fields(keysAndValues))
	}
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.client.logger.Warn(msg, l.fields(keysAndValues))
}
