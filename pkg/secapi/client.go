package secapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/pkg/metricskey"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xlog"
	"golang.org/x/time/rate"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/fintools/pkg", "secapi")

// DefaultBaseURL of the SEC API service
const DefaultBaseURL = "https://api.sec-api.io"

// Endpoint names used in metrics
const (
	EndpointMapping   = "mapping"
	EndpointQuery     = "query"
	EndpointExtractor = "extractor"
)

// HTTPClient is the interface of http.Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned on non-successful HTTP status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client for the SEC API service
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
	limiter    *rate.Limiter
}

// ensure Client implements API
var _ API = (*Client)(nil)

// NewClient returns a client with the API token
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient sets the HTTP client
func (c *Client) WithHTTPClient(client HTTPClient) *Client {
	c.httpClient = client
	return c
}

// WithRateLimit limits the number of requests per second,
// zero or negative value removes the limit.
func (c *Client) WithRateLimit(rps float64) *Client {
	if rps <= 0 {
		c.limiter = nil
		return c
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// Resolve returns the filer records, for example /mapping/ticker/AAPL
func (c *Client) Resolve(ctx context.Context, kind, value string) (MappingResponse, error) {
	p := "/mapping/" + url.PathEscape(kind) + "/" + url.PathEscape(value)
	body, err := c.do(ctx, EndpointMapping, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, err
	}
	return ParseMappingResponse(body)
}

// GetFilings executes the full-text query
func (c *Client) GetFilings(ctx context.Context, q *Query) (*QueryResult, error) {
	js, err := json.Marshal(q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal query")
	}
	body, err := c.do(ctx, EndpointQuery, http.MethodPost, "", nil, js)
	if err != nil {
		return nil, err
	}

	res := new(QueryResult)
	if err = decodeBytes(body, res); err != nil {
		return nil, errors.Wrap(err, "invalid query response")
	}
	return res, nil
}

// GetSection returns the item of the filing document
func (c *Client) GetSection(ctx context.Context, filingURL, item, format string) (string, error) {
	q := url.Values{}
	q.Set("url", filingURL)
	q.Set("item", item)
	q.Set("type", format)
	body, err := c.do(ctx, EndpointExtractor, http.MethodGet, "/extractor", q, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, q url.Values, payload []byte) ([]byte, error) {
	started := time.Now()
	defer metricskey.PerfUpstreamCall.MeasureSince(started, endpoint)

	body, err := c.roundtrip(ctx, method, path, q, payload)
	if err != nil {
		metricskey.StatsUpstreamCallsFailed.IncrCounter(1, endpoint)
		logger.ContextKV(ctx, xlog.DEBUG,
			"endpoint", endpoint,
			"path", path,
			"err", err.Error(),
		)
		return nil, err
	}
	return body, nil
}

func (c *Client) roundtrip(ctx context.Context, method, path string, q url.Values, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limit")
		}
	}

	if q == nil {
		q = url.Values{}
	}
	q.Set("token", c.token)
	u := c.baseURL + path + "?" + q.Encode()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.WithStack(&StatusError{
			StatusCode: resp.StatusCode,
			Body:       slices.StringUpto(strings.TrimSpace(string(body)), 256),
		})
	}
	return body, nil
}
