package filings

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/pkg/httpenc"
	"github.com/effective-security/fintools/pkg/metricskey"
	"github.com/effective-security/xlog"
)

// Fetcher downloads the raw document
type Fetcher interface {
	// Fetch returns the document text, or false if it is not available
	Fetch(ctx context.Context, url string) (string, bool)
}

// HTTPClient is the interface of http.Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const endpointDownload = "download"

// MaxDocumentSize limits the size of the downloaded document
const MaxDocumentSize = 128 << 20

// HTTPFetcher downloads documents with the identity headers required by EDGAR
type HTTPFetcher struct {
	userAgent  string
	host       string
	timeout    time.Duration
	httpClient HTTPClient
}

// ensure HTTPFetcher implements Fetcher
var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher returns HTTPFetcher
func NewHTTPFetcher(userAgent, host string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		userAgent:  userAgent,
		host:       host,
		timeout:    timeout,
		httpClient: http.DefaultClient,
	}
}

// WithHTTPClient sets the HTTP client
func (f *HTTPFetcher) WithHTTPClient(client HTTPClient) *HTTPFetcher {
	f.httpClient = client
	return f
}

// Fetch returns the document, any error or timeout is reported as not available
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, bool) {
	started := time.Now()
	defer metricskey.PerfUpstreamCall.MeasureSince(started, endpointDownload)

	text, err := f.fetch(ctx, url)
	if err != nil {
		metricskey.StatsUpstreamCallsFailed.IncrCounter(1, endpointDownload)
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "download",
			"url", url,
			"err", err.Error(),
		)
		return "", false
	}
	return text, true
}

func (f *HTTPFetcher) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept-Encoding", httpenc.AcceptGzipDeflate)
	if f.host != "" {
		req.Host = f.host
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to download")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Newf("unexpected status %d", resp.StatusCode)
	}

	body, err := httpenc.DecodeBody(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return "", err
	}
	defer body.Close()

	bs, err := io.ReadAll(io.LimitReader(body, MaxDocumentSize))
	if err != nil {
		return "", errors.Wrap(err, "failed to read document")
	}
	return string(bs), nil
}
