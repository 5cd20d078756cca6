package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kpauljoseph/pdfcheck/pkg/logger"
	"github.com/kpauljoseph/pdfcheck/pkg/utils"
	"github.com/kpauljoseph/pdfcheck/pkg/version"
)

const DefaultTimeout = 30 * time.Second

var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %s", e.Status)
}

// Fetcher downloads a URL into memory with a single GET. It never retries.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	logger      *logger.Logger
}

type Option func(*Fetcher)

// WithClient replaces the HTTP client. Its timeout and redirect policy are
// used as is.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.client = &http.Client{Timeout: timeout}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		f.userAgent = userAgent
	}
}

// WithMaxBodySize limits how many bytes are read. Zero means no limit.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(f *Fetcher) {
		f.logger = log
	}
}

func New(options ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: version.UserAgent(),
		logger:    logger.Discard(),
	}

	for _, opt := range options {
		opt(f)
	}

	return f
}

// FetchBytes performs a blocking GET of rawURL and returns the whole body.
// Malformed URLs, transport failures, non-2xx responses and body read errors
// are all returned as errors.
func (f *Fetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Debug("Fetching %s", rawURL)
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	f.logger.Trace("Response from %s: %s (content-type %q, content-length %d)",
		rawURL, resp.Status, resp.Header.Get("Content-Type"), resp.ContentLength)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if f.maxBodySize > 0 && resp.ContentLength > f.maxBodySize {
		return nil, fmt.Errorf("%w: content-length %s > %s", ErrBodyTooLarge,
			utils.HumanSize(resp.ContentLength), utils.HumanSize(f.maxBodySize))
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Fetched %s from %s in %v", utils.HumanSize(int64(len(body))), rawURL, time.Since(start))
	return body, nil
}

func (f *Fetcher) readBody(r io.Reader) ([]byte, error) {
	if f.maxBodySize <= 0 {
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return body, nil
	}

	body, err := io.ReadAll(io.LimitReader(r, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("%w: more than %s", ErrBodyTooLarge, utils.HumanSize(f.maxBodySize))
	}
	return body, nil
}
