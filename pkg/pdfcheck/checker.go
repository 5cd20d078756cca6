package pdfcheck

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kpauljoseph/pdfcheck/internal/config"
	"github.com/kpauljoseph/pdfcheck/internal/fetcher"
	"github.com/kpauljoseph/pdfcheck/internal/pdf"
	"github.com/kpauljoseph/pdfcheck/pkg/logger"
)

// Checker combines a parser backend with an HTTP fetcher. It holds no
// per-call state and is safe for concurrent use.
type Checker struct {
	validator pdf.Validator
	fetcher   *fetcher.Fetcher
	logger    *logger.Logger
}

type options struct {
	backend     pdf.Backend
	logger      *logger.Logger
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

type Option func(*options)

// WithBackend selects the parser: "pdfcpu" (default), "mupdf" or
// "ledongthuc".
func WithBackend(backend string) Option {
	return func(o *options) {
		o.backend = pdf.Backend(backend)
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// WithHTTPClient replaces the HTTP client. WithTimeout is ignored when a
// client is given.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithMaxBodySize caps downloads at n bytes. Larger bodies are fetch
// failures. Zero means no cap.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		o.maxBodySize = n
	}
}

func New(opts ...Option) (*Checker, error) {
	o := options{
		backend: pdf.DefaultBackend,
		logger:  logger.Discard(),
		timeout: fetcher.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	validator, err := pdf.New(o.backend)
	if err != nil {
		return nil, err
	}

	fetchOpts := []fetcher.Option{
		fetcher.WithLogger(o.logger),
		fetcher.WithMaxBodySize(o.maxBodySize),
	}
	if o.client != nil {
		fetchOpts = append(fetchOpts, fetcher.WithClient(o.client))
	} else {
		fetchOpts = append(fetchOpts, fetcher.WithTimeout(o.timeout))
	}
	if o.userAgent != "" {
		fetchOpts = append(fetchOpts, fetcher.WithUserAgent(o.userAgent))
	}

	return &Checker{
		validator: validator,
		fetcher:   fetcher.New(fetchOpts...),
		logger:    o.logger,
	}, nil
}

// NewFromConfig builds a Checker from a loaded config file.
func NewFromConfig(cfg *config.Config, log *logger.Logger) (*Checker, error) {
	maxBody, err := cfg.MaxBodyBytes()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	return New(
		WithBackend(cfg.Backend),
		WithLogger(log),
		WithTimeout(cfg.HTTP.Timeout),
		WithUserAgent(cfg.HTTP.UserAgent),
		WithMaxBodySize(maxBody),
	)
}

func (c *Checker) Backend() string {
	return string(c.validator.Backend())
}

// IsValidPDF reports whether data opens as a PDF container. It never fails;
// data is only read.
func (c *Checker) IsValidPDF(data []byte) bool {
	if err := c.validator.Open(data); err != nil {
		c.logger.Debug("Rejected %d bytes: %v", len(data), err)
		return false
	}
	return true
}

// URLIsValidPDF is URLIsValidPDFContext with a background context.
func (c *Checker) URLIsValidPDF(url string) (bool, error) {
	return c.URLIsValidPDFContext(context.Background(), url)
}

// URLIsValidPDFContext downloads url and checks the body. Any failure to
// obtain the body, cancellation included, is an *InvalidURLError.
func (c *Checker) URLIsValidPDFContext(ctx context.Context, url string) (bool, error) {
	data, err := c.Fetch(ctx, url)
	if err != nil {
		return false, err
	}
	return c.IsValidPDF(data), nil
}

// Fetch downloads url into memory. Failures are *InvalidURLError.
func (c *Checker) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := c.fetcher.FetchBytes(ctx, url)
	if err != nil {
		c.logger.Debug("Fetch failed for %s: %v", url, err)
		return nil, &InvalidURLError{URL: url, Err: err}
	}
	return data, nil
}

var (
	defaultOnce    sync.Once
	defaultChecker *Checker
)

func defaultInstance() *Checker {
	defaultOnce.Do(func() {
		c, err := New()
		if err != nil {
			panic(fmt.Sprintf("pdfcheck: default checker: %v", err))
		}
		defaultChecker = c
	})
	return defaultChecker
}

// CheckIsValidPDF reports whether data is a structurally valid PDF using the
// default backend.
func CheckIsValidPDF(data []byte) bool {
	return defaultInstance().IsValidPDF(data)
}

// CheckURLIsValidPDF fetches url with a blocking GET and reports whether the
// body is a valid PDF. It returns an *InvalidURLError when the body could
// not be fetched.
func CheckURLIsValidPDF(url string) (bool, error) {
	return defaultInstance().URLIsValidPDF(url)
}

func CheckURLIsValidPDFContext(ctx context.Context, url string) (bool, error) {
	return defaultInstance().URLIsValidPDFContext(ctx, url)
}
