package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"mime"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"analytics-codegen/internal/ingest"
)

// maxBody caps a downloaded sheet.
const maxBody = 32 << 20

// LoaderOptions configure a Loader.
type LoaderOptions struct {
	// Ingest configures table parsing.
	Ingest       ingest.Options
	// Timeout bounds one remote download including retries. Zero means none.
	Timeout      time.Duration
	// RetryMax is the number of retries on transient failures.
	RetryMax     int
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *zap.Logger
}

// Loader reads event tables from any supported source.
type Loader struct {
	opts   LoaderOptions
	client *retryablehttp.Client
}

// NewLoader returns a loader.
func NewLoader(opts LoaderOptions) *Loader {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	client := retryablehttp.NewClient()
	client.Logger = leveledLogger{opts.Logger.Sugar()}
	client.RetryMax = opts.RetryMax

	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}

	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}

	return &Loader{opts: opts, client: client}
}

// Load reads the whole table behind src and returns its rows. Failing to
// reach the table is returned directly; table errors come from the
// iterator.
func (l *Loader) Load(ctx context.Context, src Source) (iter.Seq2[ingest.RawRow, error], error) {
	var (
		data []byte
		err  error
	)

	switch src.Kind {
	case KindGoogleSheet:
		data, err = l.fetch(ctx, src.ExportURL())
	default:
		data, err = os.ReadFile(src.Path)
	}

	if err != nil {
		return nil, err
	}

	l.opts.Logger.Debug("Loaded event table",
		zap.Stringer("source", src),
		zap.Int("bytes", len(data)),
	)

	return ingest.Read(bytes.NewReader(data), src.Format, l.opts.Ingest), nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)

		defer cancel()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	// Private sheets redirect to a sign-in page instead of failing.
	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mediaType == "text/html" {
		return nil, fmt.Errorf("%w: %s requires sign-in", ErrPermissionDenied, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	if len(data) > maxBody {
		return nil, fmt.Errorf("downloading %s: sheet larger than %d bytes", url, maxBody)
	}

	return data, nil
}

// leveledLogger routes retryablehttp logs to zap at debug level, except
// errors.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
