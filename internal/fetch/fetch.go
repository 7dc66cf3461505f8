// Package fetch streams a release asset from a URL to a local file.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/conn-castle/omnisharp-client/internal/failure"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

// HTTPClient is the subset of *http.Client used by Fetcher.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProgressFunc receives the bytes written so far and the expected total
// (-1 when the server sent no Content-Length).
type ProgressFunc func(written, total int64)

// Fetcher downloads files. It never retries and sets no timeout of its own.
type Fetcher struct {
	client   HTTPClient
	progress ProgressFunc
	logger   *zap.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client HTTPClient) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(f *Fetcher) {
		f.progress = fn
	}
}

// WithLogger sets the logger for start and finish events.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New returns a Fetcher backed by a client without a timeout.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Download GETs url and writes the body to dest, replacing any existing file.
func (f *Fetcher) Download(ctx context.Context, url, dest string) error {
	f.logger.Info(messages.FetchStartLog, zap.String("url", url), zap.String("path", dest))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failure.NetworkErr(messages.FetchOpRequest, url, err)
	}
	req.Header.Set("User-Agent", messages.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return failure.NetworkErr(messages.FetchOpGet, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return failure.NetworkErr(messages.FetchOpGet, url, fmt.Errorf(messages.FetchUnexpectedStatusFmt, resp.Status))
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return failure.FilesystemErr(messages.FetchOpCreate, dest, err)
	}

	var body io.Reader = resp.Body
	if f.progress != nil {
		body = &progressReader{r: resp.Body, total: resp.ContentLength, report: f.progress}
	}

	written, copyErr := io.Copy(fileWriter{out}, body)
	closeErr := out.Close()
	if copyErr != nil {
		var we *writeError
		if errors.As(copyErr, &we) {
			return failure.FilesystemErr(messages.FetchOpWrite, dest, copyErr)
		}
		return failure.NetworkErr(messages.FetchOpStream, url, copyErr)
	}
	if closeErr != nil {
		return failure.FilesystemErr(messages.FetchOpWrite, dest, closeErr)
	}

	f.logger.Info(messages.FetchFinishedLog, zap.String("path", dest), zap.Int64("bytes", written))
	return nil
}

// fileWriter tags write failures so they can be told apart from body read failures.
type fileWriter struct {
	w io.Writer
}

func (fw fileWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if err != nil {
		return n, &writeError{err: err}
	}
	return n, nil
}

type writeError struct {
	err error
}

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report(p.read, p.total)
	}
	return n, err
}
