package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxDocumentSize caps how much of a remote response is read.
var maxDocumentSize int64 = 64 << 20

// ErrTooLarge is returned when a remote document exceeds maxDocumentSize.
var ErrTooLarge = errors.New("badge document too large")

// readDocument reads r up to maxDocumentSize. A longer body is an error
// rather than a truncated document.
func readDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxDocumentSize {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrTooLarge, maxDocumentSize)
	}
	return data, nil
}

// HTTPSource fetches the document with a single GET request.
type HTTPSource struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

// NewHTTPSource creates a remote source. A nil client uses a default
// http.Client; timeout bounds each fetch when non-zero.
func NewHTTPSource(url string, client *http.Client, timeout time.Duration) *HTTPSource {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSource{url: url, timeout: timeout, httpClient: client}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := readDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

func (s *HTTPSource) String() string { return s.url }
