package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"call-metrics-service/internal/model"
)

// RemoteCSVSource fetches a published CSV export over HTTP, the way a
// hosted sheet exposes its data. Transient failures (transport errors,
// 5xx) are retried with exponential backoff.
type RemoteCSVSource struct {
	url    string
	client *http.Client
}

func NewRemoteCSVSource(url string, timeout time.Duration) *RemoteCSVSource {
	return &RemoteCSVSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *RemoteCSVSource) Name() string {
	return "remote-csv"
}

func (s *RemoteCSVSource) FetchRows(ctx context.Context) ([]model.RawRow, error) {
	body, err := s.download(ctx)
	if err != nil {
		return nil, err
	}
	return parseCSV(bytes.NewReader(body))
}

func (s *RemoteCSVSource) download(ctx context.Context) ([]byte, error) {
	bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("unexpected status: %d", resp.StatusCode))
		}

		body = data
		return nil
	}

	if err := backoff.Retry(operation, bo); err != nil {
		return nil, fmt.Errorf("download %s: %w", s.url, err)
	}
	return body, nil
}
