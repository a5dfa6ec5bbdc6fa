// Package clickhouse implements the ports.RowSender port over the ClickHouse
// HTTP interface.
package clickhouse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/solstream/walletsink/internal/domain"
	"github.com/solstream/walletsink/internal/ports"
)

// SenderConfig describes the target database and credentials.
type SenderConfig struct {
	// BaseURL is the ClickHouse HTTP endpoint, e.g. http://127.0.0.1:8123.
	BaseURL string

	// Username and Password are sent as basic auth.
	Username string
	Password string

	// Database and Table name the insert target.
	Database string
	Table    string
}

// Sender bulk-inserts row batches via the ClickHouse HTTP interface using
// the JSONEachRow format. One Send is exactly one POST.
type Sender struct {
	client ports.HTTPClient
	config SenderConfig
	query  string
}

// NewSender creates a sender. The HTTP client is injected, already
// constructed with its timeout, and reused for every flush. Failures are
// reported through the returned error, response body included, so the
// caller decides how to log them.
func NewSender(client ports.HTTPClient, config SenderConfig) *Sender {
	return &Sender{
		client: client,
		config: config,
		query:  fmt.Sprintf("INSERT INTO %s.%s FORMAT JSONEachRow", config.Database, config.Table),
	}
}

// Send POSTs the batch as newline-delimited JSON with a trailing newline.
// Rows are joined in arrival order. Each flush carries a fresh query_id so
// individual inserts can be traced in the sink's query log.
func (s *Sender) Send(ctx context.Context, batch *domain.Batch) error {
	if batch.Empty() {
		return nil
	}

	body := strings.Join(batch.Rows, "\n") + "\n"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.insertURL(), strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(s.config.Username, s.config.Password)
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to clickhouse: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("clickhouse returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// insertURL builds the per-flush insert URL.
func (s *Sender) insertURL() string {
	q := url.Values{}
	q.Set("query", s.query)
	q.Set("query_id", uuid.NewString())
	return s.config.BaseURL + "/?" + q.Encode()
}
