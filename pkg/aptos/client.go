package aptos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client queries the external Aptos indexer for charity contract events.
type Client interface {
	// FetchEvents returns up to one page of events of the given kind with
	// transaction_version >= startVersion, ordered ascending by version.
	// On transport or query failure it returns a nil slice and the error;
	// retry policy belongs to the caller's run-to-run cadence.
	FetchEvents(ctx context.Context, kind EventKind, startVersion uint64) ([]Event, error)
}

// eventsQuery filters on indexed_type rather than type: events declared with
// the #[event] attribute are only queryable through the indexed column.
const eventsQuery = `
query GetEvents($where: events_bool_exp, $limit: Int, $order_by: [events_order_by!]) {
  events(where: $where, limit: $limit, order_by: $order_by) {
    account_address
    creation_number
    sequence_number
    data
    type
    transaction_version
    transaction_block_height
    indexed_type
  }
}
`

type client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// New creates a new Aptos indexer API client.
func New(cfg Config, sugar *zap.SugaredLogger) Client {
	return &client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		logger: sugar,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data struct {
		Events []Event `json:"events"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

func (c *client) FetchEvents(ctx context.Context, kind EventKind, startVersion uint64) ([]Event, error) {
	reqBody := graphqlRequest{
		Query: eventsQuery,
		Variables: map[string]any{
			"where": map[string]any{
				"indexed_type":        map[string]any{"_eq": c.cfg.EventType(kind)},
				"transaction_version": map[string]any{"_gte": startVersion},
			},
			"limit":    c.cfg.PageSize,
			"order_by": []map[string]any{{"transaction_version": "asc"}},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal events query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.IndexerURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build events request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for %s: %w", kind, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close errors are not actionable

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("events query for %s returned status %d: %s", kind, resp.StatusCode, body)
	}

	var result graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode events response for %s: %w", kind, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("events query for %s failed: %s", kind, result.Errors[0].Message)
	}

	if c.logger != nil && len(result.Data.Events) > 0 {
		c.logger.Debugw("fetched events",
			"kind", kind,
			"count", len(result.Data.Events),
			"startVersion", startVersion,
		)
	}
	return result.Data.Events, nil
}
