package testutils

import (
	"context"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/postgres"
)

// NewTestClient creates a client backed by a provided DB handle for testing
// purposes. This allows unit tests to exercise repositories without a real
// Postgres connection.
func NewTestClient(db postgres.DB) postgres.Client {
	return &testClient{db: db}
}

type testClient struct {
	db postgres.DB
}

func (c *testClient) Conn() postgres.DB {
	return c.db
}

func (c *testClient) Ping(ctx context.Context) error {
	return nil
}

func (c *testClient) Close() error {
	return nil
}
