package aptos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(url string) Config {
	return Config{
		IndexerURL:      url,
		ContractAddress: "0xabc",
		ModuleName:      "charity",
		RequestTimeout:  5,
		PageSize:        100,
	}
}

func TestClient_FetchEvents_QueryShape(t *testing.T) {
	t.Parallel()

	var captured graphqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"data":{"events":[]}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zaptest.NewLogger(t).Sugar())
	events, err := c.FetchEvents(context.Background(), EventDonation, 101)
	require.NoError(t, err)
	assert.Empty(t, events)

	where, ok := captured.Variables["where"].(map[string]any)
	require.True(t, ok)

	indexedType, ok := where["indexed_type"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0xabc::charity::DonationEvent", indexedType["_eq"])

	version, ok := where["transaction_version"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(101), version["_gte"])

	assert.Equal(t, float64(100), captured.Variables["limit"])

	orderBy, ok := captured.Variables["order_by"].([]any)
	require.True(t, ok)
	require.Len(t, orderBy, 1)
	assert.Equal(t, map[string]any{"transaction_version": "asc"}, orderBy[0])
}

func TestClient_FetchEvents_DecodesEvents(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"events":[
			{
				"account_address": "0xabc",
				"creation_number": "4",
				"sequence_number": 0,
				"data": {"campaign_id": "1", "donor": "0xd0", "amount": "10", "heart_tokens_minted": "1"},
				"type": "0xabc::charity::DonationEvent",
				"transaction_version": 102,
				"transaction_block_height": "55",
				"indexed_type": "0xabc::charity::DonationEvent"
			}
		]}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zaptest.NewLogger(t).Sugar())
	events, err := c.FetchEvents(context.Background(), EventDonation, 100)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, U64(102), events[0].TransactionVersion)
	assert.Equal(t, U64(55), events[0].TransactionBlockHeight)
	assert.Equal(t, U64(4), events[0].CreationNumber)

	var data DonationData
	require.NoError(t, json.Unmarshal(events[0].Data, &data))
	assert.Equal(t, "1", data.CampaignID)
	assert.Equal(t, "10", data.Amount)
}

func TestClient_FetchEvents_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zaptest.NewLogger(t).Sugar())
	events, err := c.FetchEvents(context.Background(), EventCampaignCreated, 0)
	require.Error(t, err)
	assert.Nil(t, events)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_FetchEvents_GraphQLErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"field 'events' not found"}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zaptest.NewLogger(t).Sugar())
	_, err := c.FetchEvents(context.Background(), EventFundsClaimed, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'events' not found")
}

func TestClient_FetchEvents_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": nope`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zaptest.NewLogger(t).Sugar())
	_, err := c.FetchEvents(context.Background(), EventDonation, 0)
	require.Error(t, err)
}

func TestClient_FetchEvents_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(testConfig(srv.URL), zaptest.NewLogger(t).Sugar())
	_, err := c.FetchEvents(context.Background(), EventDonation, 0)
	require.Error(t, err)
}

func TestU64_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var v U64
	require.NoError(t, json.Unmarshal([]byte(`"123"`), &v))
	assert.Equal(t, U64(123), v)

	require.NoError(t, json.Unmarshal([]byte(`456`), &v))
	assert.Equal(t, U64(456), v)

	require.Error(t, json.Unmarshal([]byte(`"abc"`), &v))
	require.Error(t, json.Unmarshal([]byte(`-1`), &v))
}
