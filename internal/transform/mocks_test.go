package transform

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/data/postgres/charityrepo"
)

type mockCampaigns struct {
	mock.Mock
}

func (m *mockCampaigns) Initialize(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCampaigns) Upsert(ctx context.Context, c *charityrepo.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaigns) ReadTotalDonated(ctx context.Context, campaignID string) (uint64, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockCampaigns) SetTotalDonated(ctx context.Context, campaignID string, total uint64) error {
	return m.Called(ctx, campaignID, total).Error(0)
}

type mockDonations struct {
	mock.Mock
}

func (m *mockDonations) Initialize(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockDonations) Insert(ctx context.Context, d *charityrepo.Donation) error {
	return m.Called(ctx, d).Error(0)
}

type mockFundsClaimed struct {
	mock.Mock
}

func (m *mockFundsClaimed) Initialize(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockFundsClaimed) Insert(ctx context.Context, fc *charityrepo.FundsClaimed) error {
	return m.Called(ctx, fc).Error(0)
}

var (
	_ charityrepo.CampaignsRepository    = (*mockCampaigns)(nil)
	_ charityrepo.DonationsRepository    = (*mockDonations)(nil)
	_ charityrepo.FundsClaimedRepository = (*mockFundsClaimed)(nil)
)

// makeEvent builds a raw event with the given payload marshaled into Data.
func makeEvent(t *testing.T, kind aptos.EventKind, version uint64, payload any) aptos.Event {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return aptos.Event{
		AccountAddress:     "0xabc",
		Data:               data,
		Type:               "0xabc::charity::" + string(kind),
		IndexedType:        "0xabc::charity::" + string(kind),
		TransactionVersion: aptos.U64(version),
	}
}
