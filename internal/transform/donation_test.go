package transform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/data/postgres/charityrepo"
)

func donationEvent(t *testing.T, version uint64, campaignID, amount string) aptos.Event {
	t.Helper()
	return makeEvent(t, aptos.EventDonation, version, aptos.DonationData{
		CampaignID:        campaignID,
		Donor:             "0xd0",
		Amount:            amount,
		HeartTokensMinted: "1",
	})
}

func TestDonationTransformer_Apply(t *testing.T) {
	t.Parallel()

	ingestedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	donations := &mockDonations{}
	campaigns := &mockCampaigns{}

	donations.
		On("Insert", mock.Anything, &charityrepo.Donation{
			TransactionVersion: 102,
			CampaignID:         "7",
			Donor:              "0xd0",
			Amount:             10,
			HeartTokensMinted:  1,
			DonatedAt:          ingestedAt,
		}).
		Return(nil)
	campaigns.On("ReadTotalDonated", mock.Anything, "7").Return(uint64(20), nil)
	campaigns.On("SetTotalDonated", mock.Anything, "7", uint64(30)).Return(nil)

	tr := NewDonationTransformer(donations, campaigns, zap.NewNop().Sugar())
	tr.now = func() time.Time { return ingestedAt }

	require.NoError(t, tr.Apply(context.Background(), donationEvent(t, 102, "7", "10")))
	donations.AssertExpectations(t)
	campaigns.AssertExpectations(t)
}

func TestDonationTransformer_Apply_UnknownCampaign(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	sugar := zap.New(core).Sugar()

	donations := &mockDonations{}
	campaigns := &mockCampaigns{}
	donations.On("Insert", mock.Anything, mock.Anything).Return(nil)
	campaigns.
		On("ReadTotalDonated", mock.Anything, "missing").
		Return(uint64(0), charityrepo.ErrCampaignNotFound)

	tr := NewDonationTransformer(donations, campaigns, sugar)

	// Dropped with a log entry; the donation row itself stays.
	require.NoError(t, tr.Apply(context.Background(), donationEvent(t, 51, "missing", "10")))
	campaigns.AssertNotCalled(t, "SetTotalDonated", mock.Anything, mock.Anything, mock.Anything)

	entries := logs.FilterMessage("donation references unknown campaign").All()
	require.Len(t, entries, 1)
}

func TestDonationTransformer_Apply_AggregateReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("connection reset")
	donations := &mockDonations{}
	campaigns := &mockCampaigns{}
	donations.On("Insert", mock.Anything, mock.Anything).Return(nil)
	campaigns.On("ReadTotalDonated", mock.Anything, "7").Return(uint64(0), readErr)

	tr := NewDonationTransformer(donations, campaigns, zap.NewNop().Sugar())
	err := tr.Apply(context.Background(), donationEvent(t, 102, "7", "10"))
	require.ErrorIs(t, err, readErr)
	campaigns.AssertNotCalled(t, "SetTotalDonated", mock.Anything, mock.Anything, mock.Anything)
}

func TestDonationTransformer_Apply_InsertError(t *testing.T) {
	t.Parallel()

	insertErr := errors.New("insert failed")
	donations := &mockDonations{}
	campaigns := &mockCampaigns{}
	donations.On("Insert", mock.Anything, mock.Anything).Return(insertErr)

	tr := NewDonationTransformer(donations, campaigns, zap.NewNop().Sugar())
	err := tr.Apply(context.Background(), donationEvent(t, 102, "7", "10"))
	require.ErrorIs(t, err, insertErr)
	campaigns.AssertNotCalled(t, "ReadTotalDonated", mock.Anything, mock.Anything)
}

func TestDonationTransformer_Apply_SequenceSumsAmounts(t *testing.T) {
	t.Parallel()

	donations := &mockDonations{}
	campaigns := &mockCampaigns{}
	donations.On("Insert", mock.Anything, mock.Anything).Return(nil)

	// Single-threaded, applied exactly once each: totals are exact sums.
	campaigns.On("ReadTotalDonated", mock.Anything, "7").Return(uint64(0), nil).Once()
	campaigns.On("SetTotalDonated", mock.Anything, "7", uint64(10)).Return(nil).Once()
	campaigns.On("ReadTotalDonated", mock.Anything, "7").Return(uint64(10), nil).Once()
	campaigns.On("SetTotalDonated", mock.Anything, "7", uint64(30)).Return(nil).Once()

	tr := NewDonationTransformer(donations, campaigns, zap.NewNop().Sugar())
	require.NoError(t, tr.Apply(context.Background(), donationEvent(t, 102, "7", "10")))
	require.NoError(t, tr.Apply(context.Background(), donationEvent(t, 103, "7", "20")))
	campaigns.AssertExpectations(t)
}

func TestDonationTransformer_Apply_MalformedAmount(t *testing.T) {
	t.Parallel()

	donations := &mockDonations{}
	campaigns := &mockCampaigns{}
	tr := NewDonationTransformer(donations, campaigns, zap.NewNop().Sugar())

	err := tr.Apply(context.Background(), donationEvent(t, 102, "7", "ten"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
	donations.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
