package aptos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// EventKind names a category of domain event emitted by the charity contract.
// The on-chain type tag is <contract_address>::<module>::<kind>.
type EventKind string

const (
	EventCampaignCreated EventKind = "CampaignCreated"
	EventDonation        EventKind = "DonationEvent"
	EventFundsClaimed    EventKind = "FundsClaimed"

	// Retired kinds. Earlier contract revisions emitted these; they are still
	// recognized as valid so historical streams do not surface as errors.
	EventStake           EventKind = "StakeEvent"
	EventUnstake         EventKind = "UnstakeEvent"
	EventRewardsClaimed  EventKind = "RewardsClaimed"
	EventProposalCreated EventKind = "ProposalCreated"
	EventVoteCast        EventKind = "VoteCast"
)

// U64 is a Hasura bigint. The indexer API serializes these either as JSON
// numbers or as decimal strings depending on the column, so both are accepted.
type U64 uint64

func (u *U64) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid bigint %s: %w", b, err)
	}
	*u = U64(v)
	return nil
}

// Event is one row of the external append-only event log. The indexer never
// writes these, only reads them.
type Event struct {
	AccountAddress         string          `json:"account_address"`
	CreationNumber         U64             `json:"creation_number"`
	SequenceNumber         U64             `json:"sequence_number"`
	Data                   json.RawMessage `json:"data"`
	Type                   string          `json:"type"`
	TransactionVersion     U64             `json:"transaction_version"`
	TransactionBlockHeight U64             `json:"transaction_block_height"`
	IndexedType            string          `json:"indexed_type"`
}

// Move u64 fields inside event payloads are always decimal strings.

// CampaignCreatedData is the payload of a CampaignCreated event.
type CampaignCreatedData struct {
	CampaignID       string `json:"campaign_id"`
	Creator          string `json:"creator"`
	Description      string `json:"description"`
	GoalAmount       string `json:"goal_amount"`
	EndTimestampSecs string `json:"end_timestamp_secs"`
	CreatedAt        string `json:"created_at"`
}

// DonationData is the payload of a DonationEvent. It carries no timestamp;
// rows derived from it are stamped at ingestion time.
type DonationData struct {
	CampaignID        string `json:"campaign_id"`
	Donor             string `json:"donor"`
	Amount            string `json:"amount"`
	HeartTokensMinted string `json:"heart_tokens_minted"`
}

// FundsClaimedData is the payload of a FundsClaimed event.
type FundsClaimedData struct {
	CampaignID    string `json:"campaign_id"`
	Creator       string `json:"creator"`
	AmountClaimed string `json:"amount_claimed"`
	ClaimedAt     string `json:"claimed_at"`
}
